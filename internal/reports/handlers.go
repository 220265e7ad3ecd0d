package reports

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/noah-isme/seller-insights/internal/common"
	"github.com/noah-isme/seller-insights/internal/dataset"
	"github.com/noah-isme/seller-insights/internal/report"
)

// DatasetSource loads the current dataset from the pipeline's storage.
type DatasetSource interface {
	LoadDataset(ctx context.Context) (*report.Dataset, error)
}

// Handler exposes the report endpoints.
type Handler struct {
	Svc    *Service
	Source DatasetSource
}

type computeRequest struct {
	Data    *report.Dataset `json:"data"`
	Options struct {
		RevenuePolicy string `json:"revenue_policy"`
		BonusPolicy   string `json:"bonus_policy"`
	} `json:"options"`
}

// Compute runs the engine over a dataset supplied in the request body.
func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "REPORTS_NOT_CONFIGURED", "report service not configured", nil)
		return
	}
	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if req.Data != nil {
		if err := dataset.Validate(req.Data); err != nil {
			common.JSONError(w, http.StatusBadRequest, "INVALID_DATASET", err.Error(), nil)
			return
		}
	}
	h.generate(w, r, Request{
		Dataset:       req.Data,
		RevenuePolicy: req.Options.RevenuePolicy,
		BonusPolicy:   req.Options.BonusPolicy,
	})
}

// Current runs the engine over the dataset loaded from storage.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil || h.Source == nil {
		common.JSONError(w, http.StatusInternalServerError, "REPORTS_NOT_CONFIGURED", "report service not configured", nil)
		return
	}
	ds, err := h.Source.LoadDataset(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "DATASET_LOAD_FAILED", err.Error(), nil)
		return
	}
	query := r.URL.Query()
	h.generate(w, r, Request{
		Dataset:       ds,
		RevenuePolicy: query.Get("revenue_policy"),
		BonusPolicy:   query.Get("bonus_policy"),
	})
}

// Policies lists the registered policy names.
func (h *Handler) Policies(w http.ResponseWriter, _ *http.Request) {
	revenue, bonus := PolicyNames()
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"revenue_policies": revenue,
			"bonus_policies":   bonus,
		},
	})
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, req Request) {
	results, err := h.Svc.Generate(r.Context(), req)
	if err != nil {
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
			return
		}
		status, code := classifyError(err)
		common.JSONError(w, status, code, err.Error(), nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": results})
}

// classifyError maps engine validation failures to a stable error code so
// callers can distinguish which precondition failed.
func classifyError(err error) (int, string) {
	for sentinel, code := range map[error]string{
		report.ErrMissingData:            "MISSING_DATA",
		report.ErrMissingCustomers:       "MISSING_CUSTOMERS",
		report.ErrMissingSellers:         "MISSING_SELLERS",
		report.ErrMissingProducts:        "MISSING_PRODUCTS",
		report.ErrMissingPurchaseRecords: "MISSING_PURCHASE_RECORDS",
		report.ErrMissingOptions:         "MISSING_OPTIONS",
		report.ErrInvalidRevenueFn:       "INVALID_REVENUE_FN",
		report.ErrInvalidBonusFn:         "INVALID_BONUS_FN",
	} {
		if errors.Is(err, sentinel) {
			return http.StatusUnprocessableEntity, code
		}
	}
	return http.StatusBadRequest, "BAD_REQUEST"
}
