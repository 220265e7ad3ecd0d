package common

import "errors"

// AppError is a client-facing failure: a stable code and HTTP status
// the handler layer can render directly, wrapping the underlying cause.
// Services return it for conditions the caller can act on, like an
// unknown policy name; everything else stays a plain error and maps to
// a generic response.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Message
	}
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError wrapping err.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// IsAppError reports whether err carries an AppError anywhere in its chain.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}
