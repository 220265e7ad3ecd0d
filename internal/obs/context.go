package obs

import "context"

type ctxKey int

const routePatternCtxKey ctxKey = iota

// WithRoutePattern records the matched chi route pattern so downstream
// middleware can label metrics and spans by route instead of raw path.
func WithRoutePattern(ctx context.Context, pattern string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, routePatternCtxKey, pattern)
}

// RoutePatternFromContext returns the recorded pattern, or "" when the
// request never matched a route.
func RoutePatternFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	pattern, _ := ctx.Value(routePatternCtxKey).(string)
	return pattern
}
