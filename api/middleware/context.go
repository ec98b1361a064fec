package middleware

import "context"

type contextKey string

const (
	ctxOperatorEmail contextKey = "operator_email"
	ctxAccessID      contextKey = "access_id"
)

// OperatorEmailFromContext returns the authenticated operator's email.
func OperatorEmailFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxOperatorEmail).(string); ok {
		return v
	}
	return ""
}

// AccessIDFromContext returns the session identifier behind the request.
func AccessIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessID).(string); ok {
		return v
	}
	return ""
}

// WithOperator injects the operator identity into the context.
func WithOperator(ctx context.Context, email, accessID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxOperatorEmail, email)
	return context.WithValue(ctx, ctxAccessID, accessID)
}
