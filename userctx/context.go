package userctx

import "context"

// Context key type
type contextKey string

const operatorKey contextKey = "operator"

// Operator is the authenticated person reading the telemetry API
type Operator struct {
	Subject string
	Name    string
}

// WithOperator adds the operator to request context
func WithOperator(ctx context.Context, op Operator) context.Context {
	return context.WithValue(ctx, operatorKey, op)
}

// OperatorFrom retrieves the operator from request context
func OperatorFrom(ctx context.Context) (Operator, bool) {
	op, ok := ctx.Value(operatorKey).(Operator)
	return op, ok
}

// OperatorName returns the operator display name, or "anonymous" when the API is open
func OperatorName(ctx context.Context) string {
	if op, ok := OperatorFrom(ctx); ok && op.Name != "" {
		return op.Name
	}
	return "anonymous"
}
