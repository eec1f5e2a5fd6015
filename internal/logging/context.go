package logging

import "context"

type fieldsKey struct{}

// ContextWith returns a child context carrying key-value pairs that every
// Logger method appends to its record.
func ContextWith(ctx context.Context, args ...any) context.Context {
	prev := contextFields(ctx)
	fields := make([]any, 0, len(prev)+len(args))
	fields = append(fields, prev...)
	fields = append(fields, args...)
	return context.WithValue(ctx, fieldsKey{}, fields)
}

func contextFields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	f, _ := ctx.Value(fieldsKey{}).([]any)
	return f
}

// withContext prepends the context fields to args.
func withContext(ctx context.Context, args []any) []any {
	f := contextFields(ctx)
	if len(f) == 0 {
		return args
	}
	out := make([]any, 0, len(f)+len(args))
	return append(append(out, f...), args...)
}
