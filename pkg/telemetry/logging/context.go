package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for pipeline run IDs.
	RunIDKey contextKey = "run_id"

	// PassKey is the context key for the running pass name.
	PassKey contextKey = "pass"

	// PassIndexKey is the context key for the running pass position.
	PassIndexKey contextKey = "pass_index"

	// DocumentKey is the context key for the source document (usually a path).
	DocumentKey contextKey = "document"

	// TraceIDKey is the context key for trace IDs.
	TraceIDKey contextKey = "trace_id"
)

// WithRunID adds a pipeline run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the pipeline run ID from the context.
func GetRunID(ctx context.Context) string {
	if v, ok := ctx.Value(RunIDKey).(string); ok {
		return v
	}
	return ""
}

// WithPass adds the running pass and its index to the context.
func WithPass(ctx context.Context, index int, name string) context.Context {
	ctx = context.WithValue(ctx, PassIndexKey, index)
	return context.WithValue(ctx, PassKey, name)
}

// GetPass retrieves the running pass from the context. ok is false
// outside a pass.
func GetPass(ctx context.Context) (index int, name string, ok bool) {
	name, ok = ctx.Value(PassKey).(string)
	if !ok {
		return 0, "", false
	}
	index, _ = ctx.Value(PassIndexKey).(int)
	return index, name, true
}

// WithDocument adds the source document name to the context.
func WithDocument(ctx context.Context, document string) context.Context {
	return context.WithValue(ctx, DocumentKey, document)
}

// GetDocument retrieves the source document name from the context.
func GetDocument(ctx context.Context) string {
	if v, ok := ctx.Value(DocumentKey).(string); ok {
		return v
	}
	return ""
}

// WithTraceID adds a trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
func GetTraceID(ctx context.Context) string {
	if v, ok := ctx.Value(TraceIDKey).(string); ok {
		return v
	}
	return ""
}

// extractContextFields returns key-value pairs for every field set on ctx.
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if v := GetDocument(ctx); v != "" {
		fields = append(fields, "document", v)
	}
	if v := GetRunID(ctx); v != "" {
		fields = append(fields, "run_id", v)
	}
	if index, name, ok := GetPass(ctx); ok {
		fields = append(fields, "pass", name, "pass_index", index)
	}
	if v := GetTraceID(ctx); v != "" {
		fields = append(fields, "trace_id", v)
	}

	return fields
}

// WithContext creates a new logger carrying the context fields as
// attributes.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	args := extractContextFields(ctx)
	if len(args) == 0 {
		return l
	}
	return l.With(args...)
}
