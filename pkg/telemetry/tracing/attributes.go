package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span and attribute names used by svast. Custom keys use the "svast.*"
// namespace.
const (
	SpanRun    = "svast.pipeline.run"
	SpanPass   = "svast.pass"
	SpanDecode = "svast.codec.decode"
	SpanEncode = "svast.codec.encode"

	AttrRunID         = "svast.run_id"
	AttrDocument      = "svast.document"
	AttrPassName      = "svast.pass.name"
	AttrPassKind      = "svast.pass.kind"
	AttrPassIndex     = "svast.pass.index"
	AttrPassCount     = "svast.pipeline.passes"
	AttrDocumentBytes = "svast.document.bytes"
	AttrFailure       = "svast.failure"
)

// RunAttributes returns the start attributes of a pipeline run span.
func RunAttributes(runID string, passes int) trace.SpanStartOption {
	return trace.WithAttributes(
		attribute.String(AttrRunID, runID),
		attribute.Int(AttrPassCount, passes),
	)
}

// PassAttributes returns the start attributes of a pass span.
func PassAttributes(index int, name, kind string) trace.SpanStartOption {
	return trace.WithAttributes(
		attribute.Int(AttrPassIndex, index),
		attribute.String(AttrPassName, name),
		attribute.String(AttrPassKind, kind),
	)
}

// SetDocumentSize records the size of the document a span handled.
func SetDocumentSize(span trace.Span, bytes int) {
	span.SetAttributes(attribute.Int(AttrDocumentBytes, bytes))
}

// SetFailure marks span with the failure message reported by an external
// pass.
func SetFailure(span trace.Span, message string) {
	span.SetAttributes(attribute.String(AttrFailure, message))
}
