package pass

import (
	"context"

	"svdata-hq/svast/pkg/svast/codec"
	"svdata-hq/svast/pkg/svast/concrete"
	sverrors "svdata-hq/svast/pkg/svast/errors"
	"svdata-hq/svast/pkg/telemetry/metrics"
	"svdata-hq/svast/pkg/telemetry/tracing"
)

// exchange encodes and decodes documents on behalf of external passes,
// recording sizes, decode errors and codec spans.
type exchange struct {
	codec   *codec.Codec
	metrics *metrics.Collector
	tracer  *tracing.Tracer
}

func (x *exchange) encode(ctx context.Context, tree concrete.Node) (codec.Document, error) {
	_, span := x.tracer.Start(ctx, tracing.SpanEncode)
	defer span.End()

	doc, err := x.codec.Encode(tree)
	tracing.SetStatus(span, err)
	if err != nil {
		return codec.Document{}, err
	}
	tracing.SetDocumentSize(span, doc.Len())
	x.metrics.RecordDocument(metrics.OperationEncode, doc.Len())
	return doc, nil
}

func (x *exchange) decode(ctx context.Context, doc codec.Document, source string) (concrete.Node, error) {
	_, span := x.tracer.Start(ctx, tracing.SpanDecode)
	defer span.End()

	tracing.SetDocumentSize(span, doc.Len())
	x.metrics.RecordDocument(metrics.OperationDecode, doc.Len())

	tree, err := x.codec.DecodeSource(doc, source)
	tracing.SetStatus(span, err)
	if err != nil {
		for _, de := range sverrors.All(err) {
			x.metrics.RecordDecodeError(string(de.Kind))
		}
		return nil, err
	}
	return tree, nil
}
