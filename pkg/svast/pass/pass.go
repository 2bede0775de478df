package pass

import (
	"context"
	"fmt"

	"svdata-hq/svast/pkg/svast/codec"
	"svdata-hq/svast/pkg/svast/concrete"
)

// Kind distinguishes in-process passes from passes that exchange
// documents.
type Kind string

const (
	KindInternal Kind = "internal"
	KindExternal Kind = "external"
)

// Pass is one step of a Pipeline. Passes are created with Internal,
// External, Command or RenameIdentifier.
type Pass interface {
	// Name identifies the pass in results, logs and snapshots.
	Name() string

	// Kind reports whether the pass runs in process or on documents.
	Kind() Kind

	apply(ctx context.Context, x *exchange, tree concrete.Node) (concrete.Node, error)
}

// InternalFunc transforms an immutable tree. It must not retain or modify
// its input; returning an error declines the transformation.
type InternalFunc func(tree concrete.Node) (concrete.Node, error)

// ExternalFunc transforms a document. It returns either a document holding
// a tree, a failure envelope (see codec.EncodeFailure) or an error.
type ExternalFunc func(ctx context.Context, doc codec.Document) (codec.Document, error)

type internalPass struct {
	name string
	fn   InternalFunc
}

// Internal creates an in-process pass.
func Internal(name string, fn InternalFunc) Pass {
	return &internalPass{name: name, fn: fn}
}

func (p *internalPass) Name() string { return p.name }
func (p *internalPass) Kind() Kind   { return KindInternal }

func (p *internalPass) apply(_ context.Context, _ *exchange, tree concrete.Node) (concrete.Node, error) {
	return p.fn(tree)
}

type externalPass struct {
	name string
	fn   ExternalFunc
}

// External creates a pass that runs on the serialized tree. The pipeline
// encodes the tree before calling fn and decodes the document it returns.
// A failure envelope or an undecodable document fails the pass.
func External(name string, fn ExternalFunc) Pass {
	return &externalPass{name: name, fn: fn}
}

func (p *externalPass) Name() string { return p.name }
func (p *externalPass) Kind() Kind   { return KindExternal }

func (p *externalPass) apply(ctx context.Context, x *exchange, tree concrete.Node) (concrete.Node, error) {
	in, err := x.encode(ctx, tree)
	if err != nil {
		return nil, err
	}

	out, err := p.fn(ctx, in)
	if err != nil {
		return nil, err
	}
	if msg, ok := codec.IsFailure(out); ok {
		return nil, &declined{message: msg}
	}

	result, err := x.decode(ctx, out, p.name)
	if err != nil {
		return nil, fmt.Errorf("invalid output document: %w", err)
	}
	return result, nil
}

// declined is the error of an external pass that answered with a failure
// envelope.
type declined struct {
	message string
}

func (d *declined) Error() string { return d.message }
