package codec

import (
	"fmt"

	"svdata-hq/svast/pkg/svast/concrete"
	sverrors "svdata-hq/svast/pkg/svast/errors"
)

const (
	// DefaultMaxDepth bounds record nesting in a decoded document.
	DefaultMaxDepth = 512
	// DefaultMaxDocumentSize bounds the size of a decoded document.
	DefaultMaxDocumentSize = 64 * 1024 * 1024
)

// Codec converts concrete trees to and from documents. A configured Codec
// is safe for concurrent use.
type Codec struct {
	format          Format
	maxDepth        int
	maxDocumentSize int
}

// New creates a codec that writes canonical JSON.
func New() *Codec {
	return &Codec{
		format:          FormatJSON,
		maxDepth:        DefaultMaxDepth,
		maxDocumentSize: DefaultMaxDocumentSize,
	}
}

// WithFormat sets the rendering used by Encode. Decode accepts both.
func (c *Codec) WithFormat(format Format) *Codec {
	c.format = format
	return c
}

// WithMaxDepth sets the maximum record nesting depth accepted by Decode.
func (c *Codec) WithMaxDepth(depth int) *Codec {
	c.maxDepth = depth
	return c
}

// WithMaxDocumentSize sets the maximum document size in bytes accepted by
// Decode.
func (c *Codec) WithMaxDocumentSize(size int) *Codec {
	c.maxDocumentSize = size
	return c
}

// Format returns the encode format.
func (c *Codec) Format() Format { return c.format }

// Encode serializes a tree. The result depends only on the tree, so the
// same tree always yields the same bytes.
func (c *Codec) Encode(n concrete.Node) (Document, error) {
	if n == nil {
		return Document{}, fmt.Errorf("encode: nil tree")
	}
	y := toYAML(n)
	switch c.format {
	case FormatYAML:
		data, err := renderYAML(y)
		if err != nil {
			return Document{}, fmt.Errorf("encode: %w", err)
		}
		return Document{data: data}, nil
	default:
		return Document{data: renderJSON(y)}, nil
	}
}

// MustEncode is like Encode but panics on error.
func (c *Codec) MustEncode(n concrete.Node) Document {
	doc, err := c.Encode(n)
	if err != nil {
		panic(err)
	}
	return doc
}

// Decode parses and validates a document. On failure it returns a
// *errors.DecodeError or an *errors.ErrorList and never a partial tree.
func (c *Codec) Decode(doc Document) (concrete.Node, error) {
	return c.DecodeSource(doc, "")
}

// DecodeSource is Decode with a source name (usually a file path) recorded
// in error locations.
func (c *Codec) DecodeSource(doc Document, source string) (concrete.Node, error) {
	d := &decoder{
		codec:  c,
		source: source,
		data:   doc.data,
		errs:   sverrors.NewErrorList(),
	}
	n := d.decode()
	if err := d.errs.ToError(); err != nil {
		return nil, sverrors.WithContext(err, doc.data, 2)
	}
	return n, nil
}

// DecodeAs decodes a document whose root must be the variant T.
func DecodeAs[T concrete.Node](c *Codec, doc Document) (T, error) {
	var zero T
	n, err := c.Decode(doc)
	if err != nil {
		return zero, err
	}
	t, ok := n.(T)
	if !ok {
		return zero, &sverrors.DecodeError{
			Kind:     sverrors.KindUnexpectedRoot,
			Message:  fmt.Sprintf("root is %s, want %T", n.Kind(), zero),
			Location: sverrors.Location{Path: "$"},
		}
	}
	return t, nil
}

var defaultCodec = New()

// Encode serializes a tree as canonical JSON.
func Encode(n concrete.Node) (Document, error) { return defaultCodec.Encode(n) }

// MustEncode serializes a tree as canonical JSON, panicking on error.
func MustEncode(n concrete.Node) Document { return defaultCodec.MustEncode(n) }

// Decode parses a JSON or YAML document with default limits.
func Decode(doc Document) (concrete.Node, error) { return defaultCodec.Decode(doc) }
