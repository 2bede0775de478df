// Package svast is the entry point for working with SystemVerilog syntax
// trees as documents.
//
// The subpackages hold the pieces: concrete (grammar-shaped nodes), codec
// (documents), abstract (semantic views) and pass (transformations). This
// package wires them together for the common cases:
//
//	tree, err := svast.Decode(data)
//	for _, r := range svast.IntegerRanges(tree, nil) {
//	    fmt.Println(r.Path, r.Min, r.Max)
//	}
package svast

import (
	"fmt"

	"svdata-hq/svast/pkg/svast/abstract"
	"svdata-hq/svast/pkg/svast/codec"
	"svdata-hq/svast/pkg/svast/concrete"
	sverrors "svdata-hq/svast/pkg/svast/errors"
)

// Decode parses a JSON or YAML document into a concrete tree.
func Decode(data []byte) (concrete.Node, error) {
	return codec.Decode(codec.NewDocument(data))
}

// Encode serializes tree as canonical JSON.
func Encode(tree concrete.Node) ([]byte, error) {
	doc, err := codec.Encode(tree)
	if err != nil {
		return nil, err
	}
	return doc.Bytes(), nil
}

// RoundTrip encodes and decodes tree, returning the decoded copy. The
// result is structurally equal to tree.
func RoundTrip(tree concrete.Node) (concrete.Node, error) {
	doc, err := codec.Encode(tree)
	if err != nil {
		return nil, err
	}
	out, err := codec.Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}
	return out, nil
}

// IntegerRange is the representable range of one IntegerType in a tree.
type IntegerRange struct {
	// Path locates the type in document path syntax, e.g.
	// "$.descriptions[1].items[0].data_type".
	Path string `json:"path"`

	// Type is the type as written, e.g. "logic [7:0]".
	Type string `json:"type"`

	Signed    bool           `json:"signed"`
	FourState bool           `json:"four_state"`
	Width     abstract.Bound `json:"width"`
	Min       abstract.Bound `json:"min"`
	Max       abstract.Bound `json:"max"`
}

// IntegerRanges returns the range of every IntegerType in tree in
// pre-order. Views come from cache when it is non-nil.
func IntegerRanges(tree concrete.Node, cache *abstract.Cache) []IntegerRange {
	var out []IntegerRange
	walkPaths(tree, sverrors.Location{}, func(n concrete.Node, loc sverrors.Location) {
		it, ok := n.(*concrete.IntegerType)
		if !ok {
			return
		}
		var v *abstract.Integral
		if cache != nil {
			v = cache.Integral(tree, it)
		} else {
			v = abstract.NewIntegral(it)
		}
		out = append(out, IntegerRange{
			Path:      loc.Path,
			Type:      v.String(),
			Signed:    v.Signed(),
			FourState: v.FourState(),
			Width:     v.Width(),
			Min:       v.MinimumValue(),
			Max:       v.MaximumValue(),
		})
	})
	return out
}

func walkPaths(n concrete.Node, loc sverrors.Location, fn func(concrete.Node, sverrors.Location)) {
	if n == nil {
		return
	}
	if loc.Path == "" {
		loc.Path = "$"
	}
	fn(n, loc)
	for _, f := range n.Fields() {
		switch f.Kind {
		case concrete.FieldNode, concrete.FieldOptionalNode:
			walkPaths(f.Node, loc.Child(f.Name), fn)
		case concrete.FieldList:
			child := loc.Child(f.Name)
			for i, item := range f.List {
				walkPaths(item, child.Index(i), fn)
			}
		}
	}
}
