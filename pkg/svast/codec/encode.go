package codec

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"svdata-hq/svast/pkg/svast/concrete"
)

const kindKey = "kind"

// toYAML lowers a tree to a yaml.Node graph, the shared intermediate form of
// both renderings.
func toYAML(n concrete.Node) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	m.Content = append(m.Content, key(kindKey), key(string(n.Kind())))

	for _, f := range n.Fields() {
		m.Content = append(m.Content, key(f.Name))
		switch f.Kind {
		case concrete.FieldNode, concrete.FieldOptionalNode:
			if f.Node == nil {
				m.Content = append(m.Content, null())
			} else {
				m.Content = append(m.Content, toYAML(f.Node))
			}
		case concrete.FieldList:
			seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: make([]*yaml.Node, 0, len(f.List))}
			for _, item := range f.List {
				seq.Content = append(seq.Content, toYAML(item))
			}
			m.Content = append(m.Content, seq)
		default:
			if !f.Present {
				m.Content = append(m.Content, null())
			} else {
				m.Content = append(m.Content, quoted(f.Text))
			}
		}
	}
	return m
}

func key(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// quoted keeps literals as strings in YAML, so "8" never reads back as an
// integer.
func quoted(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s, Style: yaml.DoubleQuotedStyle}
}

func null() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func renderYAML(n *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderJSON writes the canonical JSON form: two-space indentation, keys in
// node order, a trailing newline.
func renderJSON(n *yaml.Node) []byte {
	var buf bytes.Buffer
	writeJSON(&buf, n, 0)
	buf.WriteByte('\n')
	return buf.Bytes()
}

func writeJSON(buf *bytes.Buffer, n *yaml.Node, depth int) {
	switch n.Kind {
	case yaml.MappingNode:
		if len(n.Content) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteString("{\n")
		for i := 0; i < len(n.Content); i += 2 {
			indent(buf, depth+1)
			writeString(buf, n.Content[i].Value)
			buf.WriteString(": ")
			writeJSON(buf, n.Content[i+1], depth+1)
			if i+2 < len(n.Content) {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		indent(buf, depth)
		buf.WriteByte('}')
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[\n")
		for i, item := range n.Content {
			indent(buf, depth+1)
			writeJSON(buf, item, depth+1)
			if i+1 < len(n.Content) {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		indent(buf, depth)
		buf.WriteByte(']')
	default:
		if n.Tag == "!!null" {
			buf.WriteString("null")
			return
		}
		writeString(buf, n.Value)
	}
}

func indent(buf *bytes.Buffer, depth int) {
	buf.WriteString(strings.Repeat("  ", depth))
}

// writeString quotes s per RFC 8259 without HTML escaping.
func writeString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
}
