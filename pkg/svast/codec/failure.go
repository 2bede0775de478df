package codec

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

const failureKey = "failure"

// EncodeFailure builds the failure envelope {"failure": msg} an external
// pass emits instead of a tree.
func EncodeFailure(msg string) Document {
	var buf bytes.Buffer
	buf.WriteString("{\n  ")
	writeString(&buf, failureKey)
	buf.WriteString(": ")
	writeString(&buf, msg)
	buf.WriteString("\n}\n")
	return Document{data: buf.Bytes()}
}

// IsFailure reports whether doc is a failure envelope and returns its
// message. A record is an envelope when "failure" is its only field and
// holds a string.
func IsFailure(doc Document) (string, bool) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc.data, &root); err != nil {
		return "", false
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return "", false
	}
	m := root.Content[0]
	if m.Kind != yaml.MappingNode || len(m.Content) != 2 {
		return "", false
	}
	k, v := m.Content[0], m.Content[1]
	if !isString(k) || k.Value != failureKey || !isString(v) {
		return "", false
	}
	return v.Value, true
}
