package codec

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Format selects the textual rendering of a document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown document format %q (want json or yaml)", s)
	}
}

// Document is a serialized concrete tree. Two documents with the same
// bytes are interchangeable; a Document never changes after creation.
type Document struct {
	data []byte
}

// NewDocument wraps a copy of data.
func NewDocument(data []byte) Document {
	return Document{data: bytes.Clone(data)}
}

// Bytes returns a copy of the document content.
func (d Document) Bytes() []byte { return bytes.Clone(d.data) }

// String returns the document content.
func (d Document) String() string { return string(d.data) }

// Len returns the size of the document in bytes.
func (d Document) Len() int { return len(d.data) }

// IsEmpty reports whether the document has no content.
func (d Document) IsEmpty() bool { return len(bytes.TrimSpace(d.data)) == 0 }

// Equal reports whether two documents have identical content.
func (d Document) Equal(other Document) bool { return bytes.Equal(d.data, other.data) }

// Digest returns the hex SHA-256 of the content.
func (d Document) Digest() string {
	sum := sha256.Sum256(d.data)
	return hex.EncodeToString(sum[:])
}
