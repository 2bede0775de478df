package errors

import (
	"fmt"
	"strings"
)

// Kind categorizes a decode failure.
type Kind string

const (
	KindSyntax            Kind = "syntax"              // Document is not well-formed JSON/YAML
	KindTooLarge          Kind = "too_large"           // Document exceeds the size limit
	KindDepthExceeded     Kind = "depth_exceeded"      // Nesting exceeds the depth limit
	KindAlias             Kind = "alias"               // YAML anchors/aliases are not part of the format
	KindNotARecord        Kind = "not_a_record"        // Node position holds something other than a mapping
	KindNotASequence      Kind = "not_a_sequence"      // Repetition field is not a sequence
	KindNotText           Kind = "not_text"            // Literal field is not a string
	KindMissingKind       Kind = "missing_kind"        // Record has no "kind" tag
	KindUnknownKind       Kind = "unknown_kind"        // Tag names no production
	KindUnknownField      Kind = "unknown_field"       // Field not in the production
	KindDuplicateField    Kind = "duplicate_field"     // Field given twice
	KindMissingField      Kind = "missing_field"       // Required field absent
	KindVariantNotAllowed Kind = "variant_not_allowed" // Tag not admissible at this position
	KindLexical           Kind = "lexical"             // Literal text fails its terminal's lexical form
	KindInvalidTree       Kind = "invalid_tree"        // Cross-field constraint violated
	KindUnexpectedRoot    Kind = "unexpected_root"     // Root variant differs from the one requested
)

// Location identifies the offending fragment of a document: a path from the
// root ($.descriptions[0].ports) plus, when known, the line and column.
type Location struct {
	Source string
	Path   string
	Line   int
	Column int
}

// IsValid reports whether the location carries any position information.
func (l Location) IsValid() bool {
	return l.Path != "" || l.Line > 0
}

// String formats the location as source:line:column (path).
func (l Location) String() string {
	var sb strings.Builder
	if l.Source != "" {
		sb.WriteString(l.Source)
	}
	if l.Line > 0 {
		if sb.Len() > 0 {
			sb.WriteByte(':')
		}
		fmt.Fprintf(&sb, "%d:%d", l.Line, l.Column)
	}
	if l.Path != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
			fmt.Fprintf(&sb, "(%s)", l.Path)
		} else {
			sb.WriteString(l.Path)
		}
	}
	return sb.String()
}

// Child returns the location of a named field below l.
func (l Location) Child(field string) Location {
	return Location{Source: l.Source, Path: pathOrRoot(l.Path) + "." + field}
}

// Index returns the location of a sequence element below l.
func (l Location) Index(i int) Location {
	return Location{Source: l.Source, Path: fmt.Sprintf("%s[%d]", pathOrRoot(l.Path), i)}
}

// At returns l with the given line and column.
func (l Location) At(line, column int) Location {
	l.Line, l.Column = line, column
	return l
}

func pathOrRoot(p string) string {
	if p == "" {
		return "$"
	}
	return p
}

// DecodeError is a located decode failure with optional source context and
// a suggested fix.
type DecodeError struct {
	Kind       Kind
	Message    string
	Location   Location
	Context    string // Surrounding lines of the document
	Suggestion string
	Err        error // Underlying cause, if any
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s\n", e.Kind, e.Message))

	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("  --> %s\n", e.Location.String()))
	}

	if e.Context != "" {
		sb.WriteString("  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |\n")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", e.Suggestion))
	}

	return sb.String()
}

// Short returns the error on one line, for logs and failure envelopes.
func (e *DecodeError) Short() string {
	if e.Location.IsValid() {
		return fmt.Sprintf("%s: %s at %s", e.Kind, e.Message, e.Location)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrorList accumulates decode errors so sibling problems are reported
// together.
type ErrorList struct {
	Errors []*DecodeError
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*DecodeError, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *DecodeError) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error.
func (el *ErrorList) AddError(kind Kind, message string, location Location) {
	el.Add(&DecodeError{
		Kind:     kind,
		Message:  message,
		Location: location,
	})
}

// AddErrorWithSuggestion creates and adds a new error with a suggestion.
func (el *ErrorList) AddErrorWithSuggestion(kind Kind, message string, location Location, suggestion string) {
	el.Add(&DecodeError{
		Kind:       kind,
		Message:    message,
		Location:   location,
		Suggestion: suggestion,
	})
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Error %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (el *ErrorList) Unwrap() []error {
	out := make([]error, len(el.Errors))
	for i, err := range el.Errors {
		out[i] = err
	}
	return out
}

// ToError returns nil for an empty list, the single error when there is
// exactly one, and the list itself otherwise.
func (el *ErrorList) ToError() error {
	switch len(el.Errors) {
	case 0:
		return nil
	case 1:
		return el.Errors[0]
	default:
		return el
	}
}

// ByKind returns all errors of the given kind.
func (el *ErrorList) ByKind(kind Kind) []*DecodeError {
	var result []*DecodeError
	for _, err := range el.Errors {
		if err.Kind == kind {
			result = append(result, err)
		}
	}
	return result
}

// HasKind returns true if the list contains at least one error of the
// given kind.
func (el *ErrorList) HasKind(kind Kind) bool {
	for _, err := range el.Errors {
		if err.Kind == kind {
			return true
		}
	}
	return false
}

// All flattens err into its decode errors. It accepts a *DecodeError, an
// *ErrorList or anything wrapping them; other errors yield nil.
func All(err error) []*DecodeError {
	switch e := err.(type) {
	case nil:
		return nil
	case *DecodeError:
		return []*DecodeError{e}
	case *ErrorList:
		return append([]*DecodeError(nil), e.Errors...)
	case interface{ Unwrap() []error }:
		var out []*DecodeError
		for _, inner := range e.Unwrap() {
			out = append(out, All(inner)...)
		}
		return out
	case interface{ Unwrap() error }:
		return All(e.Unwrap())
	}
	return nil
}
