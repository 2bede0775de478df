// Package codec converts concrete trees to and from serialized documents.
//
// # Canonical form
//
// Encode writes UTF-8 JSON with two-space indentation and a trailing
// newline. Each node is an object whose first key is "kind" (the
// production name), followed by the production's fields in schema order.
// Repetitions are always arrays, "[]" when empty. Absent optionals are
// null. Literals (identifiers, numbers, keywords, operators) are strings.
//
//	{
//	  "kind": "IntegerType",
//	  "keyword": "int",
//	  "signing": null,
//	  "packed_dimensions": []
//	}
//
// Encoding is deterministic, so a tree always yields the same bytes.
// WithFormat(FormatYAML) renders the same structure as YAML.
//
// # Decoding
//
// Decode accepts JSON or YAML and validates the whole document against the
// production schema: kinds, field names, arity, admissible variants at each
// position and the lexical form of every literal. Problems are reported as
// *errors.DecodeError values with a document path and line/column, several
// at once in an *errors.ErrorList. No tree is returned unless the entire
// document is valid.
//
// # External passes
//
// A program that cannot produce a tree answers with a failure envelope,
// {"failure": "<message>"}; see EncodeFailure and IsFailure.
package codec
