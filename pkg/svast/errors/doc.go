// Package errors provides located error types for decoding serialized
// concrete trees.
//
// Every DecodeError carries a Kind, a Location (document path plus line and
// column when the document was parsed from text), optional surrounding
// lines and an optional suggestion. Decoding accumulates sibling problems in
// an ErrorList; ToError collapses a single-entry list to the DecodeError
// itself.
//
// # Error Format
//
//	[missing_field] ModuleDeclaration requires field "identifier"
//	  --> counter.json:4:5 ($.descriptions[0])
//	  |
//	   3 |   {
//	-> 4 |     "kind": "ModuleDeclaration",
//	     |     ^
//	  |
//	  = suggestion: Add the "identifier" field
//
// # Suggestions
//
// Unknown kinds and fields get an edit-distance suggestion:
//
//	errors.SuggestKind("IntegerTyp", kinds) // "Did you mean 'IntegerType'?"
package errors
