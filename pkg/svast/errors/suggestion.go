package errors

import (
	"fmt"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// maxSuggestionDistance bounds how far a typo may be from a candidate.
const maxSuggestionDistance = 4

// Closest returns the candidate nearest to unknown by edit distance, or ""
// when none is within maxSuggestionDistance.
func Closest(unknown string, candidates []string) string {
	best, bestDist := "", maxSuggestionDistance+1
	for _, c := range candidates {
		d := levenshtein.DistanceForStrings([]rune(strings.ToLower(unknown)), []rune(strings.ToLower(c)), levenshtein.DefaultOptions)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// SuggestKind suggests a production tag for an unknown one.
func SuggestKind(unknown string, kinds []string) string {
	if match := Closest(unknown, kinds); match != "" {
		return fmt.Sprintf("Did you mean '%s'?", match)
	}
	return ""
}

// SuggestFieldName suggests possible field names when an unknown field is
// present.
func SuggestFieldName(unknown string, validFields []string) string {
	if len(validFields) == 0 {
		return "This production has no fields"
	}
	if match := Closest(unknown, validFields); match != "" {
		return fmt.Sprintf("Did you mean '%s'?", match)
	}
	return fmt.Sprintf("Valid fields: %s", strings.Join(validFields, ", "))
}

// SuggestVariant lists the tags admissible at a position.
func SuggestVariant(got string, allowed []string) string {
	if match := Closest(got, allowed); match != "" && match != got {
		return fmt.Sprintf("Did you mean '%s'?", match)
	}
	return fmt.Sprintf("Allowed kinds: %s", strings.Join(allowed, ", "))
}

// SuggestMissingField suggests adding a required field.
func SuggestMissingField(fieldName, example string) string {
	if example != "" {
		return fmt.Sprintf("Add \"%s\": %s", fieldName, example)
	}
	return fmt.Sprintf("Add the \"%s\" field", fieldName)
}
