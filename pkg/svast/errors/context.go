package errors

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// ExtractContext returns the lines of source around location, with the
// offending line marked and a caret under the column.
func ExtractContext(source []byte, location Location, contextLines int) string {
	if location.Line <= 0 {
		return ""
	}

	scanner := bufio.NewScanner(bytes.NewReader(source))
	scanner.Buffer(make([]byte, 0, 64*1024), len(source)+1)
	lines := make([]string, 0)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return ""
	}

	errorLine := location.Line - 1
	if errorLine >= len(lines) {
		return ""
	}
	startLine := max(errorLine-contextLines, 0)
	endLine := min(errorLine+contextLines, len(lines)-1)

	var sb strings.Builder
	maxLineNumWidth := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}
		sb.WriteString(fmt.Sprintf("%s %*d | %s\n", prefix, maxLineNumWidth, i+1, lines[i]))

		if i == errorLine && location.Column > 0 {
			padding := strings.Repeat(" ", location.Column-1)
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", maxLineNumWidth), padding))
		}
	}

	return sb.String()
}

// WithContext fills the Context of every decode error in err from source.
// It returns err unchanged for convenience.
func WithContext(err error, source []byte, contextLines int) error {
	for _, de := range All(err) {
		if de.Context == "" {
			de.Context = ExtractContext(source, de.Location, contextLines)
		}
	}
	return err
}
