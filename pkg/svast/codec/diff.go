package codec

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOp classifies a line of a document diff.
type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffInsert
	DiffDelete
)

// DiffLine is one line of a line-oriented document diff. Text excludes the
// line terminator.
type DiffLine struct {
	Op   DiffOp
	Text string
}

// Diff compares two documents line by line.
func Diff(a, b Document) []DiffLine {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a.String(), b.String())
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var out []DiffLine
	for _, d := range diffs {
		op := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffInsert
		case diffmatchpatch.DiffDelete:
			op = DiffDelete
		}
		for _, line := range splitLines(d.Text) {
			out = append(out, DiffLine{Op: op, Text: line})
		}
	}
	return out
}

// UnifiedDiff renders the differences between a and b in unified format
// with the given number of context lines. Identical documents give "".
func UnifiedDiff(a, b Document, nameA, nameB string, context int) string {
	lines := Diff(a, b)

	changed := false
	for _, l := range lines {
		if l.Op != DiffEqual {
			changed = true
			break
		}
	}
	if !changed {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", nameA, nameB)

	// Line numbers (1-based) of each entry in a and b.
	posA, posB := make([]int, len(lines)), make([]int, len(lines))
	na, nb := 1, 1
	for i, l := range lines {
		posA[i], posB[i] = na, nb
		if l.Op != DiffInsert {
			na++
		}
		if l.Op != DiffDelete {
			nb++
		}
	}

	for i := 0; i < len(lines); {
		if lines[i].Op == DiffEqual {
			i++
			continue
		}
		start := max(i-context, 0)
		end := i
		// Extend the hunk while the next change is within 2*context lines.
		for j := i; j < len(lines); j++ {
			if lines[j].Op != DiffEqual {
				end = j
				continue
			}
			if j-end > 2*context {
				break
			}
		}
		stop := min(end+context+1, len(lines))

		countA, countB := 0, 0
		for _, l := range lines[start:stop] {
			if l.Op != DiffInsert {
				countA++
			}
			if l.Op != DiffDelete {
				countB++
			}
		}
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", posA[start], countA, posB[start], countB)
		for _, l := range lines[start:stop] {
			switch l.Op {
			case DiffInsert:
				sb.WriteByte('+')
			case DiffDelete:
				sb.WriteByte('-')
			default:
				sb.WriteByte(' ')
			}
			sb.WriteString(l.Text)
			sb.WriteByte('\n')
		}
		i = stop
	}
	return sb.String()
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\n")
	}
	return lines
}
