package ics

import "strings"

// FoldWidth is the maximum length of a serialized content line fragment. It
// doubles as the short-string threshold below which no folding happens; the
// two are kept as one constant on purpose.
const FoldWidth = 73

// Fold chunks s into fragments of at most length bytes each. Inputs no
// longer than FoldWidth are returned as a single fragment. Concatenating the
// fragments in order reproduces s exactly.
func Fold(s string, length int) []string {
	if len(s) <= FoldWidth {
		return []string{s}
	}

	fragments := make([]string, 0, len(s)/length+1)
	for i := 0; i < len(s); i += length {
		end := i + length
		if end > len(s) {
			end = len(s)
		}
		fragments = append(fragments, s[i:end])
	}

	return fragments
}

// foldLine folds s at FoldWidth and joins the fragments with the iCalendar
// continuation sequence (newline followed by one space).
func foldLine(s string) string {
	return strings.Join(Fold(s, FoldWidth), "\n ")
}
