package snli

import (
	"fmt"
	"strings"
)

/*
ParseRecord parses one tab-separated SNLI line into an Example.

Column 0 is the gold label, columns 1 and 2 the parenthesized parse trees of
premise and hypothesis. The boolean result is false for records that must be
skipped (gold label "-", annotator disagreement). The header line of each
file is not a record and must be handled by the caller.
*/
func ParseRecord(line string) (Example, bool, error) {
	cols := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(cols) < 3 {
		return Example{}, false, fmt.Errorf("%w: %d columns", ErrMalformedRecord, len(cols))
	}

	if cols[0] == labelSkip {
		return Example{}, false, nil
	}

	label, err := ParseLabel(cols[0])
	if err != nil {
		return Example{}, false, err
	}

	return Example{
		Premise:    Tokenize(cols[1]),
		Hypothesis: Tokenize(cols[2]),
		Label:      label,
	}, true, nil
}

/*
Tokenize splits a parenthesized parse-tree string on single spaces and drops
the bracket tokens "(" and ")", which are parse-tree artifacts, not words.
*/
func Tokenize(s string) []string {
	fields := strings.Split(s, " ")
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "(" || f == ")" {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
