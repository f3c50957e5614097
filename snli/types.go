package snli

import "fmt"

/*
Label is one of the three SNLI gold labels
*/
type Label int

const (
	LabelEntailment    Label = iota // 0
	LabelContradiction              // 1
	LabelNeutral                    // 2
)

// labelSkip marks records the annotators could not agree on; they carry no
// usable label and are dropped during parsing.
const labelSkip = "-"

/*
ParseLabel converts a gold label string to a Label
*/
func ParseLabel(s string) (Label, error) {
	switch s {
	case "entailment":
		return LabelEntailment, nil
	case "contradiction":
		return LabelContradiction, nil
	case "neutral":
		return LabelNeutral, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, s)
	}
}

/*
String returns the string representation of the label
*/
func (l Label) String() string {
	switch l {
	case LabelEntailment:
		return "entailment"
	case LabelContradiction:
		return "contradiction"
	case LabelNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

/*
Example is one labeled sentence pair
*/
type Example struct {
	Premise    []string `json:"premise"`
	Hypothesis []string `json:"hypothesis"`
	Label      Label    `json:"label"`
}
