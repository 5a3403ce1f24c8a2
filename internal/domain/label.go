package domain

// ChoiceCount is the fixed number of choices shown for every question.
const ChoiceCount = 4

// Placeholder is shown for choice slots the source left empty or never supplied.
const Placeholder = "（未設定）"

// Label identifies a choice slot by its position.
type Label string

const (
	LabelA Label = "ア"
	LabelI Label = "イ"
	LabelU Label = "ウ"
	LabelE Label = "エ"
)

// Labels lists the choice labels in display order; Labels[i] names position i.
var Labels = [ChoiceCount]Label{LabelA, LabelI, LabelU, LabelE}

// Index returns the position of the label, or -1 when it is not one of Labels.
func (l Label) Index() int {
	for i, candidate := range Labels {
		if candidate == l {
			return i
		}
	}
	return -1
}

// Valid reports whether l is one of the four positional labels.
func (l Label) Valid() bool {
	return l.Index() >= 0
}

// LabelAt maps a zero-based position to its label.
func LabelAt(i int) (Label, bool) {
	if i < 0 || i >= ChoiceCount {
		return "", false
	}
	return Labels[i], true
}
