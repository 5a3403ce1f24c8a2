package domain

import "testing"

func TestLabelIndex(t *testing.T) {
	for i, l := range Labels {
		if got := l.Index(); got != i {
			t.Fatalf("label %s: expected index %d, got %d", l, i, got)
		}
		if !l.Valid() {
			t.Fatalf("label %s should be valid", l)
		}
	}
	if Label("A").Valid() || Label("").Valid() {
		t.Fatalf("expected unknown labels to be invalid")
	}
}

func TestLabelAt(t *testing.T) {
	if l, ok := LabelAt(2); !ok || l != LabelU {
		t.Fatalf("expected ウ at 2, got %q ok=%v", l, ok)
	}
	for _, i := range []int{-1, 4, 5} {
		if _, ok := LabelAt(i); ok {
			t.Fatalf("expected no label at %d", i)
		}
	}
}

func TestQuestionChoiceText(t *testing.T) {
	q := Question{Choices: [ChoiceCount]string{"a", "", "c", "d"}, Correct: LabelI}
	if got := q.CorrectText(); got != Placeholder {
		t.Fatalf("expected placeholder for empty slot, got %q", got)
	}
	if got := q.ChoiceText(LabelE); got != "d" {
		t.Fatalf("expected d, got %q", got)
	}
	if got := q.ChoiceText("x"); got != "" {
		t.Fatalf("expected empty text for unknown label, got %q", got)
	}
}
