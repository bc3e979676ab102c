package assembly

import (
	"testing"
)

func classifiedParts() []Part {
	return []Part{
		{Name: "a", Class: NonObstructive},
		{Name: "b", Class: LessObstructive},
		{Name: "c", Class: Full},
	}
}

func names(parts []Part) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = p.Name
	}
	return out
}

func TestVisiblePartsFiltersByClass(t *testing.T) {
	parts := classifiedParts()

	if got := names(VisibleParts(parts, NonObstructive)); len(got) != 1 || got[0] != "a" {
		t.Fatalf("VisibleParts(NonObstructive) = %v, want [a]", got)
	}
	if got := names(VisibleParts(parts, LessObstructive)); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("VisibleParts(LessObstructive) = %v, want [a b]", got)
	}
	if got := names(VisibleParts(parts, Full)); len(got) != 3 {
		t.Fatalf("VisibleParts(Full) = %v, want all 3 parts", got)
	}
}

func TestFullPartsReturnsEverything(t *testing.T) {
	parts := classifiedParts()
	if got := FullParts(parts); len(got) != len(parts) {
		t.Fatalf("FullParts dropped parts: got %d, want %d", len(got), len(parts))
	}
}

func TestLessObstructivePartsSuppressesFullyObstructive(t *testing.T) {
	parts := classifiedParts()
	got := names(LessObstructiveParts(parts))
	if len(got) != 2 {
		t.Fatalf("LessObstructiveParts = %v, want 2 entries", got)
	}
	for _, n := range got {
		if n == "c" {
			t.Fatalf("LessObstructiveParts should suppress the Full part, got %v", got)
		}
	}
}

func TestNonObstructivePartsKeepsOnlyNonObstructive(t *testing.T) {
	parts := classifiedParts()
	got := names(NonObstructiveParts(parts))
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("NonObstructiveParts = %v, want [a]", got)
	}
}

func TestVisiblePartsEmptyInputIsEmptyOutput(t *testing.T) {
	if got := VisibleParts(nil, Full); len(got) != 0 {
		t.Fatalf("VisibleParts(nil) = %v, want empty", got)
	}
}
