package features

import "testing"

func TestComputeEmpty(t *testing.T) {
	m := Compute("")
	if m.LengthTotal != 0 || m.AlphabeticRatio != 0 {
		t.Fatalf("expected zero metrics for empty text, got %+v", m)
	}
}

func TestComputeMixed(t *testing.T) {
	m := Compute("Die Schweiz, 2024!")
	if m.LettersCount == 0 {
		t.Fatalf("expected nonzero letter count")
	}
	if m.NonLetterCount == 0 {
		t.Fatalf("expected nonzero non-letter count (digits/punctuation)")
	}
	want := float64(m.LettersCount) / float64(m.LengthTotal)
	if m.AlphabeticRatio != want {
		t.Fatalf("alpha ratio = %v, want %v", m.AlphabeticRatio, want)
	}
}

func TestStrippedLengthBoundary(t *testing.T) {
	fifty := "12345678901234567890123456789012345678901234567890"
	if StrippedLength(fifty) != 50 {
		t.Fatalf("expected 50, got %d", StrippedLength(fifty))
	}
	if StrippedLength("  "+fifty[:49]+"  ") != 49 {
		t.Fatalf("expected 49 after trimming whitespace")
	}
}
