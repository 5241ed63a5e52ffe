package dictionary

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSimplify_ReplacesKnownTerms(t *testing.T) {
	got := Simplify("Patient has hypertension and dyspnea.")
	// "hypertension" becomes "high blood pressure", which the later
	// "blood pressure" entry rewrites again to "high bp".
	if !strings.Contains(got, "high bp") {
		t.Fatalf("expected hypertension replaced, got %q", got)
	}
	if !strings.Contains(got, "shortness of breath") {
		t.Fatalf("expected dyspnea replaced, got %q", got)
	}
}

// Replacements run sequentially over the accumulated string, so the output
// of one entry can be rewritten by a later one.
func TestSimplify_CascadingReplacements(t *testing.T) {
	got := Simplify("Diagnosis: hypertension.")
	if !strings.Contains(got, "high bp") {
		t.Fatalf("expected cascaded replacement, got %q", got)
	}
	if strings.Contains(got, "blood pressure") {
		t.Fatalf("intermediate form must not survive, got %q", got)
	}
}

func TestSimplify_WholeWordOnly(t *testing.T) {
	// "mi" is a glossary term but must not fire inside other words.
	got := Simplify("Administer medicine immediately.")
	if strings.Contains(got, "heart attack") {
		t.Fatalf("substring replacement leaked: %q", got)
	}
}

func TestSimplify_CapitalizesFirstLetter(t *testing.T) {
	got := Simplify("edema was noted")
	if got == "" || got[0] != 'S' {
		t.Fatalf("expected capitalized replacement start, got %q", got)
	}
	if !strings.HasPrefix(got, "Swelling") {
		t.Fatalf("got %q", got)
	}
}

func TestSimplify_CapitalizesMultibyteFirstRune(t *testing.T) {
	got := Simplify("über normal range")
	if !strings.HasPrefix(got, "Über") {
		t.Fatalf("expected first rune upcased, got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("output is not valid UTF-8: %q", got)
	}
}

func TestSimplify_EmptyInput(t *testing.T) {
	if got := Simplify(""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestSimplify_Deterministic(t *testing.T) {
	in := "MRI showed benign tumor; HbA1c normal."
	if Simplify(in) != Simplify(in) {
		t.Fatalf("simplify is not deterministic")
	}
}
