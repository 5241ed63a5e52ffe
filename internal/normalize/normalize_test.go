package normalize

import (
	"reflect"
	"testing"
)

func TestExtractJSONObject_PlainObject(t *testing.T) {
	raw, ok := ExtractJSONObject(`{"summary":"ok"}`)
	if !ok {
		t.Fatalf("expected ok")
	}
	if string(raw) != `{"summary":"ok"}` {
		t.Fatalf("got %q", raw)
	}
}

func TestExtractJSONObject_WrappedInProse(t *testing.T) {
	in := "Sure! Here is the analysis you asked for:\n\n{\"summary\": \"all good\"}\n\nLet me know if you need more."
	raw, ok := ExtractJSONObject(in)
	if !ok {
		t.Fatalf("expected ok")
	}
	if string(raw) != `{"summary": "all good"}` {
		t.Fatalf("got %q", raw)
	}
}

func TestExtractJSONObject_CodeFences(t *testing.T) {
	in := "```json\n{\"keyFindings\": [\"a\", \"b\"]}\n```"
	raw, ok := ExtractJSONObject(in)
	if !ok {
		t.Fatalf("expected ok")
	}
	if string(raw) != `{"keyFindings": ["a", "b"]}` {
		t.Fatalf("got %q", raw)
	}
}

func TestExtractJSONObject_NoSpan(t *testing.T) {
	if _, ok := ExtractJSONObject("no json here, just prose"); ok {
		t.Fatalf("expected no match")
	}
	if _, ok := ExtractJSONObject("unbalanced } before {"); ok {
		t.Fatalf("expected no match for reversed braces")
	}
}

func TestExtractJSONObject_InvalidSpanIsNotRepaired(t *testing.T) {
	if _, ok := ExtractJSONObject(`prefix {"summary": "truncated`); ok {
		t.Fatalf("expected failure without closing brace")
	}
	// Two objects: the first-to-last span is not valid JSON and must fail
	// rather than be repaired.
	if _, ok := ExtractJSONObject(`{"a":1} and {"b":2}`); ok {
		t.Fatalf("expected failure for multi-object span")
	}
}

func TestStringList_Coercion(t *testing.T) {
	in := []any{
		"plain string",
		map[string]any{"name": "Paracetamol", "brandName": "Crocin", "disclaimer": "consult doctor"},
		map[string]any{"name": "Folic acid"},
		map[string]any{"brandName": "Ferosul"},
		map[string]any{"note": "unknown shape"},
		42,
	}
	got := StringList(in)
	want := []string{
		"plain string",
		"Paracetamol (Crocin) - consult doctor",
		"Folic acid",
		"Ferosul",
		`{"note":"unknown shape"}`,
		"42",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestStringList_EmptyInput(t *testing.T) {
	got := StringList(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected non-nil empty slice, got %v", got)
	}
}

func TestMergeString(t *testing.T) {
	if v := MergeString("parsed", "fallback"); v != "parsed" {
		t.Fatalf("non-empty parsed must win, got %q", v)
	}
	if v := MergeString("", "fallback"); v != "fallback" {
		t.Fatalf("empty parsed must yield fallback, got %q", v)
	}
	if v := MergeString("   ", "fallback"); v != "fallback" {
		t.Fatalf("whitespace parsed must yield fallback, got %q", v)
	}
}

func TestMergeList(t *testing.T) {
	fb := []string{"fb"}
	if got := MergeList([]string{"a"}, fb); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("non-empty parsed must win, got %v", got)
	}
	if got := MergeList(nil, fb); !reflect.DeepEqual(got, fb) {
		t.Fatalf("nil parsed must yield fallback, got %v", got)
	}
	if got := MergeList([]string{}, fb); !reflect.DeepEqual(got, fb) {
		t.Fatalf("empty parsed must yield fallback, got %v", got)
	}
}
