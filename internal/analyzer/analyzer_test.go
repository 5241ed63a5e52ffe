package analyzer

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/medplain/medplain/internal/fallback"
	"github.com/medplain/medplain/internal/provider"
	"github.com/medplain/medplain/internal/report"
)

type genFunc func(ctx context.Context, prompt, system string) (string, error)

func (f genFunc) Generate(ctx context.Context, prompt, system string) (string, error) {
	return f(ctx, prompt, system)
}

const sampleReport = `Haemoglobin 9.10 [L] 13.0-17.0 gm/dl
Neutrophils 87.7 [H] 40-70 pct`

func TestAnalyze_AllProvidersFail(t *testing.T) {
	a := &Analyzer{Generator: genFunc(func(ctx context.Context, prompt, system string) (string, error) {
		return "", provider.ErrNoProvider
	})}
	got := a.Analyze(context.Background(), sampleReport, report.LangEnglish)
	want := fallback.Synthesize(sampleReport)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("all-fail result must equal the pure fallback\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestAnalyze_MalformedJSONEqualsAllFail(t *testing.T) {
	a := &Analyzer{Generator: genFunc(func(ctx context.Context, prompt, system string) (string, error) {
		return "I am sorry, I cannot produce structured output today.", nil
	})}
	got := a.Analyze(context.Background(), sampleReport, report.LangEnglish)
	want := fallback.Synthesize(sampleReport)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("malformed JSON must behave like all-providers-fail")
	}
}

func TestAnalyze_NilGeneratorUsesFallback(t *testing.T) {
	a := &Analyzer{}
	got := a.Analyze(context.Background(), sampleReport, report.LangEnglish)
	if !reflect.DeepEqual(got, fallback.Synthesize(sampleReport)) {
		t.Fatalf("nil generator must yield the pure fallback")
	}
}

func TestAnalyze_MergesProviderFields(t *testing.T) {
	a := &Analyzer{Generator: genFunc(func(ctx context.Context, prompt, system string) (string, error) {
		return `Here you go:
{
  "summary": "Provider summary.",
  "keyFindings": ["Low hemoglobin", {"name": "Paracetamol", "brandName": "Crocin", "disclaimer": "consult doctor"}]
}`, nil
	})}
	got := a.Analyze(context.Background(), sampleReport, report.LangEnglish)
	base := fallback.Synthesize(sampleReport)

	if got.Summary != "Provider summary." {
		t.Fatalf("summary: got %q", got.Summary)
	}
	wantFindings := []string{"Low hemoglobin", "Paracetamol (Crocin) - consult doctor"}
	if !reflect.DeepEqual(got.KeyFindings, wantFindings) {
		t.Fatalf("keyFindings: got %v, want %v", got.KeyFindings, wantFindings)
	}
	// Fields the provider omitted come from the fallback, decided per field.
	if got.DetailedExplanation != base.DetailedExplanation {
		t.Fatalf("detailedExplanation must come from fallback")
	}
	if !reflect.DeepEqual(got.LifestyleAdvice, base.LifestyleAdvice) {
		t.Fatalf("lifestyleAdvice must come from fallback")
	}
	if !reflect.DeepEqual(got.ParameterBreakdown, base.ParameterBreakdown) {
		t.Fatalf("parameterBreakdown must come from fallback when absent")
	}
}

func TestAnalyze_ProviderBreakdownCoerced(t *testing.T) {
	a := &Analyzer{Generator: genFunc(func(ctx context.Context, prompt, system string) (string, error) {
		return `{
  "summary": "s",
  "parameterBreakdown": [
    {"parameterName": "Haemoglobin", "patientValue": "9.10", "status": "LOW"},
    {"parameterName": "", "patientValue": "1", "status": "high"},
    {"parameterName": "Ferritin", "patientValue": "12", "status": "critically elevated"}
  ]
}`, nil
	})}
	got := a.Analyze(context.Background(), sampleReport, report.LangEnglish)
	if len(got.ParameterBreakdown) != 2 {
		t.Fatalf("empty-name row must be dropped, got %+v", got.ParameterBreakdown)
	}
	first := got.ParameterBreakdown[0]
	if first.Status != report.StatusLow {
		t.Fatalf("status case must be normalized, got %q", first.Status)
	}
	if first.Unit != report.NotAvailable || first.NormalRange != report.NotAvailable {
		t.Fatalf("missing unit/range must default to sentinel, got %+v", first)
	}
	if got.ParameterBreakdown[1].Status != report.StatusNormal {
		t.Fatalf("unknown status must clamp to normal, got %q", got.ParameterBreakdown[1].Status)
	}
}

func TestAnalyze_TruncatesPromptNotMatcher(t *testing.T) {
	// Distinct numbered lines make accidental substring matches impossible.
	var sb strings.Builder
	for i := 0; sb.Len() < 10000; i++ {
		fmt.Fprintf(&sb, "%08d\n", i)
	}
	text := sb.String()[:10000]

	var gotPrompt string
	a := &Analyzer{Generator: genFunc(func(ctx context.Context, prompt, system string) (string, error) {
		gotPrompt = prompt
		return "", provider.ErrNoProvider
	})}
	got := a.Analyze(context.Background(), text, report.LangEnglish)

	if !strings.Contains(gotPrompt, text[:6000]) {
		t.Fatalf("prompt must embed the first 6000 characters")
	}
	if strings.Contains(gotPrompt, text[:6001]) {
		t.Fatalf("prompt must not embed beyond 6000 characters")
	}
	if !strings.Contains(gotPrompt, text[:6000]+"...") {
		t.Fatalf("truncated prompt must carry the ellipsis marker")
	}
	// The fallback still sees the whole text: its summary counts all lines.
	if want := fallback.Synthesize(text); got.Summary != want.Summary {
		t.Fatalf("fallback must receive untruncated text")
	}
}

func TestAnalyze_TruncationKeepsRuneBoundary(t *testing.T) {
	// One ASCII byte followed by three-byte runes puts the 6000-byte mark
	// inside a rune, so a byte-exact cut would split it.
	text := "x" + strings.Repeat("ह", 4000)

	var gotPrompt string
	a := &Analyzer{Generator: genFunc(func(ctx context.Context, prompt, system string) (string, error) {
		gotPrompt = prompt
		return "", provider.ErrNoProvider
	})}
	a.Analyze(context.Background(), text, report.LangEnglish)

	if !utf8.ValidString(gotPrompt) {
		t.Fatalf("prompt contains invalid UTF-8")
	}
	if !strings.Contains(gotPrompt, "...") {
		t.Fatalf("truncated prompt must carry the ellipsis marker")
	}
	if !strings.Contains(gotPrompt, text[:5998]+"...") {
		t.Fatalf("cut must back off to the previous rune boundary")
	}
}

func TestAnalyze_ShortTextNotTruncated(t *testing.T) {
	var gotPrompt string
	a := &Analyzer{Generator: genFunc(func(ctx context.Context, prompt, system string) (string, error) {
		gotPrompt = prompt
		return "", provider.ErrNoProvider
	})}
	a.Analyze(context.Background(), sampleReport, report.LangEnglish)
	if !strings.Contains(gotPrompt, sampleReport) {
		t.Fatalf("short reports must be embedded whole")
	}
	if strings.Contains(gotPrompt, sampleReport+"...") {
		t.Fatalf("no ellipsis for short reports")
	}
}

func TestAnalyze_LanguageInPrompts(t *testing.T) {
	var gotSystem, gotPrompt string
	a := &Analyzer{Generator: genFunc(func(ctx context.Context, prompt, system string) (string, error) {
		gotSystem, gotPrompt = system, prompt
		return "", provider.ErrNoProvider
	})}
	a.Analyze(context.Background(), sampleReport, report.LangHindi)
	if !strings.Contains(gotSystem, "Hindi") || !strings.Contains(gotPrompt, "Hindi") {
		t.Fatalf("prompts must name the target language")
	}
}

func TestAnalyze_GeneratorPanicYieldsFallback(t *testing.T) {
	a := &Analyzer{Generator: genFunc(func(ctx context.Context, prompt, system string) (string, error) {
		panic("unexpected defect")
	})}
	got := a.Analyze(context.Background(), sampleReport, report.LangEnglish)
	if !reflect.DeepEqual(got, fallback.Synthesize(sampleReport)) {
		t.Fatalf("a panic must degrade to the pure fallback, not escape")
	}
}

func TestAnalyze_ResultShapeAlwaysValid(t *testing.T) {
	a := &Analyzer{Generator: genFunc(func(ctx context.Context, prompt, system string) (string, error) {
		return `{"summary": "s", "keyFindings": []}`, nil
	})}
	res := a.Analyze(context.Background(), "plain note", report.LangEnglish)
	if res.KeyFindings == nil || res.TreatmentRecommendations == nil ||
		res.MedicineSuggestions == nil || res.LifestyleAdvice == nil ||
		res.WhenToConsultDoctor == nil || res.ParameterBreakdown == nil {
		t.Fatalf("list fields must never be nil: %+v", res)
	}
}
