// Package analyzer composes the provider chain, the response normalizer,
// and the deterministic fallback into the top-level report analysis
// operation. Its contract is strict: it always returns a complete result
// and never an error, regardless of what the providers do.
package analyzer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/medplain/medplain/internal/fallback"
	"github.com/medplain/medplain/internal/normalize"
	"github.com/medplain/medplain/internal/report"
)

// Generator is the minimal generation surface the analyzer needs; the
// provider chain satisfies it and tests substitute stubs.
type Generator interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
}

// Analyzer turns raw report text into a structured, patient-readable
// analysis.
type Analyzer struct {
	Generator Generator
}

// payload mirrors the JSON schema requested from providers. List fields are
// deliberately loose ([]any) because models return either plain strings or
// structured objects; normalization flattens both.
type payload struct {
	Summary                  string         `json:"summary"`
	DetailedExplanation      string         `json:"detailedExplanation"`
	KeyFindings              []any          `json:"keyFindings"`
	TreatmentRecommendations []any          `json:"treatmentRecommendations"`
	MedicineSuggestions      []any          `json:"medicineSuggestions"`
	LifestyleAdvice          []any          `json:"lifestyleAdvice"`
	WhenToConsultDoctor      []any          `json:"whenToConsultDoctor"`
	ParameterBreakdown       []payloadParam `json:"parameterBreakdown"`
}

type payloadParam struct {
	Name        string `json:"parameterName"`
	Value       string `json:"patientValue"`
	Unit        string `json:"unit"`
	NormalRange string `json:"normalRange"`
	Status      string `json:"status"`
	Explanation string `json:"explanation"`
}

// Analyze runs one request through its full lifecycle: the deterministic
// fallback is built first as the safety net, then the provider chain is
// asked for a richer analysis, and whatever usable fields come back are
// merged over the fallback. Only the prompt sees the truncated text; the
// matcher and fallback always work on the full input.
func (a *Analyzer) Analyze(ctx context.Context, text string, lang report.Language) (res report.AnalysisResult) {
	base := fallback.Synthesize(text)
	if a.Generator == nil {
		return base
	}
	// A defect anywhere in orchestration or merging must not reach the
	// caller; the safety net built above is always a valid answer.
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("analysis failed, using fallback")
			res = base
		}
	}()

	raw, err := a.Generator.Generate(ctx, buildAnalysisPrompt(text, lang), analysisSystemPrompt(lang))
	if err != nil {
		log.Debug().Err(err).Msg("analysis generation failed, using fallback")
		return base
	}
	obj, ok := normalize.ExtractJSONObject(raw)
	if !ok {
		log.Debug().Int("chars", len(raw)).Msg("no JSON object in provider output, using fallback")
		return base
	}
	var p payload
	if err := json.Unmarshal(obj, &p); err != nil {
		log.Debug().Err(err).Msg("provider JSON did not match schema, using fallback")
		return base
	}
	return merged(p, base)
}

// merged applies the per-field policy: a non-empty provider value wins,
// otherwise the fallback value stands. Each field is decided independently.
func merged(p payload, base report.AnalysisResult) report.AnalysisResult {
	res := report.AnalysisResult{
		Summary:                  normalize.MergeString(p.Summary, base.Summary),
		DetailedExplanation:      normalize.MergeString(p.DetailedExplanation, base.DetailedExplanation),
		KeyFindings:              normalize.MergeList(normalize.StringList(p.KeyFindings), base.KeyFindings),
		TreatmentRecommendations: normalize.MergeList(normalize.StringList(p.TreatmentRecommendations), base.TreatmentRecommendations),
		MedicineSuggestions:      normalize.MergeList(normalize.StringList(p.MedicineSuggestions), base.MedicineSuggestions),
		LifestyleAdvice:          normalize.MergeList(normalize.StringList(p.LifestyleAdvice), base.LifestyleAdvice),
		WhenToConsultDoctor:      normalize.MergeList(normalize.StringList(p.WhenToConsultDoctor), base.WhenToConsultDoctor),
		ParameterBreakdown:       base.ParameterBreakdown,
	}
	if parsed := coerceFindings(p.ParameterBreakdown); len(parsed) > 0 {
		res.ParameterBreakdown = parsed
	}
	res.EnsureLists()
	return res
}

// coerceFindings enforces the finding invariants on provider-supplied rows:
// rows without a name are dropped, unit and range fall back to the sentinel,
// and status is clamped to the enum.
func coerceFindings(in []payloadParam) []report.ParameterFinding {
	out := make([]report.ParameterFinding, 0, len(in))
	for _, p := range in {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		unit := strings.TrimSpace(p.Unit)
		if unit == "" {
			unit = report.NotAvailable
		}
		rng := strings.TrimSpace(p.NormalRange)
		if rng == "" {
			rng = report.NotAvailable
		}
		out = append(out, report.ParameterFinding{
			Name:        name,
			Value:       strings.TrimSpace(p.Value),
			Unit:        unit,
			NormalRange: rng,
			Status:      report.CoerceStatus(p.Status),
			Explanation: p.Explanation,
		})
	}
	return out
}
