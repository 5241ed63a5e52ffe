// Package fallback produces a complete analysis from deterministic local
// logic only. It never touches the network and never returns an empty
// required field, which makes it both the safety net behind the provider
// chain and the baseline that provider output is merged over.
package fallback

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/medplain/medplain/internal/params"
	"github.com/medplain/medplain/internal/report"
)

var (
	digitsRe   = regexp.MustCompile(`\d+`)
	abnormalRe = regexp.MustCompile(`(?i)\[H\]|\[L\]|high|low|elevated|decreased|abnormal`)
)

// keyFinding pairs a single-value lookup with its display label.
type keyFinding struct {
	re    *regexp.Regexp
	label string
}

var keyFindingPatterns = []keyFinding{
	{regexp.MustCompile(`(?i)(?:blood pressure|bp)[\s:]+(\d+/\d+)`), "Blood Pressure"},
	{regexp.MustCompile(`(?i)(?:glucose|blood sugar)[\s:]+(\d+)`), "Blood Sugar"},
	{regexp.MustCompile(`(?i)(?:hba1c|a1c)[\s:]+([\d.]+%)`), "HbA1c"},
	{regexp.MustCompile(`(?i)(?:cholesterol|ldl|hdl)[\s:]+(\d+)`), "Cholesterol"},
	{regexp.MustCompile(`(?i)(?:heart rate|pulse)[\s:]+(\d+)`), "Heart Rate"},
}

const maxKeyFindings = 5

// Synthesize builds the full analysis for the given report text. Same text,
// same result; there is no randomness and no I/O.
func Synthesize(text string) report.AnalysisResult {
	res := report.AnalysisResult{
		Summary:             summary(text),
		DetailedExplanation: "The report shows various medical test results. Some values may be outside the normal range, which could indicate underlying health conditions. It's important to discuss these results with a healthcare professional for proper interpretation and treatment. Each test parameter provides valuable information about your health status, and a qualified medical professional can help you understand what these results mean in the context of your overall health.",
		KeyFindings:         keyFindings(text),
		TreatmentRecommendations: []string{
			"Consult with a healthcare professional for proper diagnosis and treatment plan",
			"Follow up with recommended tests if suggested",
			"Discuss any abnormal values with your doctor",
		},
		MedicineSuggestions: []string{
			"Please consult a doctor for appropriate medication. Do not self-medicate.",
		},
		LifestyleAdvice: []string{
			"Maintain a balanced diet",
			"Get regular exercise",
			"Stay hydrated",
			"Get adequate sleep",
		},
		WhenToConsultDoctor: []string{
			"If you experience severe symptoms",
			"If values are significantly outside normal range",
			"For proper diagnosis and treatment plan",
		},
		ParameterBreakdown: params.Scan(text),
	}
	res.EnsureLists()
	return res
}

// summary selects one of three narrative templates from cheap heuristics
// over the raw text: line count, presence of digits, and presence of
// abnormality keywords or marker tokens.
func summary(text string) string {
	lines := 0
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			lines++
		}
	}
	hasNumbers := digitsRe.MatchString(text)
	hasAbnormal := abnormalRe.MatchString(text)

	var b strings.Builder
	fmt.Fprintf(&b, "This medical report contains %d lines of test results and findings. ", lines)
	switch {
	case hasNumbers && hasAbnormal:
		b.WriteString("The report shows several test values, with some marked as high [H] or low [L], indicating values outside the normal range. ")
		b.WriteString("These abnormal values suggest potential health conditions that require medical attention. ")
		b.WriteString("It's important to review each parameter carefully and understand what these values mean for your health. ")
		b.WriteString("Please consult with a healthcare professional to interpret these results in the context of your overall health and medical history.")
	case hasNumbers:
		b.WriteString("The report contains various test values and measurements. ")
		b.WriteString("While the values appear to be within normal ranges, it's important to have a healthcare professional review the complete report. ")
		b.WriteString("Each test parameter provides important information about your health status. ")
		b.WriteString("Please discuss these results with your doctor for proper interpretation and any necessary follow-up.")
	default:
		b.WriteString("The report contains important medical information that should be reviewed by a healthcare professional. ")
		b.WriteString("Please consult with your doctor to understand what these results mean for your health.")
	}
	return b.String()
}

func keyFindings(text string) []string {
	findings := []string{}
	for _, p := range keyFindingPatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			findings = append(findings, p.label+": "+m[1])
		}
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, "abnormal") || strings.Contains(lower, "elevated") || strings.Contains(lower, "high") {
		findings = append(findings, "Some values may be outside normal range")
	}
	if len(findings) == 0 {
		findings = append(findings, "Review the extracted text for detailed information")
	}
	if len(findings) > maxKeyFindings {
		findings = findings[:maxKeyFindings]
	}
	return findings
}
