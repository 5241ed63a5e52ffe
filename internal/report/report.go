package report

import (
	"strings"

	"golang.org/x/text/language"
)

// NotAvailable is the sentinel used when a report line carries no unit or
// normal range for a parameter.
const NotAvailable = "N/A"

// Status classifies a measured value against its normal range.
type Status string

const (
	StatusNormal Status = "normal"
	StatusHigh   Status = "high"
	StatusLow    Status = "low"
)

// CoerceStatus maps arbitrary provider-supplied status text onto the
// three-value enum, defaulting to normal for anything unrecognized.
func CoerceStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusHigh:
		return StatusHigh
	case StatusLow:
		return StatusLow
	default:
		return StatusNormal
	}
}

// ParameterFinding is one extracted lab value row.
type ParameterFinding struct {
	Name        string `json:"parameterName"`
	Value       string `json:"patientValue"`
	Unit        string `json:"unit"`
	NormalRange string `json:"normalRange"`
	Status      Status `json:"status"`
	Explanation string `json:"explanation"`
}

// AnalysisResult is the full output contract of the analyzer. Every list
// field is non-nil even when empty so rendering never branches on
// missing-vs-empty.
type AnalysisResult struct {
	Summary                  string             `json:"summary"`
	DetailedExplanation      string             `json:"detailedExplanation"`
	KeyFindings              []string           `json:"keyFindings"`
	TreatmentRecommendations []string           `json:"treatmentRecommendations"`
	MedicineSuggestions      []string           `json:"medicineSuggestions"`
	LifestyleAdvice          []string           `json:"lifestyleAdvice"`
	WhenToConsultDoctor      []string           `json:"whenToConsultDoctor"`
	ParameterBreakdown       []ParameterFinding `json:"parameterBreakdown"`
}

// EnsureLists replaces nil list fields with empty slices.
func (r *AnalysisResult) EnsureLists() {
	if r.KeyFindings == nil {
		r.KeyFindings = []string{}
	}
	if r.TreatmentRecommendations == nil {
		r.TreatmentRecommendations = []string{}
	}
	if r.MedicineSuggestions == nil {
		r.MedicineSuggestions = []string{}
	}
	if r.LifestyleAdvice == nil {
		r.LifestyleAdvice = []string{}
	}
	if r.WhenToConsultDoctor == nil {
		r.WhenToConsultDoctor = []string{}
	}
	if r.ParameterBreakdown == nil {
		r.ParameterBreakdown = []ParameterFinding{}
	}
}

// Language identifies one of the supported output languages.
type Language string

const (
	LangEnglish Language = "en"
	LangHindi   Language = "hi"
	LangMarathi Language = "mr"
	LangUrdu    Language = "ur"
)

var supportedTags = []language.Tag{
	language.English,
	language.Hindi,
	language.Marathi,
	language.Urdu,
}

var tagToLanguage = map[language.Tag]Language{
	language.English: LangEnglish,
	language.Hindi:   LangHindi,
	language.Marathi: LangMarathi,
	language.Urdu:    LangUrdu,
}

var matcher = language.NewMatcher(supportedTags)

// ParseLanguage resolves a BCP 47 code against the supported set. Unknown or
// unparseable codes resolve to English.
func ParseLanguage(code string) Language {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return LangEnglish
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return LangEnglish
	}
	return tagToLanguage[supportedTags[idx]]
}

// DisplayName returns the English name of the language, used inside prompts.
func (l Language) DisplayName() string {
	switch l {
	case LangHindi:
		return "Hindi"
	case LangMarathi:
		return "Marathi"
	case LangUrdu:
		return "Urdu"
	default:
		return "English"
	}
}
