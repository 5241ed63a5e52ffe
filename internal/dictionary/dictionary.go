// Package dictionary holds the static medical jargon glossary and a
// rule-based simplifier built on it. It is the last line of defense when
// every generative provider is unavailable.
package dictionary

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type entry struct {
	term  string
	plain string
}

// Terms are scanned in this fixed order; replacements are whole-word and
// case-insensitive.
var entries = []entry{
	{"myocardial infarction", "heart attack"},
	{"hypertension", "high blood pressure"},
	{"diabetes mellitus", "diabetes"},
	{"hyperglycemia", "high blood sugar"},
	{"hypoglycemia", "low blood sugar"},
	{"tachycardia", "fast heart rate"},
	{"bradycardia", "slow heart rate"},
	{"dyspnea", "shortness of breath"},
	{"edema", "swelling"},
	{"anemia", "low red blood cell count"},
	{"leukemia", "blood cancer"},
	{"pneumonia", "lung infection"},
	{"bronchitis", "inflammation of airways"},
	{"asthma", "breathing condition"},
	{"arthritis", "joint inflammation"},
	{"osteoporosis", "weak bones"},
	{"migraine", "severe headache"},
	{"epilepsy", "seizure disorder"},
	{"stroke", "brain attack"},
	{"cerebrovascular accident", "stroke"},
	{"cva", "stroke"},
	{"mi", "heart attack"},
	{"copd", "chronic lung disease"},
	{"uti", "urinary tract infection"},
	{"gastroenteritis", "stomach flu"},
	{"appendicitis", "inflamed appendix"},
	{"cholecystitis", "inflamed gallbladder"},
	{"nephritis", "kidney inflammation"},
	{"hepatitis", "liver inflammation"},
	{"meningitis", "brain/spine membrane inflammation"},
	{"sepsis", "severe infection"},
	{"fracture", "broken bone"},
	{"laceration", "deep cut"},
	{"contusion", "bruise"},
	{"hematoma", "blood clot under skin"},
	{"benign", "non-cancerous"},
	{"malignant", "cancerous"},
	{"tumor", "abnormal growth"},
	{"carcinoma", "cancer"},
	{"metastasis", "cancer spread"},
	{"biopsy", "tissue sample test"},
	{"mri", "magnetic resonance imaging"},
	{"ct scan", "computed tomography scan"},
	{"x-ray", "bone/image scan"},
	{"ultrasound", "sound wave imaging"},
	{"ecg", "heart rhythm test"},
	{"ekg", "heart rhythm test"},
	{"eeg", "brain wave test"},
	{"blood pressure", "bp"},
	{"systolic", "top number in blood pressure"},
	{"diastolic", "bottom number in blood pressure"},
	{"cholesterol", "fat in blood"},
	{"triglycerides", "blood fats"},
	{"hdl", "good cholesterol"},
	{"ldl", "bad cholesterol"},
	{"glucose", "blood sugar"},
	{"hba1c", "average blood sugar over 3 months"},
	{"creatinine", "kidney function marker"},
	{"hemoglobin", "oxygen-carrying protein"},
	{"platelets", "blood clotting cells"},
	{"white blood cells", "infection fighters"},
	{"red blood cells", "oxygen carriers"},
}

type replacement struct {
	re    *regexp.Regexp
	plain string
}

var replacements = compile()

func compile() []replacement {
	out := make([]replacement, 0, len(entries))
	for _, e := range entries {
		out = append(out, replacement{
			re:    regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(e.term) + `\b`),
			plain: e.plain,
		})
	}
	return out
}

// Simplify lowercases the text, swaps every known jargon term for its plain
// equivalent, and recapitalizes the first letter. Purely mechanical; no
// grammar repair is attempted.
func Simplify(text string) string {
	s := strings.ToLower(text)
	for _, r := range replacements {
		s = r.re.ReplaceAllString(s, r.plain)
	}
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
