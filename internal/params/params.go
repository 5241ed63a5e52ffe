// Package params extracts lab parameter rows from free-form report text.
//
// Lab reports disagree on token order: some print an explicit [H]/[L]
// abnormality marker before the normal range, some after the unit, some at
// the end of the line, and some not at all. The matcher therefore runs an
// explicit ordered list of alternative shapes per line; the first shape
// that matches wins and a line yields at most one finding.
package params

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/medplain/medplain/internal/report"
)

// shape is one compiled line pattern annotated with which capture group
// holds which field. A zero index means the shape does not capture that
// field. Adding support for a new report layout means appending a shape.
type shape struct {
	re     *regexp.Regexp
	name   int
	value  int
	marker int
	rng    int
	unit   int
}

// Ordered alternatives; marker-bearing shapes come first so an explicit
// marker always decides the status ahead of any range comparison.
var shapes = []shape{
	// "Haemoglobin 9.10 [L] 13.0-17.0 gm/dl"
	{
		re:     regexp.MustCompile(`(?i)([A-Za-z\s.()/\-]+?)\s+([\d.]+)\s*\[([HL])\]\s*([\d.]+[\s\-–]+[\d.]+)\s*([A-Za-z/%]+)`),
		name:   1, value: 2, marker: 3, rng: 4, unit: 5,
	},
	// "Haemoglobin 9.10 [L] gm/dl 13.0-17.0"
	{
		re:     regexp.MustCompile(`(?i)([A-Za-z\s.()/\-]+?)\s+([\d.]+)\s*\[([HL])\]\s*([A-Za-z/%]+)\s+([\d.]+[\s\-–]+[\d.]+)`),
		name:   1, value: 2, marker: 3, unit: 4, rng: 5,
	},
	// "Haemoglobin 9.10 13.0-17.0 gm/dl [L]"
	{
		re:     regexp.MustCompile(`(?i)([A-Za-z\s.()/\-]+?)\s+([\d.]+)\s+([\d.]+[\s\-–]+[\d.]+)\s+([A-Za-z/%]+)\s*\[([HL])\]`),
		name:   1, value: 2, rng: 3, unit: 4, marker: 5,
	},
	// "Haemoglobin 9.10 13.0-17.0 gm/dl" (no marker; status from range)
	{
		re:     regexp.MustCompile(`(?i)([A-Za-z\s.()/\-]+?)\s+([\d.]+)\s+([\d.]+[\s\-–]+[\d.]+)\s+([A-Za-z/%]+)`),
		name:   1, value: 2, rng: 3, unit: 4,
	},
}

var (
	rangeRe  = regexp.MustCompile(`([\d.]+)[\s\-–]+([\d.]+)`)
	parensRe = regexp.MustCompile(`\([^)]*\)`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// Scan walks the text line by line and returns every parameter finding, in
// source order. It is pure: the same text always yields the same sequence.
func Scan(text string) []report.ParameterFinding {
	out := []report.ParameterFinding{}
	for _, line := range strings.Split(text, "\n") {
		if f, ok := matchLine(line); ok {
			out = append(out, f)
		}
	}
	return out
}

func matchLine(line string) (report.ParameterFinding, bool) {
	for _, sh := range shapes {
		m := sh.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		name := cleanLabel(m[sh.name])
		if name == "" {
			return report.ParameterFinding{}, false
		}
		value := strings.TrimSpace(m[sh.value])
		rng := strings.TrimSpace(m[sh.rng])
		unit := ""
		if sh.unit != 0 {
			unit = strings.TrimSpace(m[sh.unit])
		}

		status := report.StatusNormal
		if sh.marker != 0 {
			switch strings.ToUpper(m[sh.marker]) {
			case "H":
				status = report.StatusHigh
			case "L":
				status = report.StatusLow
			}
		} else {
			status = statusFromRange(value, rng)
		}

		if unit == "" {
			unit = report.NotAvailable
		}
		if rng == "" {
			rng = report.NotAvailable
		}

		return report.ParameterFinding{
			Name:        name,
			Value:       value,
			Unit:        unit,
			NormalRange: rng,
			Status:      status,
			Explanation: explain(name, status),
		}, true
	}
	return report.ParameterFinding{}, false
}

// statusFromRange compares the value against the parsed bounds. When either
// bound or the value fails to parse the status stays normal; an abnormality
// is never fabricated from unparseable numbers.
func statusFromRange(value, rng string) report.Status {
	m := rangeRe.FindStringSubmatch(rng)
	if m == nil {
		return report.StatusNormal
	}
	lower, err1 := strconv.ParseFloat(m[1], 64)
	upper, err2 := strconv.ParseFloat(m[2], 64)
	v, err3 := strconv.ParseFloat(value, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return report.StatusNormal
	}
	switch {
	case v < lower:
		return report.StatusLow
	case v > upper:
		return report.StatusHigh
	default:
		return report.StatusNormal
	}
}

// cleanLabel collapses whitespace and strips parenthetical annotations.
func cleanLabel(raw string) string {
	s := parensRe.ReplaceAllString(raw, "")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func explain(name string, status report.Status) string {
	meaning := genericMeaning
	lower := strings.ToLower(name)
	for _, e := range explanations {
		if strings.Contains(lower, e.key) {
			meaning = e.meaning
			break
		}
	}
	switch status {
	case report.StatusHigh:
		return meaning + " Your value is HIGHER than normal, which may require attention."
	case report.StatusLow:
		return meaning + " Your value is LOWER than normal, which may require attention."
	default:
		return meaning + " Your value is within the normal range."
	}
}
