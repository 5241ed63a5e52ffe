// Package normalize recovers structured data from unreliable provider
// output: it pulls an embedded JSON object out of surrounding prose and
// coerces heterogeneous list items into plain display strings.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject locates the span from the first '{' to the last '}' and
// validates it as strict JSON. It returns ok=false when no span exists or
// the span does not parse; no lenient repair is attempted beyond this
// bracket heuristic, so callers must fall back to deterministic synthesis.
// Code fences and explanatory prose outside the braces are skipped by
// construction.
func ExtractJSONObject(s string) ([]byte, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	raw := []byte(s[start : end+1])
	if !json.Valid(raw) {
		return nil, false
	}
	return raw, true
}

// StringList coerces each element of a provider-supplied array to plain
// text. Strings pass through. Objects carrying a name or brandName compose
// "<name> (<brandName>) - <disclaimer>" from whichever fields are present;
// any other object is serialized verbatim as a diagnostic string.
func StringList(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, coerce(item))
	}
	return out
}

func coerce(item any) string {
	switch v := item.(type) {
	case string:
		return v
	case map[string]any:
		name, _ := v["name"].(string)
		brand, _ := v["brandName"].(string)
		disclaimer, _ := v["disclaimer"].(string)
		if name == "" && brand == "" {
			return stringify(v)
		}
		var b strings.Builder
		b.WriteString(name)
		if brand != "" {
			if b.Len() > 0 {
				b.WriteString(" (" + brand + ")")
			} else {
				b.WriteString(brand)
			}
		}
		if disclaimer != "" {
			b.WriteString(" - " + disclaimer)
		}
		if b.Len() == 0 {
			return stringify(v)
		}
		return b.String()
	default:
		return fmt.Sprint(v)
	}
}

func stringify(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// MergeString prefers the parsed value when it is non-empty, otherwise the
// fallback. Evaluated independently per field, never all-or-nothing.
func MergeString(parsed, fallback string) string {
	if strings.TrimSpace(parsed) != "" {
		return parsed
	}
	return fallback
}

// MergeList prefers a non-empty parsed list, otherwise the fallback list.
func MergeList(parsed, fallback []string) []string {
	if len(parsed) > 0 {
		return parsed
	}
	return fallback
}
