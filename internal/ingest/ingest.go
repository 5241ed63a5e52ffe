// Package ingest normalizes raw report text handed over by the OCR/PDF
// collaborators. Most inputs are already plain text; some hospital portals
// export results as HTML, which is stripped down to text here so the rest
// of the pipeline only ever sees plain lines.
package ingest

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var htmlHintRe = regexp.MustCompile(`(?i)<\s*(html|body|table|div|p|br|tr)[\s>/]`)

// PlainText returns the input as normalized plain text. HTML exports are
// parsed and flattened; table rows become single lines with cells separated
// by spaces, which keeps lab rows like "Haemoglobin 9.10 [L] 13.0-17.0
// gm/dl" intact for the parameter matcher.
func PlainText(raw string) string {
	if htmlHintRe.MatchString(raw) {
		if text, ok := fromHTML(raw); ok {
			return text
		}
	}
	return normalizeLines(raw)
}

func fromHTML(raw string) (string, bool) {
	node, err := html.Parse(strings.NewReader(raw))
	if err != nil || node == nil {
		return "", false
	}
	root := findElement(node, "body")
	if root == nil {
		root = node
	}
	var b strings.Builder
	flatten(&b, root)
	return normalizeLines(b.String()), true
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func flatten(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript", "head":
			return
		case "br", "tr", "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n")
		case "td", "th":
			b.WriteString(" ")
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		flatten(b, c)
	}
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "tr", "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n")
		}
	}
}

// normalizeLines trims each line, collapses internal whitespace runs, and
// keeps at most one consecutive blank line.
func normalizeLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(out) > 0 && out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		out = append(out, strings.Join(strings.Fields(trimmed), " "))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
