package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/medplain/medplain/internal/dictionary"
	"github.com/medplain/medplain/internal/report"
)

// Turn is one prior exchange in a chat conversation.
type Turn struct {
	Role    string // "user" or "assistant"
	Content string
}

// historyWindow limits how many prior turns are folded into the prompt.
const historyWindow = 4

// Simplify rewrites free medical text into plain language in the target
// language. When no provider is usable it degrades to the rule-based
// dictionary rewriter, so it never fails.
func (a *Analyzer) Simplify(ctx context.Context, text string, lang report.Language) string {
	if a.Generator == nil {
		return dictionary.Simplify(text)
	}
	system := fmt.Sprintf("You are a medical jargon simplifier. Translate medical text into simple, easy-to-understand %s language. Keep it accurate but make it accessible to non-medical professionals.", lang.DisplayName())
	prompt := fmt.Sprintf("Translate the following medical text into simple %s language:\n\n%q\n\nProvide only the simplified version:", lang.DisplayName(), text)

	out, err := a.Generator.Generate(ctx, prompt, system)
	if err != nil {
		log.Debug().Err(err).Msg("simplify generation failed, using dictionary")
		return dictionary.Simplify(text)
	}
	return out
}

// ChatReply answers a medical-terminology question, folding up to the last
// four turns of history into the prompt for context. The canned, dictionary
// simplified answer guarantees a response when providers are down.
func (a *Analyzer) ChatReply(ctx context.Context, question string, history []Turn, lang report.Language) string {
	canned := dictionary.Simplify(fmt.Sprintf("I can help explain medical terms. %q is a medical question that requires a detailed explanation.", question))
	if a.Generator == nil {
		return canned
	}
	system := fmt.Sprintf("You are a helpful medical assistant that explains medical terms and concepts in simple %s language. Always provide clear, accurate, and easy-to-understand explanations.", lang.DisplayName())

	var sb strings.Builder
	if n := len(history); n > 0 {
		start := 0
		if n > historyWindow {
			start = n - historyWindow
		}
		for _, t := range history[start:] {
			label := "User"
			if t.Role == "assistant" {
				label = "Assistant"
			}
			sb.WriteString(label + ": " + t.Content + "\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("User: " + question + "\n\nAssistant:")

	out, err := a.Generator.Generate(ctx, sb.String(), system)
	if err != nil {
		log.Debug().Err(err).Msg("chat generation failed, using canned reply")
		return canned
	}
	return out
}
