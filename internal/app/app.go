// Package app wires configuration, the provider chain, and the analyzer
// into a single run: read the extracted report text, analyze it, and write
// the structured result.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/medplain/medplain/internal/analyzer"
	"github.com/medplain/medplain/internal/ingest"
	"github.com/medplain/medplain/internal/provider"
	"github.com/medplain/medplain/internal/report"
)

// Run executes one full analysis. The analyzer itself cannot fail; the only
// error sources here are reading the input and writing the outputs.
func Run(ctx context.Context, cfg Config) error {
	raw, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("read report text: %w", err)
	}
	text := ingest.PlainText(string(raw))
	lang := report.ParseLanguage(cfg.Language)

	a := &analyzer.Analyzer{Generator: BuildChain(cfg)}
	res := a.Analyze(ctx, text, lang)
	log.Info().
		Int("findings", len(res.ParameterBreakdown)).
		Int("keyFindings", len(res.KeyFindings)).
		Msg("analysis complete")

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	out = append(out, '\n')
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		if _, err := os.Stdout.Write(out); err != nil {
			return err
		}
	} else if err := os.WriteFile(cfg.OutputPath, out, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	if cfg.PDFPath != "" {
		if err := writeHandoutPDF(res, cfg.PDFPath); err != nil {
			return fmt.Errorf("write handout pdf: %w", err)
		}
		log.Info().Str("path", cfg.PDFPath).Msg("handout written")
	}
	return nil
}

// BuildChain assembles the fixed provider order: local Ollama first, then
// the credential-gated hosted backends. Gating happens inside the providers
// themselves so the order stays visible in one place.
func BuildChain(cfg Config) *provider.Chain {
	return &provider.Chain{Providers: []provider.Provider{
		&provider.Ollama{
			BaseURL: cfg.OllamaURL,
			Model:   cfg.OllamaModel,
			Timeout: cfg.OllamaTimeout,
		},
		&provider.HuggingFace{
			APIKey: cfg.HFAPIKey,
			Model:  cfg.HFModel,
		},
		&provider.OpenAI{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		},
	}}
}
