// Package provider contains the generative backends and the ordered chain
// that tries them one after another.
package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
)

// Provider is one generative text backend. Generate returns the produced
// text or an error; an empty string with a nil error is treated by the
// chain the same as a failure.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt, system string) (string, error)
}

// ErrNoProvider signals that every backend in the chain failed or was
// skipped. Callers treat this as a normal outcome and fall back to
// deterministic synthesis; it is never surfaced to the end user.
var ErrNoProvider = errors.New("no provider produced text")

// ErrNotConfigured is returned by credential-gated backends when their key
// is absent, causing the chain to skip them entirely.
var ErrNotConfigured = errors.New("provider not configured")

// Chain tries each provider in order and returns the first non-empty text.
// The order is fixed policy set at construction, not per call. Attempts are
// strictly sequential; each provider bounds its own call with a timeout, so
// a hung backend costs at most its deadline before the next one runs.
type Chain struct {
	Providers []Provider
}

// Generate runs the chain. Provider failures are logged at debug level and
// swallowed; the only error ever returned is ErrNoProvider.
func (c *Chain) Generate(ctx context.Context, prompt, system string) (string, error) {
	for _, p := range c.Providers {
		text, err := p.Generate(ctx, prompt, system)
		if err != nil {
			log.Debug().Str("provider", p.Name()).Err(err).Msg("provider attempt failed")
			continue
		}
		if strings.TrimSpace(text) == "" {
			log.Debug().Str("provider", p.Name()).Msg("provider returned empty text")
			continue
		}
		log.Debug().Str("provider", p.Name()).Int("chars", len(text)).Msg("provider produced text")
		return text, nil
	}
	return "", ErrNoProvider
}
