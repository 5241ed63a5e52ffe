package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultHuggingFaceBaseURL is the hosted inference endpoint root.
	DefaultHuggingFaceBaseURL = "https://api-inference.huggingface.co"
	// DefaultHuggingFaceModel is used when no model is configured.
	DefaultHuggingFaceModel = "mistralai/Mistral-7B-Instruct-v0.2"
	// DefaultHostedTimeout bounds each hosted-API attempt.
	DefaultHostedTimeout = 30 * time.Second
)

// HuggingFace calls the hosted inference API. The backend echoes the prompt
// back in front of the generated continuation, so the response is split on
// the "Assistant:" delimiter to recover only the new text. The provider is
// skipped entirely when no API key is configured.
type HuggingFace struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

func (h *HuggingFace) Name() string { return "huggingface" }

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
}

func (h *HuggingFace) Generate(ctx context.Context, prompt, system string) (string, error) {
	if strings.TrimSpace(h.APIKey) == "" {
		return "", ErrNotConfigured
	}
	model := h.Model
	if model == "" {
		model = DefaultHuggingFaceModel
	}
	base := h.BaseURL
	if base == "" {
		base = DefaultHuggingFaceBaseURL
	}
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = DefaultHostedTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(hfRequest{
		Inputs:     system + "\n\nUser: " + prompt + "\n\nAssistant:",
		Parameters: hfParameters{MaxNewTokens: 500, Temperature: 0.7},
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(base, "/")+"/models/"+model, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+h.APIKey)
	req.Header.Set("Content-Type", "application/json")

	hc := h.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("huggingface status: %d", resp.StatusCode)
	}

	var out []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out) == 0 || out[0].GeneratedText == "" {
		return "", fmt.Errorf("huggingface: empty payload")
	}
	// Discard the echoed prompt before the delimiter.
	_, after, found := strings.Cut(out[0].GeneratedText, "Assistant:")
	if !found {
		return "", fmt.Errorf("huggingface: no completion after delimiter")
	}
	text := strings.TrimSpace(after)
	if text == "" {
		return "", fmt.Errorf("huggingface: empty completion")
	}
	return text, nil
}
