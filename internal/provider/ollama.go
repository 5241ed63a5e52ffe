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

// DefaultOllamaTimeout bounds each Ollama attempt. Local models can be slow
// to load on first call, so this is generous compared to hosted backends.
const DefaultOllamaTimeout = 60 * time.Second

// Ollama generates text against a locally reachable Ollama server. It tries
// the chat endpoint first and falls back to the legacy generate endpoint
// within the same attempt when chat errors, since older server versions
// lack /api/chat.
type Ollama struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Timeout    time.Duration
}

func (o *Ollama) Name() string { return "ollama" }

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

func (o *Ollama) Generate(ctx context.Context, prompt, system string) (string, error) {
	if strings.TrimSpace(o.BaseURL) == "" {
		return "", ErrNotConfigured
	}
	text, err := o.chat(ctx, prompt, system)
	if err == nil {
		return text, nil
	}
	// Chat endpoint failed; same provider, older wire format.
	return o.generate(ctx, prompt, system)
}

func (o *Ollama) chat(ctx context.Context, prompt, system string) (string, error) {
	body := ollamaChatRequest{
		Model: o.Model,
		Messages: []ollamaMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Stream:  false,
		Options: ollamaOptions{Temperature: 0.7, NumPredict: 3000},
	}
	var out struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Response string `json:"response"`
	}
	if err := o.post(ctx, "/api/chat", body, &out); err != nil {
		return "", err
	}
	if out.Message.Content != "" {
		return out.Message.Content, nil
	}
	if out.Response != "" {
		return out.Response, nil
	}
	return "", fmt.Errorf("ollama chat: empty payload")
}

func (o *Ollama) generate(ctx context.Context, prompt, system string) (string, error) {
	body := ollamaGenerateRequest{
		Model:   o.Model,
		Prompt:  system + "\n\n" + prompt,
		Stream:  false,
		Options: ollamaOptions{Temperature: 0.7, NumPredict: 2000},
	}
	var out struct {
		Response string `json:"response"`
	}
	if err := o.post(ctx, "/api/generate", body, &out); err != nil {
		return "", err
	}
	if out.Response == "" {
		return "", fmt.Errorf("ollama generate: empty payload")
	}
	return out.Response, nil
}

// post sends one JSON request bounded by the provider timeout. A timeout
// cancels the in-flight call and surfaces as an ordinary error, which the
// caller treats identically to a transport failure.
func (o *Ollama) post(ctx context.Context, path string, body, out any) error {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultOllamaTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(o.BaseURL, "/")+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	hc := o.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("ollama status: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
