package app

import "time"

// Config holds runtime configuration for one analysis run.
type Config struct {
	InputPath  string
	OutputPath string
	PDFPath    string

	// Target language code (en, hi, mr, ur).
	Language string

	// Ollama (primary, local)
	OllamaURL     string
	OllamaModel   string
	OllamaTimeout time.Duration

	// HuggingFace (hosted, optional)
	HFAPIKey string
	HFModel  string

	// OpenAI (hosted, optional)
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	Verbose bool
}
