package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file YAML configuration schema. Nested sections
// map naturally onto flags and environment variables.
type FileConfig struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	OutputPDF string `yaml:"outputPDF"`

	Language string `yaml:"language"`

	Ollama struct {
		URL   string `yaml:"url"`
		Model string `yaml:"model"`
		// Go duration string, e.g. "90s".
		Timeout string `yaml:"timeout"`
	} `yaml:"ollama"`

	HuggingFace struct {
		Key   string `yaml:"key"`
		Model string `yaml:"model"`
	} `yaml:"huggingface"`

	OpenAI struct {
		Key   string `yaml:"key"`
		Model string `yaml:"model"`
		Base  string `yaml:"base"`
	} `yaml:"openai"`

	Verbose bool `yaml:"verbose"`
}

// LoadConfigFile reads and parses a YAML config file.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse config file: %w", err)
	}
	return fc, nil
}

// ApplyFile fills empty Config fields from the file config. Values already
// set from flags or env always win; the file only supplies what is missing.
func (c *Config) ApplyFile(fc FileConfig) {
	setIfEmpty(&c.InputPath, fc.Input)
	setIfEmpty(&c.OutputPath, fc.Output)
	setIfEmpty(&c.PDFPath, fc.OutputPDF)
	setIfEmpty(&c.Language, fc.Language)
	setIfEmpty(&c.OllamaURL, fc.Ollama.URL)
	setIfEmpty(&c.OllamaModel, fc.Ollama.Model)
	if c.OllamaTimeout == 0 && fc.Ollama.Timeout != "" {
		if d, err := time.ParseDuration(fc.Ollama.Timeout); err == nil {
			c.OllamaTimeout = d
		}
	}
	setIfEmpty(&c.HFAPIKey, fc.HuggingFace.Key)
	setIfEmpty(&c.HFModel, fc.HuggingFace.Model)
	setIfEmpty(&c.OpenAIAPIKey, fc.OpenAI.Key)
	setIfEmpty(&c.OpenAIModel, fc.OpenAI.Model)
	setIfEmpty(&c.OpenAIBaseURL, fc.OpenAI.Base)
	if fc.Verbose {
		c.Verbose = true
	}
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
