package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medplain/medplain/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		cfg        app.Config
		configPath string
		envFiles   string
	)

	flag.StringVar(&cfg.InputPath, "input", "report.txt", "Path to the extracted report text")
	flag.StringVar(&cfg.OutputPath, "output", "-", "Path for the JSON analysis result ('-' for stdout)")
	flag.StringVar(&cfg.PDFPath, "pdf", "", "Optional path for a PDF patient handout")
	flag.StringVar(&cfg.Language, "lang", os.Getenv("MEDPLAIN_LANG"), "Target language code: en, hi, mr, ur")
	flag.StringVar(&cfg.OllamaURL, "ollama.url", os.Getenv("OLLAMA_URL"), "Ollama base URL (default http://localhost:11434)")
	flag.StringVar(&cfg.OllamaModel, "ollama.model", os.Getenv("OLLAMA_MODEL"), "Ollama model name (default llama3.2)")
	flag.DurationVar(&cfg.OllamaTimeout, "ollama.timeout", 0, "Per-attempt timeout for Ollama calls (default 60s)")
	flag.StringVar(&cfg.HFAPIKey, "hf.key", os.Getenv("HUGGING_FACE_API_KEY"), "HuggingFace API key (provider skipped when empty)")
	flag.StringVar(&cfg.HFModel, "hf.model", os.Getenv("HUGGING_FACE_MODEL"), "HuggingFace model name")
	flag.StringVar(&cfg.OpenAIAPIKey, "openai.key", os.Getenv("OPENAI_API_KEY"), "OpenAI API key (provider skipped when empty)")
	flag.StringVar(&cfg.OpenAIModel, "openai.model", os.Getenv("OPENAI_MODEL"), "OpenAI model name")
	flag.StringVar(&cfg.OpenAIBaseURL, "openai.base", os.Getenv("OPENAI_BASE_URL"), "OpenAI-compatible base URL override")
	flag.StringVar(&configPath, "config", os.Getenv("MEDPLAIN_CONFIG"), "Optional YAML config file")
	flag.StringVar(&envFiles, "env", "", "Comma-separated dotenv files to load first")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	flag.Parse()

	if envFiles != "" {
		if err := app.LoadEnvFiles(strings.Split(envFiles, ",")...); err != nil {
			log.Fatal().Err(err).Msg("load env files")
		}
	}
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load config file")
		}
		cfg.ApplyFile(fc)
	}
	if cfg.OllamaURL == "" {
		cfg.OllamaURL = "http://localhost:11434"
	}
	if cfg.OllamaModel == "" {
		cfg.OllamaModel = "llama3.2"
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := app.Run(context.Background(), cfg); err != nil {
		log.Fatal().Err(err).Msg("analysis run failed")
	}
}
