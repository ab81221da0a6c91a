// Package config loads runtime configuration from the environment, with an
// optional .env style secrets file loaded first.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// GroqAPIKey authenticates against the OpenAI-compatible endpoint.
	GroqAPIKey string `env:"GROQ_API_KEY,required,notEmpty"`

	Model   string `env:"BRIEFCAST_MODEL"    envDefault:"gemma2-9b-it"`
	BaseURL string `env:"BRIEFCAST_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	Addr    string `env:"BRIEFCAST_ADDR"     envDefault:":8080"`
	WorkDir string `env:"BRIEFCAST_WORKDIR"  envDefault:"briefcast-data"`

	// KeywordsFile optionally overrides the built-in classifier keyword
	// lists with a YAML file.
	KeywordsFile string `env:"BRIEFCAST_KEYWORDS_FILE"`

	// TranscriptProxyURL routes caption fetches through a proxy, useful
	// when the video platform rate-limits the host's address.
	TranscriptProxyURL string `env:"TRANSCRIPT_PROXY_URL"`

	// TraceAPIKey, when set, enables writing per-request YAML trace files
	// under the work directory.
	TraceAPIKey string `env:"TRACE_API_KEY"`
}

// Load reads an optional env file and then parses configuration from the
// environment. A missing env file is not an error; variables already set in
// the environment win over file values.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
