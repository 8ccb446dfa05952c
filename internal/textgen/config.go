package textgen

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the OpenAI chat-completions endpoint.
const DefaultBaseURL = "https://api.openai.com/v1/chat/completions"

// Config holds configuration for the text-generation client.
type Config struct {
	// APIKey authenticates against the completion API.
	APIKey string

	// Model is the completion model name.
	Model string

	// BaseURL is the chat-completions endpoint.
	BaseURL string

	// Lang is a BCP 47 tag selecting the prompt language ("tr", "en").
	Lang string

	// Timeout bounds one completion call end to end.
	Timeout time.Duration
}

// LoadFromEnv loads client configuration from environment variables.
//
// Environment variables:
//   - OPENAI_API_KEY: API key (required)
//   - TEXTGEN_MODEL: completion model (default: "gpt-3.5-turbo")
//   - TEXTGEN_BASE_URL: endpoint override (default: the OpenAI endpoint)
//   - TEXTGEN_LANG: prompt language tag (default: "tr")
//   - TEXTGEN_TIMEOUT_SECONDS: per-call timeout (default: 60)
func LoadFromEnv() Config {
	model := strings.TrimSpace(os.Getenv("TEXTGEN_MODEL"))
	if model == "" {
		model = "gpt-3.5-turbo"
	}

	baseURL := strings.TrimSpace(os.Getenv("TEXTGEN_BASE_URL"))
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	lang := strings.TrimSpace(os.Getenv("TEXTGEN_LANG"))
	if lang == "" {
		lang = "tr"
	}

	timeout := 60 * time.Second
	if raw := os.Getenv("TEXTGEN_TIMEOUT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	return Config{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		Model:   model,
		BaseURL: baseURL,
		Lang:    lang,
		Timeout: timeout,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
