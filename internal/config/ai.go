package config

import (
	"os"
	"strings"
)

// AIConfig holds Groq API configuration. Groq exposes an OpenAI-compatible
// API, so a single client covers both chat analysis and Whisper transcription.
type AIConfig struct {
	APIKey       string `json:"-"` // Never serialize
	BaseURL      string `json:"baseUrl"`
	ChatModel    string `json:"chatModel"`
	WhisperModel string `json:"whisperModel"`
	TimeoutMS    int    `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration.
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		// Keys pasted into .env files tend to pick up stray quotes.
		APIKey:       strings.Trim(os.Getenv("GROQ_API_KEY"), `"' `),
		BaseURL:      getEnvOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		ChatModel:    getEnvOrDefault("GROQ_CHAT_MODEL", "llama-3.3-70b-versatile"),
		WhisperModel: getEnvOrDefault("GROQ_WHISPER_MODEL", "whisper-large-v3"),
		TimeoutMS:    10000, // 10 second default timeout
	}
}

// IsEnabled returns true if the semantic analyzer API is configured.
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
