package config

import (
	"os"
	"sync"
)

type GeminiConfig struct {
	APIKey string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

// LoadGeminiConfig reads GEMINI_API_KEY, falling back to GOOGLE_API_KEY.
func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			apiKey = os.Getenv("GOOGLE_API_KEY")
		}
		geminiConfig = &GeminiConfig{
			APIKey: apiKey,
		}
	})
	return geminiConfig
}
