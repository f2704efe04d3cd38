package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

type LLMConfig struct {
	Provider    string
	Model       string
	Timeout     time.Duration
	MaxRetries  int
	Temperature float32
}

var (
	llmConfig *LLMConfig
	llmOnce   sync.Once
)

func LoadLLMConfig() *LLMConfig {
	llmOnce.Do(func() {
		provider := os.Getenv("LLM_PROVIDER")
		if provider == "" {
			provider = ProviderGemini
		}
		model := os.Getenv("LLM_MODEL")
		if model == "" {
			switch provider {
			case ProviderOpenRouter:
				model = "openai/gpt-4o-mini"
			default:
				model = "gemini-2.5-flash"
			}
		}
		llmConfig = &LLMConfig{
			Provider:    provider,
			Model:       model,
			Timeout:     durationEnv("LLM_TIMEOUT", 90*time.Second),
			MaxRetries:  intEnv("LLM_MAX_RETRIES", 0),
			Temperature: float32(floatEnv("LLM_TEMPERATURE", 0.2)),
		}
	})
	return llmConfig
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s %q, defaulting to %s", key, raw, fallback)
		return fallback
	}
	return d
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("Warning: invalid %s %q, defaulting to %d", key, raw, fallback)
		return fallback
	}
	return n
}

func floatEnv(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		log.Printf("Warning: invalid %s %q, defaulting to %v", key, raw, fallback)
		return fallback
	}
	return f
}
