package service

import (
	"context"
	"fmt"

	"github.com/fadilmartias/career-compass/internal/config"
	"go.uber.org/zap"
)

// Backend is a generator that also exposes its circuit breaker.
type Backend interface {
	Generator
	StatusReporter
}

// NewBackend builds the generator selected by LLM_PROVIDER.
func NewBackend(ctx context.Context, llm *config.LLMConfig, log *zap.Logger) (Backend, error) {
	switch llm.Provider {
	case config.ProviderGemini:
		return NewGeminiService(ctx, llm, log)
	case config.ProviderOpenRouter:
		return NewOpenRouterService(config.LoadOpenRouterConfig(), llm, log)
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", llm.Provider)
	}
}
