package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/career-compass/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// OpenRouterService talks to an OpenAI compatible chat completions API.
type OpenRouterService struct {
	client      *resty.Client
	Model       string
	Temperature float32
	log         *zap.Logger
	*resilience
}

func NewOpenRouterService(cfg *config.OpenRouterConfig, llm *config.LLMConfig, log *zap.Logger) (*OpenRouterService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
	}
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	log = log.Named("openrouter")
	return &OpenRouterService{
		client:      client,
		Model:       llm.Model,
		Temperature: llm.Temperature,
		log:         log,
		resilience:  newResilience(llm.MaxRetries, llm.Timeout, log),
	}, nil
}

func (s *OpenRouterService) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}
	return s.do(ctx, req.Name, func(ctx context.Context) (string, error) {
		return s.complete(ctx, req)
	})
}

func (s *OpenRouterService) complete(ctx context.Context, req GenerateRequest) (string, error) {
	messages := make([]map[string]string, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, map[string]string{"role": "system", "content": req.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.Prompt})

	payload := map[string]any{
		"model":       s.Model,
		"messages":    messages,
		"temperature": s.Temperature,
	}
	if req.JSON {
		payload["response_format"] = map[string]string{"type": "json_object"}
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	body := resp.String()
	s.log.Debug("chat completion response",
		zap.String("prompt", req.Name),
		zap.Int("status", resp.StatusCode()),
		zap.Int("bytes", len(body)))

	if resp.IsError() {
		return "", &StatusError{
			Code:    resp.StatusCode(),
			Message: gjson.Get(body, "error.message").String(),
		}
	}
	if msg := gjson.Get(body, "error.message"); msg.Exists() {
		return "", fmt.Errorf("API error: %s", msg.String())
	}

	text := gjson.Get(body, "choices.0.message.content").String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	if req.JSON {
		text = CleanJSON(text)
	}
	return text, nil
}

func (s *OpenRouterService) Status() GeneratorStatus {
	errs, open := s.breakerState()
	return GeneratorStatus{
		Provider:          config.ProviderOpenRouter,
		Model:             s.Model,
		ConsecutiveErrors: errs,
		CircuitOpen:       open,
	}
}
