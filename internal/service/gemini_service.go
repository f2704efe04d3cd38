package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/career-compass/internal/config"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type GeminiService struct {
	Client      *genai.Client
	Model       string
	Temperature float32
	*resilience
}

func NewGeminiService(ctx context.Context, llm *config.LLMConfig, log *zap.Logger) (*GeminiService, error) {
	geminiConfig := config.LoadGeminiConfig()
	apiKey := geminiConfig.APIKey
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiService{
		Client:      client,
		Model:       llm.Model,
		Temperature: llm.Temperature,
		resilience:  newResilience(llm.MaxRetries, llm.Timeout, log.Named("gemini")),
	}, nil
}

func (s *GeminiService) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}

	return s.do(ctx, req.Name, func(ctx context.Context) (string, error) {
		result, err := s.GenerateContent(ctx, req)
		if err != nil {
			return "", err
		}
		text := result.Text()
		if req.JSON {
			text = CleanJSON(text)
		}
		return text, nil
	})
}

// GenerateContent performs a single generateContent call without retries.
func (s *GeminiService) GenerateContent(ctx context.Context, req GenerateRequest) (*genai.GenerateContentResponse, error) {
	if s.Model == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(s.Temperature),
	}
	if req.JSON {
		genConfig.ResponseMIMEType = "application/json"
	}
	if strings.TrimSpace(req.System) != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	result, err := s.Client.Models.GenerateContent(ctx, s.Model, genai.Text(req.Prompt), genConfig)
	if err != nil {
		return nil, fmt.Errorf("generate content failed: %w", err)
	}
	if err := validateGenerateResponse(result); err != nil {
		return nil, fmt.Errorf("invalid response: %w", err)
	}
	return result, nil
}

func (s *GeminiService) Status() GeneratorStatus {
	errs, open := s.breakerState()
	return GeneratorStatus{
		Provider:          config.ProviderGemini,
		Model:             s.Model,
		ConsecutiveErrors: errs,
		CircuitOpen:       open,
	}
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}
