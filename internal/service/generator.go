package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// GenerateRequest is one prompt submitted to a text-generation backend.
type GenerateRequest struct {
	// Name identifies the prompt in logs and errors.
	Name   string
	System string
	Prompt string
	// JSON asks the backend for a bare JSON document.
	JSON bool
}

type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

type GeneratorStatus struct {
	Provider          string `json:"provider"`
	Model             string `json:"model"`
	ConsecutiveErrors int    `json:"consecutive_errors"`
	CircuitOpen       bool   `json:"circuit_open"`
}

// StatusReporter is implemented by generators that keep a circuit breaker.
type StatusReporter interface {
	Status() GeneratorStatus
	ResetCircuitBreaker()
}

var ErrCircuitOpen = errors.New("circuit breaker open")

// StatusError carries a non-2xx response from an HTTP based backend.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Code)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Message)
}

func validateRequest(req GenerateRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return fmt.Errorf("prompt cannot be empty")
	}
	return nil
}

// CleanJSON strips markdown code fences and any chatter around the first
// JSON object or array in text.
func CleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := strings.TrimSpace(text[:idx])
			if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	closer := byte('}')
	if text[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(text, closer)
	if end < start {
		return text[start:]
	}
	return text[start : end+1]
}

// Ping sends a one-word prompt to check credentials and model availability.
func Ping(ctx context.Context, gen Generator) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	reply, err := gen.Generate(ctx, GenerateRequest{Name: "ping", Prompt: "Reply with the single word: ok"})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}
