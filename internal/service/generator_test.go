package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json code block", "```json\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"generic code block", "```\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"plain JSON", `{"key": "value"}`, `{"key": "value"}`},
		{"preamble", "Here is the result:\n{\"a\": 1}", `{"a": 1}`},
		{"trailing text", "{\"a\": {\"b\": 2}}\n\nAnything else?", `{"a": {"b": 2}}`},
		{"array", "Items: [\"x\", \"y\"]", `["x", "y"]`},
		{"no json", "sorry, I cannot help", "sorry, I cannot help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSON(tt.input))
		})
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limited", &StatusError{Code: 429}, true},
		{"server error", fmt.Errorf("wrapped: %w", &StatusError{Code: 503}), true},
		{"unauthorized", &StatusError{Code: 401}, false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), false},
		{"connection reset", errors.New("read: connection reset by peer"), true},
		{"unexpected EOF", errors.New("unexpected EOF"), true},
		{"other", errors.New("invalid argument"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestStatusErrorMessage(t *testing.T) {
	assert.Equal(t, "backend returned status 502", (&StatusError{Code: 502}).Error())
	assert.Equal(t, "backend returned status 400: bad model", (&StatusError{Code: 400, Message: "bad model"}).Error())
}

type generatorFunc func(ctx context.Context, req GenerateRequest) (string, error)

func (f generatorFunc) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	return f(ctx, req)
}

func TestPing(t *testing.T) {
	var got GenerateRequest
	reply, err := Ping(context.Background(), generatorFunc(func(ctx context.Context, req GenerateRequest) (string, error) {
		got = req
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return " ok\n", nil
	}))

	assert.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, "ping", got.Name)
	assert.False(t, got.JSON)
}
