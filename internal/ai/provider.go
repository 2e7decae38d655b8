package ai

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai/jsonschema"
)

var (
	// ErrEmptyResponse is returned when the model replies with no content.
	ErrEmptyResponse = errors.New("ai: empty response")
	// ErrTruncated is returned when the model stopped at its token limit.
	ErrTruncated = errors.New("ai: response truncated")
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

// Schema constrains a structured generation.
type Schema struct {
	Name       string
	Definition jsonschema.Definition
}

type ObjectRequest struct {
	System string
	Prompt string
	Schema Schema
}

type TextRequest struct {
	System string
	Prompt string
}

type ChatRequest struct {
	System   string
	Messages []Message
}

// Provider is a language-model backend.
type Provider interface {
	// GenerateObject asks for JSON matching req.Schema and decodes it into out.
	GenerateObject(ctx context.Context, req ObjectRequest, out any) error
	// GenerateText returns one completed reply.
	GenerateText(ctx context.Context, req TextRequest) (string, error)
	// StreamText calls onDelta for every chunk of generated text until the
	// reply completes, ctx ends, or onDelta returns an error.
	StreamText(ctx context.Context, req ChatRequest, onDelta func(delta string) error) error
}
