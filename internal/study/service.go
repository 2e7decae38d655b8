// Package study implements the AI-backed study tools: it turns form input
// into prompts, calls the language model and checks what comes back.
package study

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eduorb-backend/internal/ai"
	"eduorb-backend/internal/metrics"
)

var (
	// ErrInvalidResult means the model answered but the answer broke the
	// result's invariants (wrong question count, bad option index, ...).
	ErrInvalidResult = errors.New("study: invalid generation result")
	// ErrMaxDuration means a chat stream was cut off at its time limit.
	ErrMaxDuration = errors.New("study: chat stream reached max duration")
)

// ValidationError describes bad client input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is caused by bad client input.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type Options struct {
	// Timeout bounds one non-streaming generation.
	Timeout time.Duration
	// ChatMaxDuration bounds one streamed chat reply.
	ChatMaxDuration time.Duration
}

type Service struct {
	provider ai.Provider
	opts     Options
}

func NewService(provider ai.Provider, opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.ChatMaxDuration <= 0 {
		opts.ChatMaxDuration = 30 * time.Second
	}
	return &Service{provider: provider, opts: opts}
}

func (s *Service) generateObject(ctx context.Context, feature string, req ai.ObjectRequest, out any) error {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	start := time.Now()
	err := s.provider.GenerateObject(ctx, req, out)
	metrics.ObserveGeneration(feature, start, err)
	if err != nil {
		return fmt.Errorf("generate %s: %w", feature, err)
	}
	return nil
}

func (s *Service) generateText(ctx context.Context, feature string, req ai.TextRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	start := time.Now()
	text, err := s.provider.GenerateText(ctx, req)
	metrics.ObserveGeneration(feature, start, err)
	if err != nil {
		return "", fmt.Errorf("generate %s: %w", feature, err)
	}
	return text, nil
}
