// Package aitest provides a scripted ai.Provider for tests.
package aitest

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"eduorb-backend/internal/ai"
)

// Fake replays canned replies and records what it was asked.
type Fake struct {
	mu sync.Mutex

	// Object is marshalled into the caller's out value by GenerateObject.
	Object any
	// Text is returned by GenerateText.
	Text string
	// Tokens are streamed by StreamText, one per delta.
	Tokens []string
	// TokenDelay is waited before each streamed token.
	TokenDelay time.Duration
	// Err is returned by every call when set.
	Err error

	ObjectRequests []ai.ObjectRequest
	TextRequests   []ai.TextRequest
	ChatRequests   []ai.ChatRequest
}

func (f *Fake) GenerateObject(ctx context.Context, req ai.ObjectRequest, out any) error {
	f.mu.Lock()
	f.ObjectRequests = append(f.ObjectRequests, req)
	f.mu.Unlock()

	if f.Err != nil {
		return f.Err
	}
	b, err := json.Marshal(f.Object)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (f *Fake) GenerateText(ctx context.Context, req ai.TextRequest) (string, error) {
	f.mu.Lock()
	f.TextRequests = append(f.TextRequests, req)
	f.mu.Unlock()

	if f.Err != nil {
		return "", f.Err
	}
	return f.Text, nil
}

func (f *Fake) StreamText(ctx context.Context, req ai.ChatRequest, onDelta func(delta string) error) error {
	f.mu.Lock()
	f.ChatRequests = append(f.ChatRequests, req)
	f.mu.Unlock()

	if f.Err != nil {
		return f.Err
	}
	for _, token := range f.Tokens {
		if f.TokenDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(f.TokenDelay):
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := onDelta(token); err != nil {
			return err
		}
	}
	return nil
}
