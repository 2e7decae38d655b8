package study

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eduorb-backend/internal/ai"
	"eduorb-backend/internal/metrics"
	"eduorb-backend/internal/models"
)

// Tutor names a conversational feature.
type Tutor string

const (
	DoubtSolver   Tutor = "doubt_solver"
	MockInterview Tutor = "mock_interview"
)

const maxChatMessages = 100

var tutorPrompts = map[Tutor]string{
	DoubtSolver: `You are an expert academic tutor and doubt solver. Your role is to:

1. Provide clear, detailed explanations for academic questions across all subjects
2. Break down complex concepts into simple, understandable steps
3. Use examples and analogies to make concepts clearer
4. Encourage critical thinking by asking follow-up questions
5. Adapt your explanation style to the student's level of understanding
6. Provide step-by-step solutions for mathematical and scientific problems
7. Cite reliable sources when appropriate
8. Be patient, encouraging, and supportive

Always aim to not just give answers, but to help students understand the underlying concepts so they can solve similar problems independently.`,

	MockInterview: `You are an experienced technical interviewer conducting a mock interview. Your role is to:

1. Ask relevant, realistic interview questions based on the candidate's target role and experience level
2. Follow up on answers with deeper technical questions when appropriate
3. Provide constructive feedback and suggestions for improvement
4. Maintain a professional but friendly tone
5. Ask a mix of technical, behavioral, and situational questions
6. Gradually increase difficulty based on the candidate's responses
7. Give encouragement and helpful tips throughout the interview

Interview Structure:
- Start with a brief introduction and overview
- Ask 1-2 warm-up questions
- Progress to technical questions relevant to the role
- Include behavioral questions (STAR method)
- Ask about problem-solving approaches
- Conclude with questions for the interviewer and next steps

Provide specific, actionable feedback after each response to help the candidate improve.`,
}

type ChatRequest struct {
	Messages []models.ChatMessage `json:"messages"`
}

func (r *ChatRequest) Validate() error {
	if len(r.Messages) == 0 {
		return invalid("messages", "At least one message is required.")
	}
	if len(r.Messages) > maxChatMessages {
		return invalid("messages", fmt.Sprintf("A conversation may hold at most %d messages.", maxChatMessages))
	}
	for _, m := range r.Messages {
		if m.Role != models.ChatRoleUser && m.Role != models.ChatRoleAssistant {
			return invalid("messages", "Message role must be user or assistant.")
		}
	}
	if strings.TrimSpace(r.Messages[len(r.Messages)-1].Content) == "" {
		return invalid("messages", "The last message must not be empty.")
	}
	return nil
}

// StreamChat streams the tutor's reply to the transcript through onDelta.
// The reply is cut off after the configured max duration, in which case
// ErrMaxDuration is returned and whatever was already delivered stands.
func (s *Service) StreamChat(ctx context.Context, tutor Tutor, req ChatRequest, onDelta func(string) error) error {
	system, ok := tutorPrompts[tutor]
	if !ok {
		return fmt.Errorf("unknown tutor %q", tutor)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	messages := make([]ai.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, ai.Message{Role: m.Role, Content: m.Content})
	}

	ctx, cancel := context.WithTimeoutCause(ctx, s.opts.ChatMaxDuration, ErrMaxDuration)
	defer cancel()

	start := time.Now()
	err := s.provider.StreamText(ctx, ai.ChatRequest{System: system, Messages: messages}, onDelta)
	if err != nil && errors.Is(context.Cause(ctx), ErrMaxDuration) {
		err = ErrMaxDuration
	}
	metrics.ObserveGeneration(string(tutor), start, err)
	if err != nil && !errors.Is(err, ErrMaxDuration) {
		return fmt.Errorf("stream %s: %w", tutor, err)
	}
	return err
}
