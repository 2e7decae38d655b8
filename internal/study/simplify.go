package study

import (
	"context"
	"fmt"
	"strings"

	"eduorb-backend/internal/ai"
)

// ReadingLevels maps each supported target level to its instruction.
var ReadingLevels = map[string]string{
	"elementary":   "elementary school level (grades 3-5). Use simple words, short sentences, and basic concepts.",
	"intermediate": "middle school level (grades 6-8). Use moderately complex vocabulary and sentence structures.",
	"high-school":  "high school level (grades 9-12). Use appropriate vocabulary while maintaining clarity.",
}

const simplifierSystem = `You are an expert text simplifier. Your task is to rewrite complex text to make it easier to understand while preserving all important information and meaning.

Guidelines:
- Maintain the original meaning and key information
- Break down complex sentences into simpler ones
- Replace difficult vocabulary with simpler alternatives
- Use active voice when possible
- Add explanations for technical terms when necessary
- Organize information clearly with good flow
- Keep the tone appropriate for the target reading level`

type SimplifyRequest struct {
	Text  string `json:"text"`
	Level string `json:"level"`
}

func (r *SimplifyRequest) Validate() error {
	r.Text = strings.TrimSpace(r.Text)
	r.Level = strings.ToLower(strings.TrimSpace(r.Level))
	if r.Text == "" {
		return invalid("text", "Please enter some text to simplify.")
	}
	if _, ok := ReadingLevels[r.Level]; !ok {
		return invalid("level", "Level must be elementary, intermediate or high-school.")
	}
	return nil
}

func simplifyPrompt(r SimplifyRequest) string {
	return fmt.Sprintf(`Please simplify the following text for %s

"%s"

Make sure to:
1. Preserve all important information
2. Use vocabulary appropriate for the target level
3. Maintain logical flow and organization
4. Explain any necessary technical terms
5. Keep the content engaging and readable`, ReadingLevels[r.Level], r.Text)
}

// Simplify rewrites req.Text for the requested reading level.
func (s *Service) Simplify(ctx context.Context, req SimplifyRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return s.generateText(ctx, "reading_simplifier", ai.TextRequest{
		System: simplifierSystem,
		Prompt: simplifyPrompt(req),
	})
}
