package study

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"eduorb-backend/internal/ai"
	"eduorb-backend/internal/models"
)

const maxScore = 10

var scorePattern = regexp.MustCompile(`(\d{1,2})/10`)

type QuestionsRequest struct {
	Skill string `json:"skill"`
}

type ScoreRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// InterviewQuestions asks for five interview questions about skill.
func (s *Service) InterviewQuestions(ctx context.Context, req QuestionsRequest) ([]string, error) {
	skill := strings.TrimSpace(req.Skill)
	if skill == "" {
		return nil, invalid("skill", "Please enter a skill.")
	}

	text, err := s.generateText(ctx, "interview_questions", ai.TextRequest{
		Prompt: fmt.Sprintf("Generate 5 concise and relevant interview questions for a candidate skilled in %s.", skill),
	})
	if err != nil {
		return nil, err
	}

	questions := ParseQuestions(text)
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions in reply", ErrInvalidResult)
	}
	return questions, nil
}

// ParseQuestions splits a model reply into one question per line, dropping
// list markers and blank lines.
func ParseQuestions(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		q := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•*0123456789.) "))
		if q != "" {
			out = append(out, q)
		}
	}
	return out
}

// ScoreAnswer grades one interview answer out of ten.
func (s *Service) ScoreAnswer(ctx context.Context, req ScoreRequest) (*models.InterviewEvaluation, error) {
	question := strings.TrimSpace(req.Question)
	answer := strings.TrimSpace(req.Answer)
	if question == "" || answer == "" {
		return nil, invalid("answer", "Question and answer are required.")
	}

	prompt := fmt.Sprintf(`You are an AI interview evaluator.

Question: %s
Candidate Answer: %s

Evaluate the answer and provide a score out of 10 along with a short explanation. Example format: 'Score: 7/10 - Reason: Good understanding but lacks depth.'`,
		question, answer)

	text, err := s.generateText(ctx, "interview_score", ai.TextRequest{Prompt: prompt})
	if err != nil {
		return nil, err
	}

	feedback := strings.TrimSpace(text)
	return &models.InterviewEvaluation{Score: ParseScore(feedback), Feedback: feedback}, nil
}

// ParseScore returns the first "N/10" in text, capped at 10, or 0.
func ParseScore(text string) int {
	m := scorePattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	score, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return min(score, maxScore)
}
