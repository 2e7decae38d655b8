package study

import (
	"context"
	"fmt"
	"strings"

	"eduorb-backend/internal/ai"
	"eduorb-backend/internal/models"

	"github.com/sashabaranov/go-openai/jsonschema"
)

const (
	DefaultQuestionCount = 10
	MaxQuestionCount     = 50
	optionsPerQuestion   = 4
)

var examDifficulties = map[string]bool{
	"beginner":     true,
	"intermediate": true,
	"advanced":     true,
}

type ExamRequest struct {
	Subject       string `json:"subject"`
	Topic         string `json:"topic"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"questionCount"`
}

func (r *ExamRequest) Validate() error {
	r.Subject = strings.TrimSpace(r.Subject)
	r.Topic = strings.TrimSpace(r.Topic)
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))

	if r.Subject == "" || r.Topic == "" || r.Difficulty == "" {
		return invalid("subject", "Please fill in all required fields.")
	}
	if !examDifficulties[r.Difficulty] {
		return invalid("difficulty", "Difficulty must be beginner, intermediate or advanced.")
	}
	if r.QuestionCount == 0 {
		r.QuestionCount = DefaultQuestionCount
	}
	if r.QuestionCount < 1 || r.QuestionCount > MaxQuestionCount {
		return invalid("questionCount", fmt.Sprintf("Question count must be between 1 and %d.", MaxQuestionCount))
	}
	return nil
}

var examSchema = ai.Schema{
	Name: "exam",
	Definition: ai.Object("A multiple-choice exam", map[string]jsonschema.Definition{
		"title": ai.String("Title of the exam"),
		"questions": ai.ArrayOf("The exam questions", ai.Object("", map[string]jsonschema.Definition{
			"question":      ai.String("The question text"),
			"options":       ai.StringArray("Exactly four multiple choice options"),
			"correctAnswer": ai.Integer("Index of the correct answer (0-3)"),
			"explanation":   ai.String("Detailed explanation of why the answer is correct"),
		})),
	}),
}

func examPrompt(r ExamRequest) string {
	return fmt.Sprintf(`Generate a %[1]s level exam for %[2]s on the topic: "%[3]s".

Create exactly %[4]d multiple-choice questions. Each question should:
- Be relevant to the specified topic and subject
- Match the %[1]s difficulty level
- Have 4 clear, distinct options
- Include a detailed explanation for the correct answer
- Test understanding, not just memorization

Make sure the questions cover different aspects of the topic and progressively build understanding.`,
		r.Difficulty, r.Subject, r.Topic, r.QuestionCount)
}

// GenerateExam produces an exam with exactly req.QuestionCount questions.
func (s *Service) GenerateExam(ctx context.Context, req ExamRequest) (*models.Exam, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var exam models.Exam
	if err := s.generateObject(ctx, "exam", ai.ObjectRequest{Prompt: examPrompt(req), Schema: examSchema}, &exam); err != nil {
		return nil, err
	}
	if err := CheckExam(&exam, req.QuestionCount); err != nil {
		return nil, err
	}
	return &exam, nil
}

// CheckExam enforces the exam invariants: the requested number of questions,
// four options each and a correct index in range.
func CheckExam(exam *models.Exam, want int) error {
	if len(exam.Questions) != want {
		return fmt.Errorf("%w: got %d questions, want %d", ErrInvalidResult, len(exam.Questions), want)
	}
	for i, q := range exam.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("%w: question %d is empty", ErrInvalidResult, i+1)
		}
		if len(q.Options) != optionsPerQuestion {
			return fmt.Errorf("%w: question %d has %d options", ErrInvalidResult, i+1, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= optionsPerQuestion {
			return fmt.Errorf("%w: question %d has correct answer %d", ErrInvalidResult, i+1, q.CorrectAnswer)
		}
	}
	return nil
}
