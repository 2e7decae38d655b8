package models

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one turn of a client-held transcript.
type ChatMessage struct {
	ID      string `json:"id,omitempty"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// InterviewEvaluation is the graded result for a single interview answer.
type InterviewEvaluation struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}
