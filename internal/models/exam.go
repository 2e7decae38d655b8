package models

type Exam struct {
	Title     string         `json:"title"`
	Questions []ExamQuestion `json:"questions"`
}

type ExamQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}
