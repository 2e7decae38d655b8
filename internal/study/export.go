package study

import (
	"fmt"
	"regexp"
	"strings"

	"eduorb-backend/internal/models"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExamText renders an exam as the plain-text download offered to students.
func ExamText(exam *models.Exam) string {
	blocks := make([]string, 0, len(exam.Questions))
	for i, q := range exam.Questions {
		var b strings.Builder
		fmt.Fprintf(&b, "%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(&b, "   %c. %s\n", optionLetter(j), opt)
		}
		fmt.Fprintf(&b, "\nCorrect Answer: %c\nExplanation: %s\n", optionLetter(q.CorrectAnswer), q.Explanation)
		blocks = append(blocks, b.String())
	}
	return exam.Title + "\n\n" + strings.Join(blocks, "\n")
}

// ExamFilename is the attachment name for an exported exam.
func ExamFilename(exam *models.Exam) string {
	name := whitespaceRun.ReplaceAllString(strings.TrimSpace(exam.Title), "_")
	if name == "" {
		name = "exam"
	}
	return name + ".txt"
}

func optionLetter(i int) rune {
	return rune('A' + i)
}
