package entity

import (
	"fmt"
	"slices"
	"strings"
)

// QuizQuestion is a multiple choice question with exactly one correct answer.
type QuizQuestion struct {
	ID            string    `json:"id"`
	Prompt        Bilingual `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	Explanation   Bilingual `json:"explanation"`
}

// IsCorrect compares by exact string equality.
func (q *QuizQuestion) IsCorrect(choice string) bool {
	return choice == q.CorrectAnswer
}

// Validate requires the correct answer to be one of the options.
func (q *QuizQuestion) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return fmt.Errorf("%w: question id is required", ErrInvalidQuiz)
	}
	if strings.TrimSpace(q.Prompt.English) == "" {
		return fmt.Errorf("%w: question %s has no prompt", ErrInvalidQuiz, q.ID)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: question %s needs at least two options", ErrInvalidQuiz, q.ID)
	}
	if !slices.Contains(q.Options, q.CorrectAnswer) {
		return fmt.Errorf("%w: question %s: correct answer %q is not an option", ErrInvalidQuiz, q.ID, q.CorrectAnswer)
	}
	return nil
}
