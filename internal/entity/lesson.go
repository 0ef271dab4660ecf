package entity

import (
	"fmt"
	"strings"
	"time"
)

// Level is the CEFR level a lesson targets.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
)

// ParseLevel normalises user input into a supported Level.
func ParseLevel(raw string) (Level, error) {
	switch Level(strings.ToUpper(strings.TrimSpace(raw))) {
	case LevelA1:
		return LevelA1, nil
	case LevelA2:
		return LevelA2, nil
	case LevelB1:
		return LevelB1, nil
	case "":
		return LevelA1, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLevel, raw)
	}
}

// Origin records where a lesson came from.
type Origin string

const (
	OriginStatic Origin = "static"
	OriginAI     Origin = "ai"
)

// VocabularyItem is a single flash card.
type VocabularyItem struct {
	German        string `json:"german"`
	English       string `json:"english"`
	Kannada       string `json:"kannada"`
	Pronunciation string `json:"pronunciation"`
}

// Lesson groups vocabulary, a quiz and a dialogue around one topic.
type Lesson struct {
	ID          string           `json:"id"`
	Title       Bilingual        `json:"title"`
	Level       Level            `json:"level"`
	Description Bilingual        `json:"description"`
	Vocabulary  []VocabularyItem `json:"content"`
	Quiz        []QuizQuestion   `json:"quiz"`
	Dialogue    Dialogue         `json:"dialogue"`
	Origin      Origin           `json:"origin"`
	CreatedAt   time.Time        `json:"created_at"`
}

// IsAI reports whether the lesson was produced by the AI gateway.
func (l *Lesson) IsAI() bool {
	return l.Origin == OriginAI
}

// Normalize ensures defaults & trims free text before validation or persistence.
func (l *Lesson) Normalize(now time.Time) {
	l.ID = strings.TrimSpace(l.ID)
	l.Title = l.Title.Normalize()
	l.Description = l.Description.Normalize()
	if l.Level == "" {
		l.Level = LevelA1
	}
	if l.Origin == "" {
		l.Origin = OriginStatic
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	for i := range l.Vocabulary {
		v := &l.Vocabulary[i]
		v.German = strings.TrimSpace(v.German)
		v.English = strings.TrimSpace(v.English)
		v.Kannada = strings.TrimSpace(v.Kannada)
		v.Pronunciation = strings.TrimSpace(v.Pronunciation)
	}
}

// Validate checks field presence and the quiz and dialogue invariants.
func (l *Lesson) Validate() error {
	if l.ID == "" {
		return ErrInvalidLessonID
	}
	if l.Title.English == "" {
		return fmt.Errorf("%w: %s: title is required", ErrInvalidLesson, l.ID)
	}
	if _, err := ParseLevel(string(l.Level)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidLesson, l.ID, err)
	}
	if len(l.Vocabulary) == 0 {
		return fmt.Errorf("%w: %s: vocabulary is empty", ErrInvalidLesson, l.ID)
	}
	for i, item := range l.Vocabulary {
		if item.German == "" || item.English == "" {
			return fmt.Errorf("%w: %s: vocabulary item %d is incomplete", ErrInvalidLesson, l.ID, i)
		}
	}
	if len(l.Quiz) == 0 {
		return fmt.Errorf("%w: %s: quiz is empty", ErrInvalidLesson, l.ID)
	}
	seen := make(map[string]struct{}, len(l.Quiz))
	for i := range l.Quiz {
		q := &l.Quiz[i]
		if err := q.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidLesson, l.ID, err)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: %s: duplicate question id %q", ErrInvalidLesson, l.ID, q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	if err := l.Dialogue.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidLesson, l.ID, err)
	}
	return nil
}

// GrammarTopic is a grammar card whose details are explained on demand.
type GrammarTopic struct {
	ID      string    `json:"id"`
	Title   Bilingual `json:"title"`
	Summary Bilingual `json:"summary"`
	Icon    string    `json:"icon"`
}
