package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/eslsoft/lingoguru/internal/entity"
)

// lessonRow is the column projection shared by the SQL backends. The full
// lesson lives in document; the other columns exist for filtering and ordering.
type lessonRow struct {
	ID        string
	Level     string
	Origin    string
	Title     string
	CreatedAt time.Time
	Document  []byte
}

func toLessonRow(l *entity.Lesson) (lessonRow, error) {
	doc, err := json.Marshal(l)
	if err != nil {
		return lessonRow{}, fmt.Errorf("encode lesson %s: %w", l.ID, err)
	}
	return lessonRow{
		ID:        l.ID,
		Level:     string(l.Level),
		Origin:    string(l.Origin),
		Title:     l.Title.English,
		CreatedAt: l.CreatedAt.UTC(),
		Document:  doc,
	}, nil
}

func decodeLesson(doc []byte) (*entity.Lesson, error) {
	var l entity.Lesson
	if err := json.Unmarshal(doc, &l); err != nil {
		return nil, fmt.Errorf("decode lesson: %w", err)
	}
	return &l, nil
}
