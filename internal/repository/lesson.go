package repository

import (
	"context"

	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/pkg/filterexpr"
)

type ListLessonQuery struct {
	Pagination
	FilterOrder
}

// LessonQuerySchema whitelists lesson filters and orderings. Columns match the
// lessons table.
var LessonQuerySchema = filterexpr.Schema{
	Fields: map[string]filterexpr.Field{
		"id":         {Column: "id", Kind: filterexpr.KindString, Ops: []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpIN, filterexpr.OpSW}},
		"level":      {Column: "level", Kind: filterexpr.KindString, Ops: []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpIN}},
		"origin":     {Column: "origin", Kind: filterexpr.KindString, Ops: []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpIN}},
		"title":      {Column: "title", Kind: filterexpr.KindString, Ops: []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpSW}, Fold: true},
		"created_at": {Column: "created_at", Kind: filterexpr.KindTimestamp, Ops: []filterexpr.Op{filterexpr.OpGTE, filterexpr.OpLTE}},
	},
	OrderKeys: map[string]string{
		"id":         "id",
		"title":      "title",
		"level":      "level",
		"created_at": "created_at",
	},
	DefaultOrder: []filterexpr.OrderTerm{{Key: "created_at"}, {Key: "id"}},
}

// LessonField returns the value of a filterable lesson field.
func LessonField(l *entity.Lesson, field string) any {
	switch field {
	case "id":
		return l.ID
	case "level":
		return string(l.Level)
	case "origin":
		return string(l.Origin)
	case "title":
		return l.Title.English
	case "created_at":
		return l.CreatedAt
	default:
		return nil
	}
}

// LessonRepository defines data access for lessons.
type LessonRepository interface {
	Create(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error)
	Upsert(ctx context.Context, lesson *entity.Lesson) error
	GetByID(ctx context.Context, id string) (*entity.Lesson, error)
	List(ctx context.Context, query *filterexpr.Query, page Pagination) ([]*entity.Lesson, int64, error)
	Delete(ctx context.Context, id string) error
}

// GrammarRepository defines read access for grammar topics.
type GrammarRepository interface {
	List(ctx context.Context) ([]*entity.GrammarTopic, error)
	GetByID(ctx context.Context, id string) (*entity.GrammarTopic, error)
}
