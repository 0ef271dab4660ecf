package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/internal/repository"
	"github.com/eslsoft/lingoguru/pkg/filterexpr"
)

type memoryLessonRepository struct {
	mu      sync.RWMutex
	lessons map[string]*entity.Lesson
}

// NewMemoryLessonRepository returns a process-local lesson store.
func NewMemoryLessonRepository() repository.LessonRepository {
	return &memoryLessonRepository{lessons: make(map[string]*entity.Lesson)}
}

func (r *memoryLessonRepository) Create(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.lessons[lesson.ID]; exists {
		return nil, entity.ErrDuplicateLesson
	}
	stored := cloneLesson(lesson)
	r.lessons[lesson.ID] = stored
	return cloneLesson(stored), nil
}

func (r *memoryLessonRepository) Upsert(ctx context.Context, lesson *entity.Lesson) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lessons[lesson.ID] = cloneLesson(lesson)
	return nil
}

func (r *memoryLessonRepository) GetByID(ctx context.Context, id string) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.lessons[id]
	if !ok {
		return nil, entity.ErrLessonNotFound
	}
	return cloneLesson(l), nil
}

func (r *memoryLessonRepository) List(ctx context.Context, query *filterexpr.Query, page repository.Pagination) ([]*entity.Lesson, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	matched := make([]*entity.Lesson, 0, len(r.lessons))
	for _, l := range r.lessons {
		if query.MatchAll(func(field string) any { return repository.LessonField(l, field) }) {
			matched = append(matched, l)
		}
	}
	r.mu.RUnlock()

	var order []filterexpr.OrderTerm
	if query != nil {
		order = query.Order
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return lessLesson(matched[i], matched[j], order)
	})

	total := int64(len(matched))
	if page.PageSize > 0 {
		start := int(page.Offset())
		if start > len(matched) {
			start = len(matched)
		}
		end := start + int(page.PageSize)
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}

	out := make([]*entity.Lesson, len(matched))
	for i, l := range matched {
		out[i] = cloneLesson(l)
	}
	return out, total, nil
}

func (r *memoryLessonRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lessons[id]; !ok {
		return entity.ErrLessonNotFound
	}
	delete(r.lessons, id)
	return nil
}

func lessLesson(a, b *entity.Lesson, order []filterexpr.OrderTerm) bool {
	for _, term := range order {
		c := compareField(repository.LessonField(a, term.Key), repository.LessonField(b, term.Key))
		if c == 0 {
			continue
		}
		if term.Desc {
			return c > 0
		}
		return c < 0
	}
	return a.ID < b.ID
}

func compareField(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return strings.Compare(strings.ToLower(av), strings.ToLower(bv))
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Compare(bv)
	default:
		return 0
	}
}

// cloneLesson deep copies slices and the node map so callers cannot mutate
// stored lessons.
func cloneLesson(l *entity.Lesson) *entity.Lesson {
	if l == nil {
		return nil
	}
	c := *l
	c.Vocabulary = append([]entity.VocabularyItem(nil), l.Vocabulary...)
	c.Quiz = make([]entity.QuizQuestion, len(l.Quiz))
	for i, q := range l.Quiz {
		q.Options = append([]string(nil), q.Options...)
		c.Quiz[i] = q
	}
	c.Dialogue.Nodes = make(map[string]entity.DialogueNode, len(l.Dialogue.Nodes))
	for id, n := range l.Dialogue.Nodes {
		n.Options = append([]entity.DialogueOption(nil), n.Options...)
		c.Dialogue.Nodes[id] = n
	}
	return &c
}
