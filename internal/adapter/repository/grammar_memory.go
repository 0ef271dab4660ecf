package repository

import (
	"context"
	"sync"

	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/internal/repository"
)

type memoryGrammarRepository struct {
	mu     sync.RWMutex
	topics []*entity.GrammarTopic
}

// NewMemoryGrammarRepository serves a fixed set of grammar topics.
func NewMemoryGrammarRepository(topics []entity.GrammarTopic) repository.GrammarRepository {
	r := &memoryGrammarRepository{}
	for i := range topics {
		t := topics[i]
		r.topics = append(r.topics, &t)
	}
	return r
}

func (r *memoryGrammarRepository) List(ctx context.Context) ([]*entity.GrammarTopic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.GrammarTopic, len(r.topics))
	for i, t := range r.topics {
		c := *t
		out[i] = &c
	}
	return out, nil
}

func (r *memoryGrammarRepository) GetByID(ctx context.Context, id string) (*entity.GrammarTopic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.topics {
		if t.ID == id {
			c := *t
			return &c, nil
		}
	}
	return nil, entity.ErrTopicNotFound
}
