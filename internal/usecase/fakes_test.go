package usecase

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/internal/repository"
	"github.com/eslsoft/lingoguru/pkg/filterexpr"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// minimal in-memory lesson repository
type fakeLessonRepo struct {
	mu      sync.RWMutex
	lessons map[string]*entity.Lesson
}

func newFakeLessonRepo(lessons ...*entity.Lesson) *fakeLessonRepo {
	r := &fakeLessonRepo{lessons: map[string]*entity.Lesson{}}
	for _, l := range lessons {
		r.lessons[l.ID] = l
	}
	return r
}

func (r *fakeLessonRepo) Create(ctx context.Context, l *entity.Lesson) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lessons[l.ID]; ok {
		return nil, entity.ErrDuplicateLesson
	}
	r.lessons[l.ID] = l
	return l, nil
}

func (r *fakeLessonRepo) Upsert(ctx context.Context, l *entity.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lessons[l.ID] = l
	return nil
}

func (r *fakeLessonRepo) GetByID(ctx context.Context, id string) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.lessons[id]
	if !ok {
		return nil, entity.ErrLessonNotFound
	}
	return l, nil
}

func (r *fakeLessonRepo) List(ctx context.Context, q *filterexpr.Query, page repository.Pagination) ([]*entity.Lesson, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Lesson
	for _, l := range r.lessons {
		if q.MatchAll(func(f string) any { return repository.LessonField(l, f) }) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeLessonRepo) Delete(ctx context.Context, id string) error {
	return errors.New("not implemented")
}

func (r *fakeLessonRepo) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.lessons)
}

type fakeGrammarRepo struct{ topics []*entity.GrammarTopic }

func (r *fakeGrammarRepo) List(ctx context.Context) ([]*entity.GrammarTopic, error) {
	return r.topics, nil
}

func (r *fakeGrammarRepo) GetByID(ctx context.Context, id string) (*entity.GrammarTopic, error) {
	for _, t := range r.topics {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, entity.ErrTopicNotFound
}

// fakeGateway returns canned answers and records calls.
type fakeGateway struct {
	mu sync.Mutex

	speech    []byte
	speechErr error
	chatReply string
	chatErr   error
	feedback  string
	pronErr   error
	grammar   string
	grammErr  error
	lesson    *entity.Lesson
	lessonErr error

	spoken      []string
	chatHistory [][]entity.ChatMessage
	// chatGate, when set, blocks Chat until a value is received.
	chatGate chan struct{}
}

func (g *fakeGateway) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.spoken = append(g.spoken, text)
	return g.speech, g.speechErr
}

func (g *fakeGateway) Chat(ctx context.Context, history []entity.ChatMessage, message string) (string, error) {
	if g.chatGate != nil {
		<-g.chatGate
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.chatHistory = append(g.chatHistory, history)
	if g.chatErr != nil {
		return "", g.chatErr
	}
	if g.chatReply == "" {
		return "", nil
	}
	return g.chatReply + ": " + message, nil
}

func (g *fakeGateway) AnalyzePronunciation(ctx context.Context, word string, audio []byte, mime string) (string, error) {
	return g.feedback, g.pronErr
}

func (g *fakeGateway) ExplainGrammar(ctx context.Context, title string) (string, error) {
	return g.grammar, g.grammErr
}

func (g *fakeGateway) GenerateLesson(ctx context.Context, level entity.Level) (*entity.Lesson, error) {
	return g.lesson, g.lessonErr
}

func (g *fakeGateway) spokenTexts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.spoken...)
}

// fakeAudioCache is a map backed audio cache.
type fakeAudioCache struct {
	mu    sync.Mutex
	clips map[string][]byte
}

func newFakeAudioCache() *fakeAudioCache { return &fakeAudioCache{clips: map[string][]byte{}} }

func (c *fakeAudioCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.clips[key]
	return b, ok, nil
}

func (c *fakeAudioCache) Put(ctx context.Context, key string, audio []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clips[key] = audio
	return nil
}

func ptr(s string) *string { return &s }

func testLesson(id string) *entity.Lesson {
	return &entity.Lesson{
		ID:     id,
		Title:  entity.Bilingual{English: "Lesson " + id},
		Level:  entity.LevelA1,
		Origin: entity.OriginStatic,
		Vocabulary: []entity.VocabularyItem{
			{German: "Ja", English: "Yes"},
			{German: "Nein", English: "No"},
		},
		Quiz: []entity.QuizQuestion{
			{ID: "q1", Prompt: entity.Bilingual{English: "Yes?"}, Options: []string{"Ja", "Nein"}, CorrectAnswer: "Ja"},
			{ID: "q2", Prompt: entity.Bilingual{English: "No?"}, Options: []string{"Ja", "Nein"}, CorrectAnswer: "Nein"},
		},
		Dialogue: entity.Dialogue{
			StartNodeID: "start",
			Nodes: map[string]entity.DialogueNode{
				"start": {ID: "start", Text: entity.Translation{German: "Hallo!"}, Options: []entity.DialogueOption{
					{Text: entity.Translation{German: "A"}, NextNodeID: ptr("node2")},
					{Text: entity.Translation{German: "B"}, NextNodeID: ptr("node3")},
				}},
				"node2": {ID: "node2", Text: entity.Translation{German: "Gut!"}, Options: []entity.DialogueOption{
					{Text: entity.Translation{German: "C"}, NextNodeID: ptr("end")},
				}},
				"node3": {ID: "node3", Text: entity.Translation{German: "Schade."}, Options: []entity.DialogueOption{
					{Text: entity.Translation{German: "D"}},
				}},
				"end": {ID: "end", Text: entity.Translation{German: "Tschüss!"}},
			},
		},
	}
}
