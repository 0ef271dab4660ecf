package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/internal/repository"
	"github.com/eslsoft/lingoguru/pkg/filterexpr"
	"github.com/eslsoft/lingoguru/pkg/shuffle"
)

// LessonUsecase serves the curriculum and installs AI generated lessons.
type LessonUsecase interface {
	ListLessons(ctx context.Context, query *repository.ListLessonQuery) ([]*entity.Lesson, int64, error)
	ShuffledLessons(ctx context.Context) ([]*entity.Lesson, error)
	GetLesson(ctx context.Context, id string) (*entity.Lesson, error)
	Vocabulary(ctx context.Context, id string) ([]entity.VocabularyItem, error)
	GenerateLesson(ctx context.Context, level string) (*entity.Lesson, error)
	SeedLessons(ctx context.Context, lessons []*entity.Lesson) (int, error)
}

// NewLessonUsecase wires the repository with default behaviour.
func NewLessonUsecase(repo repository.LessonRepository, gateway AIGateway, shuffler *shuffle.Shuffler, log logrus.FieldLogger) LessonUsecase {
	return &lessonUsecase{
		repo:     repo,
		gateway:  gateway,
		shuffler: shuffler,
		log:      log.WithField("usecase", "lesson"),
		clock:    time.Now,
		newID:    func() string { return aiLessonIDPrefix + uuid.NewString() },
	}
}

type lessonUsecase struct {
	repo     repository.LessonRepository
	gateway  AIGateway
	shuffler *shuffle.Shuffler
	log      logrus.FieldLogger
	clock    func() time.Time
	newID    func() string
}

func (u *lessonUsecase) ListLessons(ctx context.Context, query *repository.ListLessonQuery) ([]*entity.Lesson, int64, error) {
	if query == nil {
		query = &repository.ListLessonQuery{}
	}
	compiled, err := filterexpr.CompileMsg(&query.FilterOrder, repository.LessonQuerySchema)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", entity.ErrInvalidFilter, err)
	}
	return u.repo.List(ctx, compiled, query.Pagination)
}

func (u *lessonUsecase) ShuffledLessons(ctx context.Context) ([]*entity.Lesson, error) {
	lessons, _, err := u.repo.List(ctx, nil, repository.Pagination{})
	if err != nil {
		return nil, err
	}
	return shuffle.ShuffleWith(u.shuffler, lessons), nil
}

func (u *lessonUsecase) GetLesson(ctx context.Context, id string) (*entity.Lesson, error) {
	if id == "" {
		return nil, entity.ErrInvalidLessonID
	}
	return u.repo.GetByID(ctx, id)
}

func (u *lessonUsecase) Vocabulary(ctx context.Context, id string) ([]entity.VocabularyItem, error) {
	lesson, err := u.GetLesson(ctx, id)
	if err != nil {
		return nil, err
	}
	return shuffle.ShuffleWith(u.shuffler, lesson.Vocabulary), nil
}

// GenerateLesson installs a lesson only when the generated document passes
// validation; nothing is stored otherwise.
func (u *lessonUsecase) GenerateLesson(ctx context.Context, level string) (*entity.Lesson, error) {
	lvl, err := entity.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	lesson, err := u.gateway.GenerateLesson(ctx, lvl)
	if err != nil {
		u.log.WithError(err).WithField("level", lvl).Warn("lesson generation failed")
		if errors.Is(err, entity.ErrMalformedAIResponse) {
			return nil, fmt.Errorf("%w: %w", entity.ErrInvalidLesson, err)
		}
		return nil, fmt.Errorf("%w: %w", entity.ErrGatewayUnavailable, err)
	}
	if lesson == nil {
		return nil, fmt.Errorf("%w: empty lesson", entity.ErrInvalidLesson)
	}

	lesson.ID = u.newID()
	lesson.Origin = entity.OriginAI
	lesson.CreatedAt = time.Time{}
	lesson.Normalize(u.clock())
	if err := lesson.Validate(); err != nil {
		u.log.WithError(err).Warn("generated lesson rejected")
		return nil, err
	}

	created, err := u.repo.Create(ctx, lesson)
	if err != nil {
		return nil, err
	}
	u.log.WithFields(logrus.Fields{"lesson_id": created.ID, "level": created.Level}).Info("ai lesson installed")
	return created, nil
}

// SeedLessons validates and upserts lessons, stopping at the first invalid one.
func (u *lessonUsecase) SeedLessons(ctx context.Context, lessons []*entity.Lesson) (int, error) {
	now := u.clock()
	for i, l := range lessons {
		l.Normalize(now)
		if err := l.Validate(); err != nil {
			return i, err
		}
		if err := u.repo.Upsert(ctx, l); err != nil {
			return i, fmt.Errorf("seed lesson %s: %w", l.ID, err)
		}
	}
	return len(lessons), nil
}
