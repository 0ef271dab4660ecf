package mapping

import (
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/internal/repository"
	lingoguruv1 "github.com/eslsoft/lingoguru/pkg/api/lingoguru/v1"
)

const (
	defaultPageSize = 20
	maxPageSize     = 500
)

func ToPbTranslation(t entity.Translation) lingoguruv1.Translation {
	return lingoguruv1.Translation{Text: t.German, English: t.English, Kannada: t.Kannada}
}

func ToPbBilingual(b entity.Bilingual) lingoguruv1.Bilingual {
	return lingoguruv1.Bilingual{English: b.English, Kannada: b.Kannada}
}

// ToPbLesson converts a lesson without its vocabulary, quiz or dialogue.
func ToPbLesson(l *entity.Lesson) *lingoguruv1.Lesson {
	if l == nil {
		return nil
	}
	return &lingoguruv1.Lesson{
		ID:              l.ID,
		Title:           ToPbBilingual(l.Title),
		Level:           string(l.Level),
		Description:     ToPbBilingual(l.Description),
		Origin:          string(l.Origin),
		CreatedAt:       l.CreatedAt.UTC().Format(time.RFC3339),
		VocabularyCount: int32(len(l.Vocabulary)),
		QuizCount:       int32(len(l.Quiz)),
	}
}

// ToPbLessonDetail also fills the vocabulary cards.
func ToPbLessonDetail(l *entity.Lesson) *lingoguruv1.Lesson {
	out := ToPbLesson(l)
	if out != nil {
		out.Vocabulary = ToPbVocabulary(l.Vocabulary)
	}
	return out
}

func ToPbLessons(lessons []*entity.Lesson) []*lingoguruv1.Lesson {
	return lo.Map(lessons, func(l *entity.Lesson, _ int) *lingoguruv1.Lesson {
		return ToPbLesson(l)
	})
}

func ToPbVocabulary(items []entity.VocabularyItem) []lingoguruv1.VocabularyItem {
	return lo.Map(items, func(v entity.VocabularyItem, _ int) lingoguruv1.VocabularyItem {
		return lingoguruv1.VocabularyItem{
			German:        v.German,
			English:       v.English,
			Kannada:       v.Kannada,
			Pronunciation: v.Pronunciation,
		}
	})
}

func ToPbGrammarTopic(t *entity.GrammarTopic) *lingoguruv1.GrammarTopic {
	if t == nil {
		return nil
	}
	return &lingoguruv1.GrammarTopic{
		ID:      t.ID,
		Title:   ToPbBilingual(t.Title),
		Summary: ToPbBilingual(t.Summary),
		Icon:    t.Icon,
	}
}

func ToPbGrammarTopics(topics []*entity.GrammarTopic) []*lingoguruv1.GrammarTopic {
	return lo.Map(topics, func(t *entity.GrammarTopic, _ int) *lingoguruv1.GrammarTopic {
		return ToPbGrammarTopic(t)
	})
}

// FromPbPagination applies the default page size and caps large pages.
func FromPbPagination(p *lingoguruv1.PaginationRequest) repository.Pagination {
	if p == nil {
		return repository.Pagination{PageNo: 1, PageSize: defaultPageSize}
	}
	pageNo := p.PageNo
	if pageNo <= 0 {
		pageNo = 1
	}
	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return repository.Pagination{PageNo: pageNo, PageSize: pageSize}
}
