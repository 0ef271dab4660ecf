package usecase

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/internal/repository"
	"github.com/eslsoft/lingoguru/pkg/shuffle"
)

// GrammarUsecase lists grammar topics and explains them on demand.
type GrammarUsecase interface {
	ListTopics(ctx context.Context) ([]*entity.GrammarTopic, error)
	Explain(ctx context.Context, topicID string) (*GrammarExplanation, error)
}

// GrammarExplanation is the tutor's write-up of a topic. Fallback is set when
// Markdown holds a fixed message instead of a generated explanation.
type GrammarExplanation struct {
	Topic    *entity.GrammarTopic
	Markdown string
	Fallback bool
}

func NewGrammarUsecase(repo repository.GrammarRepository, gateway AIGateway, shuffler *shuffle.Shuffler, log logrus.FieldLogger) GrammarUsecase {
	return &grammarUsecase{repo: repo, gateway: gateway, shuffler: shuffler, log: log.WithField("usecase", "grammar")}
}

type grammarUsecase struct {
	repo     repository.GrammarRepository
	gateway  AIGateway
	shuffler *shuffle.Shuffler
	log      logrus.FieldLogger
}

func (u *grammarUsecase) ListTopics(ctx context.Context) ([]*entity.GrammarTopic, error) {
	topics, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return shuffle.ShuffleWith(u.shuffler, topics), nil
}

func (u *grammarUsecase) Explain(ctx context.Context, topicID string) (*GrammarExplanation, error) {
	topic, err := u.repo.GetByID(ctx, topicID)
	if err != nil {
		return nil, err
	}

	text, err := u.gateway.ExplainGrammar(ctx, topic.Title.English)
	switch {
	case err != nil:
		u.log.WithError(err).WithField("topic_id", topic.ID).Warn("grammar explanation failed")
		return &GrammarExplanation{Topic: topic, Markdown: GrammarUnavailable, Fallback: true}, nil
	case strings.TrimSpace(text) == "":
		return &GrammarExplanation{Topic: topic, Markdown: GrammarEmpty, Fallback: true}, nil
	default:
		return &GrammarExplanation{Topic: topic, Markdown: text}, nil
	}
}
