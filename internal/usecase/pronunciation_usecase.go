package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingoguru/internal/entity"
)

// PronunciationUsecase grades a recording of the learner saying a word.
type PronunciationUsecase interface {
	Analyze(ctx context.Context, targetWord string, audio []byte, mimeType string) (*PronunciationFeedback, error)
}

type PronunciationFeedback struct {
	Word     string
	Feedback string
	Fallback bool
}

func NewPronunciationUsecase(gateway AIGateway, maxUploadBytes int64, log logrus.FieldLogger) PronunciationUsecase {
	return &pronunciationUsecase{gateway: gateway, maxBytes: maxUploadBytes, log: log.WithField("usecase", "pronunciation")}
}

type pronunciationUsecase struct {
	gateway  AIGateway
	maxBytes int64
	log      logrus.FieldLogger
}

func (u *pronunciationUsecase) Analyze(ctx context.Context, targetWord string, audio []byte, mimeType string) (*PronunciationFeedback, error) {
	word := strings.TrimSpace(targetWord)
	if word == "" {
		return nil, fmt.Errorf("%w: target word is required", entity.ErrEmptyMessage)
	}
	if len(audio) == 0 {
		return nil, entity.ErrNoAudio
	}
	if u.maxBytes > 0 && int64(len(audio)) > u.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", entity.ErrAudioTooLarge, len(audio), u.maxBytes)
	}
	if mimeType = strings.TrimSpace(mimeType); mimeType == "" {
		mimeType = defaultAudioMimeType
	}

	text, err := u.gateway.AnalyzePronunciation(ctx, word, audio, mimeType)
	switch {
	case err != nil:
		u.log.WithError(err).WithField("word", word).Warn("pronunciation analysis failed")
		return &PronunciationFeedback{Word: word, Feedback: PronunciationFailed, Fallback: true}, nil
	case strings.TrimSpace(text) == "":
		return &PronunciationFeedback{Word: word, Feedback: PronunciationEmpty, Fallback: true}, nil
	default:
		return &PronunciationFeedback{Word: word, Feedback: text}, nil
	}
}
