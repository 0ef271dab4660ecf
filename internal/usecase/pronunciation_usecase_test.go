package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/eslsoft/lingoguru/internal/entity"
)

func TestPronunciationAnalyze(t *testing.T) {
	ctx := context.Background()

	uc := NewPronunciationUsecase(&fakeGateway{feedback: "Excellent"}, 8, quietLogger())
	if _, err := uc.Analyze(ctx, "Hallo", nil, "audio/webm"); !errors.Is(err, entity.ErrNoAudio) {
		t.Fatalf("expected ErrNoAudio, got %v", err)
	}
	if _, err := uc.Analyze(ctx, "Hallo", make([]byte, 9), "audio/webm"); !errors.Is(err, entity.ErrAudioTooLarge) {
		t.Fatalf("expected ErrAudioTooLarge, got %v", err)
	}
	if _, err := uc.Analyze(ctx, " ", []byte("x"), ""); !errors.Is(err, entity.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	got, err := uc.Analyze(ctx, "Hallo", []byte("x"), "")
	if err != nil || got.Feedback != "Excellent" || got.Fallback {
		t.Fatalf("Analyze() = %+v, %v", got, err)
	}

	uc = NewPronunciationUsecase(&fakeGateway{pronErr: errors.New("down")}, 0, quietLogger())
	got, _ = uc.Analyze(ctx, "Hallo", []byte("x"), "audio/webm")
	if got.Feedback != PronunciationFailed || !got.Fallback {
		t.Fatalf("expected failure fallback, got %+v", got)
	}

	uc = NewPronunciationUsecase(&fakeGateway{}, 0, quietLogger())
	got, _ = uc.Analyze(ctx, "Hallo", []byte("x"), "audio/webm")
	if got.Feedback != PronunciationEmpty || !got.Fallback {
		t.Fatalf("expected empty fallback, got %+v", got)
	}
}
