package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eslsoft/lingoguru/internal/entity"
)

func TestNarrator_CachesInBackground(t *testing.T) {
	gw := &fakeGateway{speech: []byte("RIFF")}
	cache := newFakeAudioCache()
	n := NewSpeechUsecase(gw, cache, "Kore", time.Second, quietLogger())

	key := n.Narrate(" Hallo ")
	n.Wait()

	if key != AudioKey("Kore", "Hallo") {
		t.Fatalf("unexpected key %q", key)
	}
	audio, err := n.Audio(context.Background(), key)
	if err != nil || string(audio) != "RIFF" {
		t.Fatalf("Audio() = %q, %v", audio, err)
	}

	// cached clips are not synthesized again
	n.Narrate("Hallo")
	n.Wait()
	if got := gw.spokenTexts(); len(got) != 1 {
		t.Fatalf("expected one synthesis, got %v", got)
	}
}

func TestNarrator_FailureIsSwallowed(t *testing.T) {
	gw := &fakeGateway{speechErr: errors.New("tts down")}
	n := NewSpeechUsecase(gw, newFakeAudioCache(), "Kore", time.Second, quietLogger())

	key := n.Narrate("Hallo")
	n.Wait()
	if key == "" {
		t.Fatalf("expected key even when synthesis fails")
	}
	if _, err := n.Audio(context.Background(), key); !errors.Is(err, entity.ErrAudioNotFound) {
		t.Fatalf("expected ErrAudioNotFound, got %v", err)
	}
	if _, ready := n.Speak(context.Background(), "Hallo"); ready {
		t.Fatalf("Speak should report not ready on failure")
	}
}

func TestNarrator_EmptyText(t *testing.T) {
	gw := &fakeGateway{}
	n := NewSpeechUsecase(gw, newFakeAudioCache(), "Kore", time.Second, quietLogger())
	if key := n.Narrate("   "); key != "" {
		t.Fatalf("expected no key for empty text")
	}
	n.Wait()
	if len(gw.spokenTexts()) != 0 {
		t.Fatalf("empty text should not be synthesized")
	}
}

func TestSpeak_Synchronous(t *testing.T) {
	gw := &fakeGateway{speech: []byte("wav")}
	n := NewSpeechUsecase(gw, newFakeAudioCache(), "Kore", time.Second, quietLogger())
	key, ready := n.Speak(context.Background(), "Danke")
	if !ready {
		t.Fatalf("expected clip to be ready")
	}
	if _, err := n.Audio(context.Background(), key); err != nil {
		t.Fatalf("clip not cached: %v", err)
	}
}
