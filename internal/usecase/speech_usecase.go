package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/internal/repository"
)

// SpeechUsecase turns German text into cached audio clips.
type SpeechUsecase interface {
	// Narrate starts synthesis in the background and returns the clip key at
	// once. Failures are logged and never reported to the caller.
	Narrate(text string) string
	// Speak synthesizes text within ctx. ready is false when synthesis failed.
	Speak(ctx context.Context, text string) (key string, ready bool)
	Audio(ctx context.Context, key string) ([]byte, error)
}

// AudioKey derives the cache key of a clip from the voice and the text.
func AudioKey(voice, text string) string {
	sum := sha256.Sum256([]byte(voice + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// NewSpeechUsecase builds the narrator. timeout bounds each background synthesis.
func NewSpeechUsecase(gateway AIGateway, cache repository.AudioCache, voice string, timeout time.Duration, log logrus.FieldLogger) *Narrator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Narrator{
		gateway:  gateway,
		cache:    cache,
		voice:    voice,
		timeout:  timeout,
		log:      log.WithField("usecase", "speech"),
		inflight: make(map[string]struct{}),
	}
}

// Narrator implements SpeechUsecase. Concurrent requests for the same clip
// share one synthesis.
type Narrator struct {
	gateway AIGateway
	cache   repository.AudioCache
	voice   string
	timeout time.Duration
	log     logrus.FieldLogger

	mu       sync.Mutex
	inflight map[string]struct{}
	wg       sync.WaitGroup
}

var _ SpeechUsecase = (*Narrator)(nil)

func (n *Narrator) Narrate(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	key := AudioKey(n.voice, text)
	if !n.claim(key) {
		return key
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer n.release(key)
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		n.synthesize(ctx, key, text)
	}()
	return key
}

func (n *Narrator) Speak(ctx context.Context, text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	key := AudioKey(n.voice, text)
	return key, n.synthesize(ctx, key, text)
}

func (n *Narrator) Audio(ctx context.Context, key string) ([]byte, error) {
	audio, ok, err := n.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, entity.ErrAudioNotFound
	}
	return audio, nil
}

// Wait blocks until background narrations finish.
func (n *Narrator) Wait() {
	n.wg.Wait()
}

func (n *Narrator) synthesize(ctx context.Context, key, text string) bool {
	log := n.log.WithField("audio_key", key)
	if _, ok, err := n.cache.Get(ctx, key); err == nil && ok {
		return true
	}

	audio, err := n.gateway.SynthesizeSpeech(ctx, text)
	if err != nil {
		log.WithError(err).Warn("speech synthesis failed")
		return false
	}
	if err := n.cache.Put(ctx, key, audio); err != nil {
		log.WithError(err).Warn("store synthesized speech")
		return false
	}
	log.WithField("bytes", len(audio)).Debug("speech cached")
	return true
}

func (n *Narrator) claim(key string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, busy := n.inflight[key]; busy {
		return false
	}
	n.inflight[key] = struct{}{}
	return true
}

func (n *Narrator) release(key string) {
	n.mu.Lock()
	delete(n.inflight, key)
	n.mu.Unlock()
}
