package connectrpc

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/internal/usecase"
)

// NewAudioHandler serves cached narration clips at GET /audio/{key}. A clip
// that is missing or still being synthesized is a 404.
func NewAudioHandler(speech usecase.SpeechUsecase, log logrus.FieldLogger) http.Handler {
	log = log.WithField("handler", "audio")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue("key")
		if key == "" {
			http.NotFound(w, r)
			return
		}
		audio, err := speech.Audio(r.Context(), key)
		switch {
		case errors.Is(err, entity.ErrAudioNotFound):
			http.NotFound(w, r)
			return
		case err != nil:
			log.WithError(err).WithField("audio_key", key).Error("read audio")
			http.Error(w, "audio unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "audio/wav")
		w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
		// keys are content hashes
		w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
		_, _ = w.Write(audio)
	})
}

// HealthHandler answers liveness probes.
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
}
