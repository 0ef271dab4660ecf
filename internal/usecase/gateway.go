package usecase

import (
	"context"

	"github.com/eslsoft/lingoguru/internal/entity"
)

// AIGateway is the generative AI service behind speech, tutoring,
// pronunciation feedback and lesson generation.
type AIGateway interface {
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
	Chat(ctx context.Context, history []entity.ChatMessage, message string) (string, error)
	AnalyzePronunciation(ctx context.Context, targetWord string, audio []byte, mimeType string) (string, error)
	ExplainGrammar(ctx context.Context, topicTitle string) (string, error)
	GenerateLesson(ctx context.Context, level entity.Level) (*entity.Lesson, error)
}

// Fixed messages shown to the learner when the gateway fails or answers with
// nothing.
const (
	TutorGreeting        = "Hallo! I am your German Guru. How can I help you today? ನಿಮಗೆ ಇಂದು ನಾನು ಹೇಗೆ ಸಹಾಯ ಮಾಡಬಹುದು?"
	TutorEmptyReply      = "I'm sorry, I couldn't process that."
	TutorUnavailable     = "Error connecting to Guru. Please try again."
	PronunciationEmpty   = "Could not analyze. Try again."
	PronunciationFailed  = "Error connecting to Guru for analysis."
	GrammarEmpty         = "Could not fetch explanation."
	GrammarUnavailable   = "Error loading grammar rules. Please try again."
	aiLessonIDPrefix     = "ai-lesson-"
	defaultAudioMimeType = "audio/webm"
)
