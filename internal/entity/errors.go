package entity

import "errors"

// Domain errors for lessons, practice sessions and the AI gateway boundary.
var (
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrInvalidLessonID     = errors.New("invalid lesson ID")
	ErrInvalidLesson       = errors.New("invalid lesson")
	ErrDuplicateLesson     = errors.New("lesson already exists")
	ErrInvalidLevel        = errors.New("invalid lesson level")
	ErrInvalidDialogue     = errors.New("invalid dialogue")
	ErrInvalidQuiz         = errors.New("invalid quiz")
	ErrTopicNotFound       = errors.New("grammar topic not found")
	ErrSessionNotFound     = errors.New("practice session not found")
	ErrSessionKind         = errors.New("practice session has a different kind")
	ErrInvalidOption       = errors.New("invalid dialogue option")
	ErrInvalidFilter       = errors.New("invalid filter")
	ErrEmptyMessage        = errors.New("message must not be empty")
	ErrNoAudio             = errors.New("no audio recorded")
	ErrAudioTooLarge       = errors.New("audio recording too large")
	ErrAudioNotFound       = errors.New("audio not found")
	ErrGatewayUnavailable  = errors.New("ai gateway unavailable")
	ErrMalformedAIResponse = errors.New("malformed ai response")
)
