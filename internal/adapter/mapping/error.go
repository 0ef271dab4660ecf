package mapping

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/eslsoft/lingoguru/internal/entity"
)

// ToConnectError maps domain errors onto Connect codes.
func ToConnectError(err error) error {
	if err == nil {
		return nil
	}
	var ce *connect.Error
	if errors.As(err, &ce) {
		return ce
	}
	return connect.NewError(codeOf(err), err)
}

func codeOf(err error) connect.Code {
	switch {
	case errors.Is(err, entity.ErrInvalidLessonID),
		errors.Is(err, entity.ErrInvalidLevel),
		errors.Is(err, entity.ErrInvalidFilter),
		errors.Is(err, entity.ErrInvalidOption),
		errors.Is(err, entity.ErrEmptyMessage),
		errors.Is(err, entity.ErrNoAudio):
		return connect.CodeInvalidArgument
	case errors.Is(err, entity.ErrLessonNotFound),
		errors.Is(err, entity.ErrTopicNotFound),
		errors.Is(err, entity.ErrSessionNotFound),
		errors.Is(err, entity.ErrAudioNotFound):
		return connect.CodeNotFound
	case errors.Is(err, entity.ErrDuplicateLesson):
		return connect.CodeAlreadyExists
	case errors.Is(err, entity.ErrSessionKind),
		errors.Is(err, entity.ErrInvalidLesson),
		errors.Is(err, entity.ErrInvalidDialogue),
		errors.Is(err, entity.ErrInvalidQuiz):
		return connect.CodeFailedPrecondition
	case errors.Is(err, entity.ErrAudioTooLarge):
		return connect.CodeResourceExhausted
	case errors.Is(err, entity.ErrGatewayUnavailable), errors.Is(err, entity.ErrMalformedAIResponse):
		return connect.CodeUnavailable
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	default:
		return connect.CodeInternal
	}
}
