package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/internal/repository"
	"github.com/eslsoft/lingoguru/internal/usecase/practice"
	"github.com/eslsoft/lingoguru/pkg/shuffle"
)

// DialogueView is the state of a dialogue session after an interaction.
type DialogueView struct {
	SessionID  string
	LessonID   string
	Current    entity.DialogueNode
	Transcript []entity.TranscriptEntry
	Terminal   bool
	// Applied is false when the last selection was ignored.
	Applied bool
}

// QuizView is the state of a quiz session after an interaction.
type QuizView struct {
	SessionID string
	LessonID  string
	practice.QuizSnapshot
}

// TutorView is the tutor transcript. Reply is the message appended by the
// last send and Fallback marks it as a fixed message.
type TutorView struct {
	SessionID string
	Messages  []entity.ChatMessage
	Reply     *entity.ChatMessage
	Fallback  bool
}

// PracticeUsecase runs dialogue, quiz and tutor sessions.
type PracticeUsecase interface {
	StartDialogue(ctx context.Context, lessonID string) (*DialogueView, error)
	GetDialogue(ctx context.Context, sessionID string) (*DialogueView, error)
	SelectOption(ctx context.Context, sessionID string, index int) (*DialogueView, error)
	RestartDialogue(ctx context.Context, sessionID string) (*DialogueView, error)

	StartQuiz(ctx context.Context, lessonID string) (*QuizView, error)
	GetQuiz(ctx context.Context, sessionID string) (*QuizView, error)
	SelectAnswer(ctx context.Context, sessionID string, choice string) (*QuizView, error)
	NextQuestion(ctx context.Context, sessionID string) (*QuizView, error)
	ResetQuiz(ctx context.Context, sessionID string) (*QuizView, error)

	StartTutor(ctx context.Context) (*TutorView, error)
	GetTutor(ctx context.Context, sessionID string) (*TutorView, error)
	SendTutorMessage(ctx context.Context, sessionID string, text string) (*TutorView, error)

	CloseSession(ctx context.Context, sessionID string) error
	RunSweeper(ctx context.Context, interval time.Duration) error
}

// NewPracticeUsecase wires lessons, narration and the gateway into sessions
// that expire after ttl of inactivity.
func NewPracticeUsecase(lessons repository.LessonRepository, narrator practice.Narrator, gateway AIGateway, shuffler *shuffle.Shuffler, ttl time.Duration, log logrus.FieldLogger) PracticeUsecase {
	return &practiceUsecase{
		lessons:  lessons,
		narrator: narrator,
		gateway:  gateway,
		shuffler: shuffler,
		sessions: newSessionRegistry(ttl, time.Now),
		log:      log.WithField("usecase", "practice"),
	}
}

type practiceUsecase struct {
	lessons  repository.LessonRepository
	narrator practice.Narrator
	gateway  AIGateway
	shuffler *shuffle.Shuffler
	sessions *sessionRegistry
	log      logrus.FieldLogger
}

func (u *practiceUsecase) StartDialogue(ctx context.Context, lessonID string) (*DialogueView, error) {
	lesson, err := u.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if err := lesson.Dialogue.Validate(); err != nil {
		return nil, err
	}
	s := u.sessions.open(SessionDialogue, lesson.ID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialogue = practice.NewDialogueEngine(lesson.Dialogue, u.narrator)
	return dialogueView(s, true), nil
}

func (u *practiceUsecase) GetDialogue(ctx context.Context, sessionID string) (*DialogueView, error) {
	s, err := u.sessions.acquire(sessionID, SessionDialogue)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return dialogueView(s, true), nil
}

func (u *practiceUsecase) SelectOption(ctx context.Context, sessionID string, index int) (*DialogueView, error) {
	s, err := u.sessions.acquire(sessionID, SessionDialogue)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	applied, err := s.dialogue.SelectOptionAt(index)
	if err != nil {
		return nil, err
	}
	return dialogueView(s, applied), nil
}

func (u *practiceUsecase) RestartDialogue(ctx context.Context, sessionID string) (*DialogueView, error) {
	s, err := u.sessions.acquire(sessionID, SessionDialogue)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	s.dialogue.Restart()
	return dialogueView(s, true), nil
}

func dialogueView(s *session, applied bool) *DialogueView {
	return &DialogueView{
		SessionID:  s.id,
		LessonID:   s.lessonID,
		Current:    s.dialogue.Current(),
		Transcript: s.dialogue.Transcript(),
		Terminal:   s.dialogue.IsTerminal(),
		Applied:    applied,
	}
}

func (u *practiceUsecase) StartQuiz(ctx context.Context, lessonID string) (*QuizView, error) {
	lesson, err := u.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	s := u.sessions.open(SessionQuiz, lesson.ID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quiz = practice.NewQuizEngine(lesson.Quiz, u.shuffler)
	return quizView(s), nil
}

func (u *practiceUsecase) GetQuiz(ctx context.Context, sessionID string) (*QuizView, error) {
	return u.withQuiz(sessionID, func(*practice.QuizEngine) {})
}

func (u *practiceUsecase) SelectAnswer(ctx context.Context, sessionID string, choice string) (*QuizView, error) {
	return u.withQuiz(sessionID, func(q *practice.QuizEngine) { q.SelectAnswer(choice) })
}

func (u *practiceUsecase) NextQuestion(ctx context.Context, sessionID string) (*QuizView, error) {
	return u.withQuiz(sessionID, func(q *practice.QuizEngine) { q.Advance() })
}

func (u *practiceUsecase) ResetQuiz(ctx context.Context, sessionID string) (*QuizView, error) {
	return u.withQuiz(sessionID, func(q *practice.QuizEngine) { q.Reset() })
}

func (u *practiceUsecase) withQuiz(sessionID string, fn func(q *practice.QuizEngine)) (*QuizView, error) {
	s, err := u.sessions.acquire(sessionID, SessionQuiz)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	fn(s.quiz)
	return quizView(s), nil
}

func quizView(s *session) *QuizView {
	return &QuizView{SessionID: s.id, LessonID: s.lessonID, QuizSnapshot: s.quiz.Snapshot()}
}

func (u *practiceUsecase) StartTutor(ctx context.Context) (*TutorView, error) {
	s := u.sessions.open(SessionTutor, "")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tutor = []entity.ChatMessage{{Role: entity.RoleAssistant, Text: TutorGreeting}}
	return tutorView(s, nil, false), nil
}

func (u *practiceUsecase) GetTutor(ctx context.Context, sessionID string) (*TutorView, error) {
	s, err := u.sessions.acquire(sessionID, SessionTutor)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return tutorView(s, nil, false), nil
}

// SendTutorMessage appends the learner's message, asks the tutor and appends
// the reply. The gateway call runs unlocked, so overlapping sends on one
// session complete independently and append in arrival order.
func (u *practiceUsecase) SendTutorMessage(ctx context.Context, sessionID string, text string) (*TutorView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, entity.ErrEmptyMessage
	}

	s, err := u.sessions.acquire(sessionID, SessionTutor)
	if err != nil {
		return nil, err
	}
	history := append([]entity.ChatMessage(nil), s.tutor...)
	s.tutor = append(s.tutor, entity.ChatMessage{Role: entity.RoleUser, Text: text})
	s.mu.Unlock()

	reply, fallback := u.askTutor(ctx, sessionID, history, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tutor = append(s.tutor, reply)
	return tutorView(s, &reply, fallback), nil
}

func (u *practiceUsecase) askTutor(ctx context.Context, sessionID string, history []entity.ChatMessage, text string) (entity.ChatMessage, bool) {
	answer, err := u.gateway.Chat(ctx, history, text)
	switch {
	case err != nil:
		u.log.WithError(err).WithField("session_id", sessionID).Warn("tutor chat failed")
		return entity.ChatMessage{Role: entity.RoleAssistant, Text: TutorUnavailable}, true
	case strings.TrimSpace(answer) == "":
		return entity.ChatMessage{Role: entity.RoleAssistant, Text: TutorEmptyReply}, true
	default:
		return entity.ChatMessage{Role: entity.RoleAssistant, Text: answer}, false
	}
}

func tutorView(s *session, reply *entity.ChatMessage, fallback bool) *TutorView {
	return &TutorView{
		SessionID: s.id,
		Messages:  append([]entity.ChatMessage(nil), s.tutor...),
		Reply:     reply,
		Fallback:  fallback,
	}
}

func (u *practiceUsecase) CloseSession(ctx context.Context, sessionID string) error {
	if err := u.sessions.close(sessionID); err != nil {
		return fmt.Errorf("close %s: %w", sessionID, err)
	}
	return nil
}

func (u *practiceUsecase) RunSweeper(ctx context.Context, interval time.Duration) error {
	return u.sessions.run(ctx, interval, func(removed int) {
		u.log.WithFields(logrus.Fields{"removed": removed, "open": u.sessions.len()}).Info("expired practice sessions")
	})
}
