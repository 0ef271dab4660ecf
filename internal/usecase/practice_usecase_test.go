package usecase

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/internal/usecase/practice"
	"github.com/eslsoft/lingoguru/pkg/shuffle"
)

func newPracticeForTest(gw *fakeGateway, lessons ...*entity.Lesson) (PracticeUsecase, *Narrator) {
	narrator := NewSpeechUsecase(gw, newFakeAudioCache(), "Kore", time.Second, quietLogger())
	uc := NewPracticeUsecase(newFakeLessonRepo(lessons...), narrator, gw, shuffle.NewSeeded(7), time.Hour, quietLogger())
	return uc, narrator
}

func germanTexts(entries []entity.TranscriptEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text.German
	}
	return out
}

func TestPracticeDialogue(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{speech: []byte("wav")}
	uc, narrator := newPracticeForTest(gw, testLesson("1"))
	defer narrator.Wait()

	view, err := uc.StartDialogue(ctx, "1")
	if err != nil {
		t.Fatalf("StartDialogue() err = %v", err)
	}
	if view.Current.ID != "start" || len(view.Transcript) != 1 {
		t.Fatalf("unexpected start view: %+v", view)
	}
	if view.Transcript[0].AudioKey != AudioKey("Kore", "Hallo!") {
		t.Fatalf("expected start node to be narrated")
	}

	view, err = uc.SelectOption(ctx, view.SessionID, 0)
	if err != nil || !view.Applied {
		t.Fatalf("SelectOption(0) = %+v, %v", view, err)
	}
	view, _ = uc.SelectOption(ctx, view.SessionID, 0)
	if !view.Terminal || view.Current.ID != "end" {
		t.Fatalf("expected terminal end node, got %q", view.Current.ID)
	}
	want := []string{"Hallo!", "A", "Gut!", "C", "Tschüss!"}
	if got := germanTexts(view.Transcript); !slices.Equal(got, want) {
		t.Fatalf("transcript = %v, want %v", got, want)
	}

	if _, err := uc.SelectOption(ctx, view.SessionID, 0); !errors.Is(err, entity.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption on terminal node, got %v", err)
	}

	view, _ = uc.RestartDialogue(ctx, view.SessionID)
	if view.Current.ID != "start" || len(view.Transcript) != 1 {
		t.Fatalf("restart did not reset transcript: %v", germanTexts(view.Transcript))
	}
}

func TestPracticeDialogue_DeadEndOptionIgnored(t *testing.T) {
	ctx := context.Background()
	uc, narrator := newPracticeForTest(&fakeGateway{}, testLesson("1"))
	defer narrator.Wait()

	view, _ := uc.StartDialogue(ctx, "1")
	view, _ = uc.SelectOption(ctx, view.SessionID, 1)
	if view.Current.ID != "node3" {
		t.Fatalf("expected node3, got %q", view.Current.ID)
	}
	before := len(view.Transcript)
	view, err := uc.SelectOption(ctx, view.SessionID, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if view.Applied || len(view.Transcript) != before || view.Current.ID != "node3" {
		t.Fatalf("dead-end option should be a no-op: %+v", view)
	}
}

func TestPracticeDialogue_NarrationFailureKeepsTranscript(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{speechErr: errors.New("tts down")}
	uc, narrator := newPracticeForTest(gw, testLesson("1"))

	view, _ := uc.StartDialogue(ctx, "1")
	view, _ = uc.SelectOption(ctx, view.SessionID, 0)
	narrator.Wait()

	got, err := uc.GetDialogue(ctx, view.SessionID)
	if err != nil {
		t.Fatalf("GetDialogue() err = %v", err)
	}
	if len(got.Transcript) != 3 || got.Current.ID != "node2" {
		t.Fatalf("transcript changed after narration failure: %v", germanTexts(got.Transcript))
	}
}

func TestPracticeQuiz(t *testing.T) {
	ctx := context.Background()
	uc, _ := newPracticeForTest(&fakeGateway{}, testLesson("1"))

	view, err := uc.StartQuiz(ctx, "1")
	if err != nil {
		t.Fatalf("StartQuiz() err = %v", err)
	}
	if view.State != practice.QuizInProgress || view.Total != 2 {
		t.Fatalf("unexpected quiz start: %+v", view.QuizSnapshot)
	}

	for view.State == practice.QuizInProgress {
		view, _ = uc.SelectAnswer(ctx, view.SessionID, view.Question.CorrectAnswer)
		if !view.Answered || !view.Correct {
			t.Fatalf("expected correct answer to be recorded: %+v", view.QuizSnapshot)
		}
		view, _ = uc.NextQuestion(ctx, view.SessionID)
	}
	if view.Score != 2 || view.Question != nil {
		t.Fatalf("expected full score and no question, got %+v", view.QuizSnapshot)
	}

	view, _ = uc.ResetQuiz(ctx, view.SessionID)
	if view.State != practice.QuizInProgress || view.Score != 0 || view.Index != 0 {
		t.Fatalf("reset did not restart quiz: %+v", view.QuizSnapshot)
	}
}

func TestPracticeSessions(t *testing.T) {
	ctx := context.Background()
	uc, _ := newPracticeForTest(&fakeGateway{}, testLesson("1"))

	if _, err := uc.GetQuiz(ctx, "nope"); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := uc.StartQuiz(ctx, "missing"); !errors.Is(err, entity.ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound, got %v", err)
	}

	quiz, _ := uc.StartQuiz(ctx, "1")
	if _, err := uc.GetDialogue(ctx, quiz.SessionID); !errors.Is(err, entity.ErrSessionKind) {
		t.Fatalf("expected ErrSessionKind, got %v", err)
	}
	if err := uc.CloseSession(ctx, quiz.SessionID); err != nil {
		t.Fatalf("CloseSession() err = %v", err)
	}
	if _, err := uc.GetQuiz(ctx, quiz.SessionID); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("expected closed session to be gone, got %v", err)
	}
	if err := uc.CloseSession(ctx, quiz.SessionID); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on second close, got %v", err)
	}
}

func TestPracticeTutor(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{chatReply: "Gut"}
	uc, _ := newPracticeForTest(gw)

	view, err := uc.StartTutor(ctx)
	if err != nil {
		t.Fatalf("StartTutor() err = %v", err)
	}
	if len(view.Messages) != 1 || view.Messages[0].Text != TutorGreeting || view.Messages[0].Role != entity.RoleAssistant {
		t.Fatalf("expected greeting, got %+v", view.Messages)
	}

	if _, err := uc.SendTutorMessage(ctx, view.SessionID, "  "); !errors.Is(err, entity.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}

	view, err = uc.SendTutorMessage(ctx, view.SessionID, "Hallo")
	if err != nil {
		t.Fatalf("SendTutorMessage() err = %v", err)
	}
	if view.Reply == nil || view.Reply.Text != "Gut: Hallo" || view.Fallback {
		t.Fatalf("unexpected reply: %+v", view.Reply)
	}
	if len(view.Messages) != 3 || view.Messages[1].Role != entity.RoleUser || view.Messages[2].Role != entity.RoleAssistant {
		t.Fatalf("unexpected transcript: %+v", view.Messages)
	}
	// history excludes the message being sent
	if h := gw.chatHistory[0]; len(h) != 1 || h[0].Text != TutorGreeting {
		t.Fatalf("unexpected history: %+v", h)
	}
}

func TestPracticeTutor_Fallbacks(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		gw   *fakeGateway
		want string
	}{
		{name: "error", gw: &fakeGateway{chatErr: errors.New("down")}, want: TutorUnavailable},
		{name: "empty", gw: &fakeGateway{}, want: TutorEmptyReply},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newPracticeForTest(tt.gw)
			view, _ := uc.StartTutor(ctx)
			view, err := uc.SendTutorMessage(ctx, view.SessionID, "Hallo")
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if !view.Fallback || view.Reply.Text != tt.want || len(view.Messages) != 3 {
				t.Fatalf("unexpected view: %+v", view)
			}
		})
	}
}

func TestPracticeTutor_ReadsDuringPendingReply(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{chatReply: "Ok", chatGate: make(chan struct{})}
	uc, _ := newPracticeForTest(gw)
	view, _ := uc.StartTutor(ctx)

	done := make(chan *TutorView)
	go func() {
		v, _ := uc.SendTutorMessage(ctx, view.SessionID, "Wie geht's?")
		done <- v
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		got, err := uc.GetTutor(ctx, view.SessionID)
		if err != nil {
			t.Fatalf("GetTutor() err = %v", err)
		}
		if len(got.Messages) == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("user message never appeared")
		}
		time.Sleep(5 * time.Millisecond)
	}

	close(gw.chatGate)
	final := <-done
	if len(final.Messages) != 3 || final.Messages[2].Text != "Ok: Wie geht's?" {
		t.Fatalf("unexpected final transcript: %+v", final.Messages)
	}
}
