package connectrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingoguru/internal/adapter/audiocache"
	adapterrepo "github.com/eslsoft/lingoguru/internal/adapter/repository"
	"github.com/eslsoft/lingoguru/internal/content"
	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/internal/usecase"
	lingoguruv1 "github.com/eslsoft/lingoguru/pkg/api/lingoguru/v1"
	"github.com/eslsoft/lingoguru/pkg/shuffle"
)

type stubGateway struct{}

func (stubGateway) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	return []byte("RIFF" + text), nil
}

func (stubGateway) Chat(ctx context.Context, history []entity.ChatMessage, message string) (string, error) {
	return "Sehr gut!", nil
}

func (stubGateway) AnalyzePronunciation(ctx context.Context, word string, audio []byte, mime string) (string, error) {
	return "Clear " + word, nil
}

func (stubGateway) ExplainGrammar(ctx context.Context, title string) (string, error) {
	return "# " + title, nil
}

func (stubGateway) GenerateLesson(ctx context.Context, level entity.Level) (*entity.Lesson, error) {
	return nil, entity.ErrGatewayUnavailable
}

type testEnv struct {
	server   *httptest.Server
	narrator *usecase.Narrator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	ctx := context.Background()
	shuffler := shuffle.NewSeeded(3)
	gw := stubGateway{}

	lessons := adapterrepo.NewMemoryLessonRepository()
	lessonUC := usecase.NewLessonUsecase(lessons, gw, shuffler, log)
	if _, err := lessonUC.SeedLessons(ctx, content.Lessons()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	grammarUC := usecase.NewGrammarUsecase(adapterrepo.NewMemoryGrammarRepository(content.GrammarTopics()), gw, shuffler, log)
	narrator := usecase.NewSpeechUsecase(gw, audiocache.NewMemory(16, time.Hour), "Kore", time.Second, log)
	practiceUC := usecase.NewPracticeUsecase(lessons, narrator, gw, shuffler, time.Hour, log)
	pronunciationUC := usecase.NewPronunciationUsecase(gw, 1024, log)

	opts := WithJSONCodec()
	mux := http.NewServeMux()
	mux.Handle(NewContentServiceHandler(NewContentServiceServer(lessonUC, grammarUC), opts))
	mux.Handle(NewPracticeServiceHandler(NewPracticeServiceServer(practiceUC, narrator), opts))
	mux.Handle(NewTutorServiceHandler(NewTutorServiceServer(practiceUC, pronunciationUC), opts))
	mux.Handle("GET /audio/{key}", NewAudioHandler(narrator, log))

	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		srv.Close()
		narrator.Wait()
	})
	return &testEnv{server: srv, narrator: narrator}
}

// call posts a Connect unary JSON request and decodes the response into out.
func (e *testEnv) call(t *testing.T, procedure string, in, out any) int {
	t.Helper()
	body, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(e.server.URL+procedure, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", procedure, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK && out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", procedure, err)
		}
	}
	return resp.StatusCode
}

func TestContentService(t *testing.T) {
	env := newTestEnv(t)

	var list lingoguruv1.ListLessonsResponse
	status := env.call(t, lingoguruv1.ContentServiceListLessonsProcedure, &lingoguruv1.ListLessonsRequest{
		Filter:  "level == 'A1'",
		OrderBy: "id",
	}, &list)
	if status != http.StatusOK {
		t.Fatalf("ListLessons status = %d", status)
	}
	if list.Pagination.Total != 3 || len(list.Lessons) != 3 || list.Lessons[0].ID != "1" {
		t.Fatalf("unexpected lessons: %+v", list)
	}

	if status := env.call(t, lingoguruv1.ContentServiceListLessonsProcedure, &lingoguruv1.ListLessonsRequest{Filter: "level ="}, nil); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad filter, got %d", status)
	}

	var lesson lingoguruv1.Lesson
	if status := env.call(t, lingoguruv1.ContentServiceGetLessonProcedure, &lingoguruv1.IDRequest{ID: "2"}, &lesson); status != http.StatusOK {
		t.Fatalf("GetLesson status = %d", status)
	}
	if len(lesson.Vocabulary) == 0 || lesson.Origin != "static" {
		t.Fatalf("unexpected lesson: %+v", lesson)
	}

	if status := env.call(t, lingoguruv1.ContentServiceGetLessonProcedure, &lingoguruv1.IDRequest{ID: "404"}, nil); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}

	if status := env.call(t, lingoguruv1.ContentServiceGenerateLessonProcedure, &lingoguruv1.GenerateLessonRequest{Level: "A2"}, nil); status != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when generation fails, got %d", status)
	}

	var explained lingoguruv1.ExplainGrammarResponse
	if status := env.call(t, lingoguruv1.ContentServiceExplainGrammarProcedure, &lingoguruv1.IDRequest{ID: "g1"}, &explained); status != http.StatusOK {
		t.Fatalf("ExplainGrammar status = %d", status)
	}
	if explained.Fallback || explained.Topic == nil || explained.Markdown == "" {
		t.Fatalf("unexpected explanation: %+v", explained)
	}
}

func TestPracticeService_DialogueAndAudio(t *testing.T) {
	env := newTestEnv(t)

	var state lingoguruv1.DialogueState
	if status := env.call(t, lingoguruv1.PracticeServiceStartDialogueProcedure, &lingoguruv1.StartSessionRequest{LessonID: "1"}, &state); status != http.StatusOK {
		t.Fatalf("StartDialogue status = %d", status)
	}
	if state.SessionID == "" || len(state.Transcript) != 1 || state.Transcript[0].AudioURL == "" {
		t.Fatalf("unexpected start state: %+v", state)
	}

	env.narrator.Wait()
	resp, err := http.Get(env.server.URL + state.Transcript[0].AudioURL)
	if err != nil {
		t.Fatalf("get audio: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "audio/wav" {
		t.Fatalf("audio status = %d type = %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}

	missing, err := http.Get(env.server.URL + "/audio/unknown")
	if err != nil {
		t.Fatalf("get audio: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown clip, got %d", missing.StatusCode)
	}

	var next lingoguruv1.DialogueState
	env.call(t, lingoguruv1.PracticeServiceSelectOptionProcedure, &lingoguruv1.SelectOptionRequest{SessionID: state.SessionID, OptionIndex: 0}, &next)
	if !next.Applied || len(next.Transcript) != 3 {
		t.Fatalf("unexpected state after select: %+v", next)
	}

	if status := env.call(t, lingoguruv1.PracticeServiceSelectOptionProcedure, &lingoguruv1.SelectOptionRequest{SessionID: state.SessionID, OptionIndex: 99}, nil); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad option, got %d", status)
	}
	if status := env.call(t, lingoguruv1.PracticeServiceGetQuizProcedure, &lingoguruv1.SessionRequest{SessionID: state.SessionID}, nil); status != http.StatusBadRequest {
		t.Fatalf("expected failed precondition for wrong session kind, got %d", status)
	}
}

func TestPracticeService_QuizHidesAnswer(t *testing.T) {
	env := newTestEnv(t)

	var quiz lingoguruv1.QuizState
	env.call(t, lingoguruv1.PracticeServiceStartQuizProcedure, &lingoguruv1.StartSessionRequest{LessonID: "1"}, &quiz)
	if quiz.Question == nil || quiz.Question.CorrectAnswer != "" || quiz.Question.Explanation != nil {
		t.Fatalf("answer exposed before answering: %+v", quiz.Question)
	}

	var answered lingoguruv1.QuizState
	env.call(t, lingoguruv1.PracticeServiceSelectAnswerProcedure, &lingoguruv1.SelectAnswerRequest{
		SessionID: quiz.SessionID,
		Answer:    quiz.Question.Options[0],
	}, &answered)
	if !answered.Question.Answered || answered.Question.CorrectAnswer == "" {
		t.Fatalf("answer missing after answering: %+v", answered.Question)
	}
	if answered.Question.Correct != (answered.Question.Selected == answered.Question.CorrectAnswer) {
		t.Fatalf("inconsistent correctness: %+v", answered.Question)
	}

	if status := env.call(t, lingoguruv1.PracticeServiceCloseSessionProcedure, &lingoguruv1.SessionRequest{SessionID: quiz.SessionID}, nil); status != http.StatusOK {
		t.Fatalf("CloseSession status = %d", status)
	}
	if status := env.call(t, lingoguruv1.PracticeServiceGetQuizProcedure, &lingoguruv1.SessionRequest{SessionID: quiz.SessionID}, nil); status != http.StatusNotFound {
		t.Fatalf("expected 404 after close, got %d", status)
	}
}

func TestTutorService(t *testing.T) {
	env := newTestEnv(t)

	var chat lingoguruv1.ChatState
	env.call(t, lingoguruv1.TutorServiceStartChatProcedure, &lingoguruv1.Empty{}, &chat)
	if len(chat.Messages) != 1 || chat.Messages[0].Role != "assistant" {
		t.Fatalf("unexpected greeting: %+v", chat)
	}

	var sent lingoguruv1.ChatState
	env.call(t, lingoguruv1.TutorServiceSendMessageProcedure, &lingoguruv1.SendMessageRequest{SessionID: chat.SessionID, Text: "Hallo"}, &sent)
	if sent.Reply == nil || sent.Reply.Text != "Sehr gut!" || len(sent.Messages) != 3 {
		t.Fatalf("unexpected chat state: %+v", sent)
	}

	var feedback lingoguruv1.AnalyzePronunciationResponse
	env.call(t, lingoguruv1.TutorServiceAnalyzePronunciationProcedure, &lingoguruv1.AnalyzePronunciationRequest{
		Word:  "Danke",
		Audio: []byte("webm"),
	}, &feedback)
	if feedback.Feedback != "Clear Danke" {
		t.Fatalf("unexpected feedback: %+v", feedback)
	}

	if status := env.call(t, lingoguruv1.TutorServiceAnalyzePronunciationProcedure, &lingoguruv1.AnalyzePronunciationRequest{Word: "Danke"}, nil); status != http.StatusBadRequest {
		t.Fatalf("expected 400 without audio, got %d", status)
	}
}
