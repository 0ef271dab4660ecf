package connectrpc

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/eslsoft/lingoguru/internal/adapter/mapping"
	"github.com/eslsoft/lingoguru/internal/usecase"
	lingoguruv1 "github.com/eslsoft/lingoguru/pkg/api/lingoguru/v1"
)

type PracticeServiceServer struct {
	practice usecase.PracticeUsecase
	speech   usecase.SpeechUsecase
}

func NewPracticeServiceServer(practice usecase.PracticeUsecase, speech usecase.SpeechUsecase) *PracticeServiceServer {
	return &PracticeServiceServer{practice: practice, speech: speech}
}

func NewPracticeServiceHandler(s *PracticeServiceServer, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(lingoguruv1.PracticeServiceStartDialogueProcedure, connect.NewUnaryHandler(lingoguruv1.PracticeServiceStartDialogueProcedure, s.StartDialogue, opts...))
	mux.Handle(lingoguruv1.PracticeServiceGetDialogueProcedure, connect.NewUnaryHandler(lingoguruv1.PracticeServiceGetDialogueProcedure, s.GetDialogue, opts...))
	mux.Handle(lingoguruv1.PracticeServiceSelectOptionProcedure, connect.NewUnaryHandler(lingoguruv1.PracticeServiceSelectOptionProcedure, s.SelectOption, opts...))
	mux.Handle(lingoguruv1.PracticeServiceRestartDialogueProcedure, connect.NewUnaryHandler(lingoguruv1.PracticeServiceRestartDialogueProcedure, s.RestartDialogue, opts...))
	mux.Handle(lingoguruv1.PracticeServiceStartQuizProcedure, connect.NewUnaryHandler(lingoguruv1.PracticeServiceStartQuizProcedure, s.StartQuiz, opts...))
	mux.Handle(lingoguruv1.PracticeServiceGetQuizProcedure, connect.NewUnaryHandler(lingoguruv1.PracticeServiceGetQuizProcedure, s.GetQuiz, opts...))
	mux.Handle(lingoguruv1.PracticeServiceSelectAnswerProcedure, connect.NewUnaryHandler(lingoguruv1.PracticeServiceSelectAnswerProcedure, s.SelectAnswer, opts...))
	mux.Handle(lingoguruv1.PracticeServiceNextQuestionProcedure, connect.NewUnaryHandler(lingoguruv1.PracticeServiceNextQuestionProcedure, s.NextQuestion, opts...))
	mux.Handle(lingoguruv1.PracticeServiceResetQuizProcedure, connect.NewUnaryHandler(lingoguruv1.PracticeServiceResetQuizProcedure, s.ResetQuiz, opts...))
	mux.Handle(lingoguruv1.PracticeServiceCloseSessionProcedure, connect.NewUnaryHandler(lingoguruv1.PracticeServiceCloseSessionProcedure, s.CloseSession, opts...))
	mux.Handle(lingoguruv1.PracticeServiceSpeakProcedure, connect.NewUnaryHandler(lingoguruv1.PracticeServiceSpeakProcedure, s.Speak, opts...))
	return "/" + lingoguruv1.PracticeServiceName + "/", mux
}

func dialogueResponse(v *usecase.DialogueView, err error) (*connect.Response[lingoguruv1.DialogueState], error) {
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbDialogueState(v)), nil
}

func quizResponse(v *usecase.QuizView, err error) (*connect.Response[lingoguruv1.QuizState], error) {
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbQuizState(v)), nil
}

func (s *PracticeServiceServer) StartDialogue(ctx context.Context, req *connect.Request[lingoguruv1.StartSessionRequest]) (*connect.Response[lingoguruv1.DialogueState], error) {
	return dialogueResponse(s.practice.StartDialogue(ctx, strings.TrimSpace(req.Msg.LessonID)))
}

func (s *PracticeServiceServer) GetDialogue(ctx context.Context, req *connect.Request[lingoguruv1.SessionRequest]) (*connect.Response[lingoguruv1.DialogueState], error) {
	return dialogueResponse(s.practice.GetDialogue(ctx, req.Msg.SessionID))
}

func (s *PracticeServiceServer) SelectOption(ctx context.Context, req *connect.Request[lingoguruv1.SelectOptionRequest]) (*connect.Response[lingoguruv1.DialogueState], error) {
	return dialogueResponse(s.practice.SelectOption(ctx, req.Msg.SessionID, int(req.Msg.OptionIndex)))
}

func (s *PracticeServiceServer) RestartDialogue(ctx context.Context, req *connect.Request[lingoguruv1.SessionRequest]) (*connect.Response[lingoguruv1.DialogueState], error) {
	return dialogueResponse(s.practice.RestartDialogue(ctx, req.Msg.SessionID))
}

func (s *PracticeServiceServer) StartQuiz(ctx context.Context, req *connect.Request[lingoguruv1.StartSessionRequest]) (*connect.Response[lingoguruv1.QuizState], error) {
	return quizResponse(s.practice.StartQuiz(ctx, strings.TrimSpace(req.Msg.LessonID)))
}

func (s *PracticeServiceServer) GetQuiz(ctx context.Context, req *connect.Request[lingoguruv1.SessionRequest]) (*connect.Response[lingoguruv1.QuizState], error) {
	return quizResponse(s.practice.GetQuiz(ctx, req.Msg.SessionID))
}

func (s *PracticeServiceServer) SelectAnswer(ctx context.Context, req *connect.Request[lingoguruv1.SelectAnswerRequest]) (*connect.Response[lingoguruv1.QuizState], error) {
	return quizResponse(s.practice.SelectAnswer(ctx, req.Msg.SessionID, req.Msg.Answer))
}

func (s *PracticeServiceServer) NextQuestion(ctx context.Context, req *connect.Request[lingoguruv1.SessionRequest]) (*connect.Response[lingoguruv1.QuizState], error) {
	return quizResponse(s.practice.NextQuestion(ctx, req.Msg.SessionID))
}

func (s *PracticeServiceServer) ResetQuiz(ctx context.Context, req *connect.Request[lingoguruv1.SessionRequest]) (*connect.Response[lingoguruv1.QuizState], error) {
	return quizResponse(s.practice.ResetQuiz(ctx, req.Msg.SessionID))
}

func (s *PracticeServiceServer) CloseSession(ctx context.Context, req *connect.Request[lingoguruv1.SessionRequest]) (*connect.Response[lingoguruv1.Empty], error) {
	if err := s.practice.CloseSession(ctx, req.Msg.SessionID); err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(&lingoguruv1.Empty{}), nil
}

// Speak synthesizes text on demand and reports whether the clip is ready.
func (s *PracticeServiceServer) Speak(ctx context.Context, req *connect.Request[lingoguruv1.SpeakRequest]) (*connect.Response[lingoguruv1.SpeakResponse], error) {
	if strings.TrimSpace(req.Msg.Text) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("text required"))
	}
	key, ready := s.speech.Speak(ctx, req.Msg.Text)
	return connect.NewResponse(&lingoguruv1.SpeakResponse{AudioURL: mapping.AudioURL(key), Ready: ready}), nil
}
