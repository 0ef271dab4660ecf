package connectrpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/eslsoft/lingoguru/internal/adapter/mapping"
	"github.com/eslsoft/lingoguru/internal/usecase"
	lingoguruv1 "github.com/eslsoft/lingoguru/pkg/api/lingoguru/v1"
)

type TutorServiceServer struct {
	practice      usecase.PracticeUsecase
	pronunciation usecase.PronunciationUsecase
}

func NewTutorServiceServer(practice usecase.PracticeUsecase, pronunciation usecase.PronunciationUsecase) *TutorServiceServer {
	return &TutorServiceServer{practice: practice, pronunciation: pronunciation}
}

func NewTutorServiceHandler(s *TutorServiceServer, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(lingoguruv1.TutorServiceStartChatProcedure, connect.NewUnaryHandler(lingoguruv1.TutorServiceStartChatProcedure, s.StartChat, opts...))
	mux.Handle(lingoguruv1.TutorServiceGetChatProcedure, connect.NewUnaryHandler(lingoguruv1.TutorServiceGetChatProcedure, s.GetChat, opts...))
	mux.Handle(lingoguruv1.TutorServiceSendMessageProcedure, connect.NewUnaryHandler(lingoguruv1.TutorServiceSendMessageProcedure, s.SendMessage, opts...))
	mux.Handle(lingoguruv1.TutorServiceAnalyzePronunciationProcedure, connect.NewUnaryHandler(lingoguruv1.TutorServiceAnalyzePronunciationProcedure, s.AnalyzePronunciation, opts...))
	return "/" + lingoguruv1.TutorServiceName + "/", mux
}

func chatResponse(v *usecase.TutorView, err error) (*connect.Response[lingoguruv1.ChatState], error) {
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbChatState(v)), nil
}

func (s *TutorServiceServer) StartChat(ctx context.Context, req *connect.Request[lingoguruv1.Empty]) (*connect.Response[lingoguruv1.ChatState], error) {
	return chatResponse(s.practice.StartTutor(ctx))
}

func (s *TutorServiceServer) GetChat(ctx context.Context, req *connect.Request[lingoguruv1.SessionRequest]) (*connect.Response[lingoguruv1.ChatState], error) {
	return chatResponse(s.practice.GetTutor(ctx, req.Msg.SessionID))
}

func (s *TutorServiceServer) SendMessage(ctx context.Context, req *connect.Request[lingoguruv1.SendMessageRequest]) (*connect.Response[lingoguruv1.ChatState], error) {
	return chatResponse(s.practice.SendTutorMessage(ctx, req.Msg.SessionID, req.Msg.Text))
}

func (s *TutorServiceServer) AnalyzePronunciation(ctx context.Context, req *connect.Request[lingoguruv1.AnalyzePronunciationRequest]) (*connect.Response[lingoguruv1.AnalyzePronunciationResponse], error) {
	msg := req.Msg
	result, err := s.pronunciation.Analyze(ctx, msg.Word, msg.Audio, msg.MimeType)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(&lingoguruv1.AnalyzePronunciationResponse{
		Word:     result.Word,
		Feedback: result.Feedback,
		Fallback: result.Fallback,
	}), nil
}
