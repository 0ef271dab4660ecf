package connectrpc

import (
	"context"
	"math"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/eslsoft/lingoguru/internal/adapter/mapping"
	"github.com/eslsoft/lingoguru/internal/repository"
	"github.com/eslsoft/lingoguru/internal/usecase"
	lingoguruv1 "github.com/eslsoft/lingoguru/pkg/api/lingoguru/v1"
)

type ContentServiceServer struct {
	lessons usecase.LessonUsecase
	grammar usecase.GrammarUsecase
}

func NewContentServiceServer(lessons usecase.LessonUsecase, grammar usecase.GrammarUsecase) *ContentServiceServer {
	return &ContentServiceServer{lessons: lessons, grammar: grammar}
}

// NewContentServiceHandler builds the HTTP handler serving every
// ContentService procedure and returns the path it is mounted on.
func NewContentServiceHandler(s *ContentServiceServer, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(lingoguruv1.ContentServiceListLessonsProcedure, connect.NewUnaryHandler(lingoguruv1.ContentServiceListLessonsProcedure, s.ListLessons, opts...))
	mux.Handle(lingoguruv1.ContentServiceShuffleLessonsProcedure, connect.NewUnaryHandler(lingoguruv1.ContentServiceShuffleLessonsProcedure, s.ShuffleLessons, opts...))
	mux.Handle(lingoguruv1.ContentServiceGetLessonProcedure, connect.NewUnaryHandler(lingoguruv1.ContentServiceGetLessonProcedure, s.GetLesson, opts...))
	mux.Handle(lingoguruv1.ContentServiceGetVocabularyProcedure, connect.NewUnaryHandler(lingoguruv1.ContentServiceGetVocabularyProcedure, s.GetVocabulary, opts...))
	mux.Handle(lingoguruv1.ContentServiceGenerateLessonProcedure, connect.NewUnaryHandler(lingoguruv1.ContentServiceGenerateLessonProcedure, s.GenerateLesson, opts...))
	mux.Handle(lingoguruv1.ContentServiceListGrammarTopicsProcedure, connect.NewUnaryHandler(lingoguruv1.ContentServiceListGrammarTopicsProcedure, s.ListGrammarTopics, opts...))
	mux.Handle(lingoguruv1.ContentServiceExplainGrammarProcedure, connect.NewUnaryHandler(lingoguruv1.ContentServiceExplainGrammarProcedure, s.ExplainGrammar, opts...))
	return "/" + lingoguruv1.ContentServiceName + "/", mux
}

func (s *ContentServiceServer) ListLessons(ctx context.Context, req *connect.Request[lingoguruv1.ListLessonsRequest]) (*connect.Response[lingoguruv1.ListLessonsResponse], error) {
	msg := req.Msg
	query := &repository.ListLessonQuery{
		Pagination: mapping.FromPbPagination(msg.Pagination),
		FilterOrder: repository.FilterOrder{
			Filter:  msg.Filter,
			OrderBy: msg.OrderBy,
		},
	}
	items, total, err := s.lessons.ListLessons(ctx, query)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	if total > math.MaxInt32 {
		total = math.MaxInt32
	}

	return connect.NewResponse(&lingoguruv1.ListLessonsResponse{
		Lessons: mapping.ToPbLessons(items),
		Pagination: &lingoguruv1.PaginationResponse{
			Total:    int32(total),
			PageNo:   query.PageNo,
			PageSize: query.PageSize,
		},
	}), nil
}

// ShuffleLessons returns the whole curriculum in a fresh random order.
func (s *ContentServiceServer) ShuffleLessons(ctx context.Context, req *connect.Request[lingoguruv1.Empty]) (*connect.Response[lingoguruv1.ShuffleLessonsResponse], error) {
	items, err := s.lessons.ShuffledLessons(ctx)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(&lingoguruv1.ShuffleLessonsResponse{Lessons: mapping.ToPbLessons(items)}), nil
}

func (s *ContentServiceServer) GetLesson(ctx context.Context, req *connect.Request[lingoguruv1.IDRequest]) (*connect.Response[lingoguruv1.Lesson], error) {
	lesson, err := s.lessons.GetLesson(ctx, strings.TrimSpace(req.Msg.ID))
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbLessonDetail(lesson)), nil
}

func (s *ContentServiceServer) GetVocabulary(ctx context.Context, req *connect.Request[lingoguruv1.IDRequest]) (*connect.Response[lingoguruv1.GetVocabularyResponse], error) {
	id := strings.TrimSpace(req.Msg.ID)
	items, err := s.lessons.Vocabulary(ctx, id)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(&lingoguruv1.GetVocabularyResponse{
		LessonID: id,
		Items:    mapping.ToPbVocabulary(items),
	}), nil
}

func (s *ContentServiceServer) GenerateLesson(ctx context.Context, req *connect.Request[lingoguruv1.GenerateLessonRequest]) (*connect.Response[lingoguruv1.Lesson], error) {
	lesson, err := s.lessons.GenerateLesson(ctx, req.Msg.Level)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbLessonDetail(lesson)), nil
}

func (s *ContentServiceServer) ListGrammarTopics(ctx context.Context, req *connect.Request[lingoguruv1.Empty]) (*connect.Response[lingoguruv1.ListGrammarTopicsResponse], error) {
	topics, err := s.grammar.ListTopics(ctx)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(&lingoguruv1.ListGrammarTopicsResponse{Topics: mapping.ToPbGrammarTopics(topics)}), nil
}

func (s *ContentServiceServer) ExplainGrammar(ctx context.Context, req *connect.Request[lingoguruv1.IDRequest]) (*connect.Response[lingoguruv1.ExplainGrammarResponse], error) {
	explanation, err := s.grammar.Explain(ctx, strings.TrimSpace(req.Msg.ID))
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(&lingoguruv1.ExplainGrammarResponse{
		Topic:    mapping.ToPbGrammarTopic(explanation.Topic),
		Markdown: explanation.Markdown,
		Fallback: explanation.Fallback,
	}), nil
}
