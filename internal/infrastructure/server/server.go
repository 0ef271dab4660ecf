package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"connectrpc.com/connect"
	connectcors "connectrpc.com/cors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/eslsoft/lingoguru/internal/adapter/connectrpc"
	"github.com/eslsoft/lingoguru/internal/adapter/mapping"
	"github.com/eslsoft/lingoguru/internal/infrastructure/config"
	"github.com/eslsoft/lingoguru/internal/usecase"
)

// jsonOverhead allows for base64 expansion of uploaded audio.
const jsonOverhead = 64 << 10

// Server represents the application server
type Server struct {
	config     *config.Config
	httpServer *http.Server
	logger     *logrus.Logger
}

// NewServer mounts the Connect services, audio and health routes behind CORS
// and HTTP/2 cleartext.
func NewServer(
	cfg *config.Config,
	logger *logrus.Logger,
	content *connectrpc.ContentServiceServer,
	practice *connectrpc.PracticeServiceServer,
	tutor *connectrpc.TutorServiceServer,
	speech usecase.SpeechUsecase,
) *Server {
	opts := []connect.HandlerOption{
		connectrpc.WithJSONCodec(),
		connect.WithInterceptors(Logger(logger)),
	}
	if cfg.Audio.MaxUploadBytes > 0 {
		opts = append(opts, connect.WithReadMaxBytes(int(cfg.Audio.MaxUploadBytes*4/3+jsonOverhead)))
	}

	mux := http.NewServeMux()
	mux.Handle(connectrpc.NewContentServiceHandler(content, opts...))
	mux.Handle(connectrpc.NewPracticeServiceHandler(practice, opts...))
	mux.Handle(connectrpc.NewTutorServiceHandler(tutor, opts...))
	mux.Handle("GET "+mapping.AudioPath+"{key}", AccessLog(logger, connectrpc.NewAudioHandler(speech, logger)))
	mux.Handle("GET /healthz", connectrpc.HealthHandler())

	handler := withCORS(cfg.Server.AllowedOrigins, mux)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	return &Server{
		config:     cfg,
		httpServer: httpServer,
		logger:     logger,
	}
}

func withCORS(origins []string, h http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: connectcors.AllowedMethods(),
		AllowedHeaders: connectcors.AllowedHeaders(),
		ExposedHeaders: connectcors.ExposedHeaders(),
		MaxAge:         7200,
	}).Handler(h)
}

// Handler exposes the root handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves HTTP until Shutdown is called.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(lis)
}

func (s *Server) Serve(lis net.Listener) error {
	s.logger.Infof("HTTP server starting on %s", lis.Addr())
	if err := s.httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve HTTP: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	s.logger.Info("Server shutdown complete")
	return nil
}
