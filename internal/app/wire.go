//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/eslsoft/lingoguru/internal/adapter/connectrpc"
	"github.com/eslsoft/lingoguru/internal/adapter/gemini"
	"github.com/eslsoft/lingoguru/internal/infrastructure/config"
	"github.com/eslsoft/lingoguru/internal/infrastructure/server"
	"github.com/eslsoft/lingoguru/internal/usecase"
)

var configSet = wire.NewSet(
	config.Load,
	server.NewLogger,
	provideFieldLogger,
)

var gatewaySet = wire.NewSet(
	gemini.NewClient,
	wire.Bind(new(usecase.AIGateway), new(*gemini.Client)),
	provideShuffler,
)

var repositorySet = wire.NewSet(
	provideLessonRepository,
	provideGrammarRepository,
	provideAudioCache,
)

var usecaseSet = wire.NewSet(
	usecase.NewLessonUsecase,
	usecase.NewGrammarUsecase,
	providePronunciationUsecase,
	provideNarrator,
	wire.Bind(new(usecase.SpeechUsecase), new(*usecase.Narrator)),
	providePracticeUsecase,
)

var serviceSet = wire.NewSet(
	connectrpc.NewContentServiceServer,
	connectrpc.NewPracticeServiceServer,
	connectrpc.NewTutorServiceServer,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		gatewaySet,
		repositorySet,
		usecaseSet,
		serviceSet,
		server.NewServer,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}

// InitializeStore builds the database/sql lesson store used by db-init,
// export and import.
func InitializeStore() (*Store, func(), error) {
	wire.Build(
		configSet,
		gatewaySet,
		provideSQLLessonRepository,
		usecase.NewLessonUsecase,
		wire.Struct(new(Store), "*"),
	)
	return nil, nil, nil
}
