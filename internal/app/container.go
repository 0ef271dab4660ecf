package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingoguru/internal/infrastructure/config"
	"github.com/eslsoft/lingoguru/internal/infrastructure/server"
	"github.com/eslsoft/lingoguru/internal/repository"
	"github.com/eslsoft/lingoguru/internal/usecase"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Server   *server.Server
	Lessons  usecase.LessonUsecase
	Practice usecase.PracticeUsecase
	Narrator *usecase.Narrator
}

// Store is what the database commands need: the lesson store over
// database/sql and the usecase that seeds it.
type Store struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Repo    repository.LessonRepository
	Lessons usecase.LessonUsecase
}
