package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingoguru/internal/adapter/audiocache"
	"github.com/eslsoft/lingoguru/internal/adapter/gemini"
	adapterrepo "github.com/eslsoft/lingoguru/internal/adapter/repository"
	"github.com/eslsoft/lingoguru/internal/content"
	"github.com/eslsoft/lingoguru/internal/infrastructure/config"
	"github.com/eslsoft/lingoguru/internal/infrastructure/database"
	"github.com/eslsoft/lingoguru/internal/repository"
	"github.com/eslsoft/lingoguru/internal/usecase"
	"github.com/eslsoft/lingoguru/pkg/shuffle"
)

const schemaTimeout = 30 * time.Second

// provideLessonRepository picks the lesson store for the configured driver.
// The server talks to postgres through a pgx pool.
func provideLessonRepository(cfg *config.Config, log logrus.FieldLogger) (repository.LessonRepository, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()

	switch cfg.DatabaseDriver() {
	case "memory":
		return adapterrepo.NewMemoryLessonRepository(), func() {}, nil
	case "postgres":
		pool, cleanup, err := database.NewConnection(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		if err := adapterrepo.EnsurePgxSchema(ctx, pool); err != nil {
			cleanup()
			return nil, nil, err
		}
		return adapterrepo.NewPgxLessonRepository(pool), cleanup, nil
	default:
		return provideSQLLessonRepository(cfg)
	}
}

// provideSQLLessonRepository opens the store through database/sql, which is
// what the backup commands use.
func provideSQLLessonRepository(cfg *config.Config) (repository.LessonRepository, func(), error) {
	db, driver, err := database.OpenSQL(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = db.Close() }

	dialect, err := adapterrepo.DialectFor(driver)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()
	if err := adapterrepo.EnsureSQLSchema(ctx, db, dialect); err != nil {
		cleanup()
		return nil, nil, err
	}
	return adapterrepo.NewSQLLessonRepository(db, dialect), cleanup, nil
}

func provideGrammarRepository() repository.GrammarRepository {
	return adapterrepo.NewMemoryGrammarRepository(content.GrammarTopics())
}

func provideAudioCache(cfg *config.Config) (repository.AudioCache, func(), error) {
	switch cfg.Audio.Cache {
	case "", "memory":
		return audiocache.NewMemory(cfg.Audio.MaxMemoryEntries, cfg.Audio.TTL), func() {}, nil
	case "redis":
		return audiocache.NewRedis(cfg.Audio.RedisAddr, cfg.Audio.RedisPassword, cfg.Audio.RedisDB, cfg.Audio.TTL)
	default:
		return nil, nil, fmt.Errorf("unknown audio cache %q", cfg.Audio.Cache)
	}
}

func provideFieldLogger(logger *logrus.Logger) logrus.FieldLogger {
	return logger
}

func provideShuffler() *shuffle.Shuffler {
	return shuffle.New(nil)
}

func provideNarrator(gateway usecase.AIGateway, cache repository.AudioCache, client *gemini.Client, cfg *config.Config, log logrus.FieldLogger) *usecase.Narrator {
	return usecase.NewSpeechUsecase(gateway, cache, client.Voice(), cfg.Audio.SynthTimeout, log)
}

func providePronunciationUsecase(gateway usecase.AIGateway, cfg *config.Config, log logrus.FieldLogger) usecase.PronunciationUsecase {
	return usecase.NewPronunciationUsecase(gateway, cfg.Audio.MaxUploadBytes, log)
}

func providePracticeUsecase(lessons repository.LessonRepository, narrator *usecase.Narrator, gateway usecase.AIGateway, shuffler *shuffle.Shuffler, cfg *config.Config, log logrus.FieldLogger) usecase.PracticeUsecase {
	return usecase.NewPracticeUsecase(lessons, narrator, gateway, shuffler, cfg.Session.TTL, log)
}
