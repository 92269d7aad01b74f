package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/klass-lk/markpost/internal/api"
	"github.com/klass-lk/markpost/internal/config"
	"github.com/klass-lk/markpost/internal/server"
	"github.com/klass-lk/markpost/internal/service"
	"github.com/klass-lk/markpost/internal/store"
	mongostore "github.com/klass-lk/markpost/internal/store/mongo"
	pgstore "github.com/klass-lk/markpost/internal/store/postgres"
	"github.com/klass-lk/markpost/internal/web"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	posts, cleanup, err := openStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", string(cfg.Backend)).Msg("failed to open store")
	}
	defer cleanup()

	postService := service.NewPostService(posts, service.NewBcryptHasher(), cfg.RequirePassword)

	srv := server.New(logger).
		DefaultCORS().
		LoadTemplates("web/templates/*.html").
		ServeStatic("/static", "web/static")

	srv.RegisterController("/posts", api.NewPostController(postService, logger))
	srv.RegisterController("", web.NewPostController(postService, logger))

	logger.Info().
		Int("port", cfg.Port).
		Str("backend", string(cfg.Backend)).
		Bool("gated", cfg.RequirePassword).
		Msg("starting server")

	if err := srv.Start(cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func openStore(cfg *config.Config) (store.PostStore, func(), error) {
	switch cfg.Backend {
	case config.BackendMongo:
		db, err := cfg.Mongo.Connect()
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			_ = db.Client().Disconnect(context.Background())
		}
		return mongostore.New(db), cleanup, nil
	default:
		db, err := cfg.Postgres.Connect()
		if err != nil {
			return nil, nil, err
		}
		posts := pgstore.New(db)
		if err := posts.Migrate(context.Background()); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return posts, func() { _ = db.Close() }, nil
	}
}
