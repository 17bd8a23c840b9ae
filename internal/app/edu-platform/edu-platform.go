// Package eduplatform собирает приложение учебного портала: хранилище,
// миграции, кеш, публикацию событий, сервисы и HTTP-сервер.
package eduplatform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/gritsuts/edu-platform/internal/cache"
	"github.com/gritsuts/edu-platform/internal/config"
	"github.com/gritsuts/edu-platform/internal/events"
	"github.com/gritsuts/edu-platform/internal/lib/jwt"
	"github.com/gritsuts/edu-platform/internal/lib/rabbitmq"
	"github.com/gritsuts/edu-platform/internal/lib/sl"
	"github.com/gritsuts/edu-platform/internal/migrations"
	"github.com/gritsuts/edu-platform/internal/seed"
	assignmentservice "github.com/gritsuts/edu-platform/internal/services/assignment"
	authservice "github.com/gritsuts/edu-platform/internal/services/auth"
	disciplineservice "github.com/gritsuts/edu-platform/internal/services/discipline"
	journalservice "github.com/gritsuts/edu-platform/internal/services/journal"
	scheduleservice "github.com/gritsuts/edu-platform/internal/services/schedule"
	"github.com/gritsuts/edu-platform/internal/storage/repository"
)

// App хранит собранный HTTP-сервер и ресурсы, требующие закрытия.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New инициализирует все зависимости приложения и возвращает готовый App.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.AMQPConnectionString != "" {
		_, ch, err := rabbitmq.Connect(cfg.AMQPConnectionString)
		if err != nil {
			return nil, err
		}
		if err := rabbitmq.SetupQueues(ch); err != nil {
			return nil, err
		}
		publisher = events.NewRabbitPublisher(ch)
	}

	if cfg.SeedOnStart {
		if err := seed.Run(ctx, db, logger); err != nil {
			logger.Error("failed to seed database", sl.Err(err))
			return nil, err
		}
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	journalService := journalservice.NewJournalService(db, publisher, logger)
	assignmentService := assignmentservice.NewAssignmentService(db, publisher, logger)
	disciplineService := disciplineservice.NewDisciplineService(db, cacheRedis, logger)
	scheduleService := scheduleservice.NewScheduleService(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:       authService,
		Journal:    journalService,
		Assignment: assignmentService,
		Discipline: disciplineService,
		Schedule:   scheduleService,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
