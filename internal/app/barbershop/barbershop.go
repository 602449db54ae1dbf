// Package barbershop собирает HTTP-приложение барбершоп-сервиса:
// хранилище, миграции, кеш, брокер событий, сервисы и маршруты.
package barbershop

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/barberos/barbershop-backend/internal/cache"
	"github.com/barberos/barbershop-backend/internal/config"
	"github.com/barberos/barbershop-backend/internal/lib/jwt"
	"github.com/barberos/barbershop-backend/internal/lib/rabbitmq"
	"github.com/barberos/barbershop-backend/internal/lib/sl"
	"github.com/barberos/barbershop-backend/internal/migrations"
	authservice "github.com/barberos/barbershop-backend/internal/services/auth"
	barberservice "github.com/barberos/barbershop-backend/internal/services/barber"
	haircutservice "github.com/barberos/barbershop-backend/internal/services/haircut"
	licenseservice "github.com/barberos/barbershop-backend/internal/services/license"
	reservationservice "github.com/barberos/barbershop-backend/internal/services/reservation"
	"github.com/barberos/barbershop-backend/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и ресурсы, которые нужно закрыть при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	amqp   closer
}

type closer interface {
	Close() error
}

// New собирает приложение: подключает PostgreSQL, применяет миграции,
// поднимает Redis, опционально подключает RabbitMQ и регистрирует маршруты.
//
// Брокер событий необязателен: при пустом rabbitmq_url брони создаются
// без публикации событий.
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

	var publisher reservationservice.Publisher
	var amqpConn closer
	if cfg.RabbitMQURL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn)
		if err != nil {
			return nil, err
		}
		publisher = rabbitmq.NewEventPublisher(ch)
		amqpConn = conn
	} else {
		logger.Warn("rabbitmq url is empty, reservation events are disabled")
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.New(db, jwtMaker, cfg.ValidityDays)
	licenseService := licenseservice.New(db, cfg.ExemptPaths, logger)
	barberService := barberservice.New(db, logger)
	haircutService := haircutservice.New(db, cacheRedis, logger)
	reservationService := reservationservice.New(db, publisher, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:        authService,
		License:     licenseService,
		Barber:      barberService,
		Haircut:     haircutService,
		Reservation: reservationService,
		Storage:     db,
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
		amqp:   amqpConn,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до его остановки
// или отмены контекста. При отмене сервер завершается плавно.
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
		if a.amqp != nil {
			if cerr := a.amqp.Close(); cerr != nil {
				a.logger.Warn("failed to close rabbitmq connection", sl.Err(cerr))
			}
		}
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Warn("failed to close database", sl.Err(cerr))
		}
		return err
	}
}
