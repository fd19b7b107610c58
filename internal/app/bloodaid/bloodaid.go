// Package bloodaid собирает приложение координации донорства: хранилище,
// миграции, кеш, очередь событий, внешние клиенты, сервисы и HTTP-сервер.
package bloodaid

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/bloodaid/bloodaid/internal/cache"
	"github.com/bloodaid/bloodaid/internal/config"
	"github.com/bloodaid/bloodaid/internal/imagehost"
	"github.com/bloodaid/bloodaid/internal/lib/geo"
	"github.com/bloodaid/bloodaid/internal/lib/jwt"
	"github.com/bloodaid/bloodaid/internal/migrations"
	"github.com/bloodaid/bloodaid/internal/paymentprovider"
	"github.com/bloodaid/bloodaid/internal/rabbitmq"
	authservice "github.com/bloodaid/bloodaid/internal/services/auth"
	blogservice "github.com/bloodaid/bloodaid/internal/services/blog"
	fundservice "github.com/bloodaid/bloodaid/internal/services/fund"
	requestservice "github.com/bloodaid/bloodaid/internal/services/request"
	statsservice "github.com/bloodaid/bloodaid/internal/services/stats"
	userservice "github.com/bloodaid/bloodaid/internal/services/user"
	"github.com/bloodaid/bloodaid/internal/storage/repository"
)

// App хранит зависимости приложения с временем жизни процесса.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	amqpConn *amqp.Connection
	amqpCh   *amqp.Channel
}

// New инициализирует все зависимости и собирает HTTP-сервер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}

	amqpConn, err := rabbitmq.Connect(cfg.AddressRabbitMQ, cfg.ConnectRetries, cfg.ConnectDelay)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	amqpCh, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetNotificationQueues())
	if err != nil {
		return nil, fmt.Errorf("setup rabbitmq channel: %w", err)
	}
	publisher := rabbitmq.NewPublisher(amqpCh)

	locations, err := geo.New()
	if err != nil {
		return nil, fmt.Errorf("load geo reference: %w", err)
	}

	tokenMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	paymentClient := paymentprovider.NewClient(cfg.PaymentProvider.SecretKey, cfg.PaymentProvider.APIURL)
	imageClient := imagehost.NewClient(cfg.ImageHost.APIKey, cfg.ImageHost.APIURL)

	authSvc := authservice.New(db, tokenMaker, locations, logger)
	userSvc := userservice.New(db, cacheRedis, locations, logger)
	requestSvc := requestservice.New(db, db, cacheRedis, publisher, locations, logger)
	fundSvc := fundservice.New(db, paymentClient, publisher, logger)
	blogSvc := blogservice.New(db, logger)
	statsSvc := statsservice.New(db)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:     authSvc,
		User:     userSvc,
		Request:  requestSvc,
		Fund:     fundSvc,
		Blog:     blogSvc,
		Stats:    statsSvc,
		Uploader: imageClient,
		Geo:      locations,
		Storage:  db,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		amqpConn: amqpConn,
		amqpCh:   amqpCh,
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
		_ = a.amqpCh.Close()
		_ = a.amqpConn.Close()
		_ = a.db.DB.Close()
		return err
	}
}
