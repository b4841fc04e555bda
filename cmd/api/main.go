package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/staffhub/staffhub-api/internal/api"
	"github.com/staffhub/staffhub-api/internal/core/service"
	"github.com/staffhub/staffhub-api/internal/infrastructure/db/mongo"
	"github.com/staffhub/staffhub-api/internal/infrastructure/db/redis"
	"github.com/staffhub/staffhub-api/internal/infrastructure/push"
	"github.com/staffhub/staffhub-api/internal/infrastructure/queue"
	"github.com/staffhub/staffhub-api/internal/pkg/config"
	"github.com/staffhub/staffhub-api/internal/worker"
	"github.com/staffhub/staffhub-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongo.NewUserRepository(db)
	employeeRepo := mongo.NewEmployeeRepository(db)
	managerRepo := mongo.NewManagerRepository(db)
	leaveRepo := mongo.NewLeaveRepository(db)
	salesRepo := mongo.NewSalesRepository(db)
	notificationRepo := mongo.NewNotificationRepository(db)

	indexCtx, cancelIndexes := context.WithTimeout(ctx, 30*time.Second)
	defer cancelIndexes()
	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		employeeRepo.EnsureIndexes,
		leaveRepo.EnsureIndexes,
		salesRepo.EnsureIndexes,
		notificationRepo.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Push pipeline: service → dispatcher → redis pub/sub → hub → SSE ---
	publisher := redis.NewPublisher(rdb)
	dispatcher := queue.NewDispatcher(cfg.PushWorkers, publisher, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	hub := push.NewHub(logger.Component("hub"))
	go runPushBridge(ctx, rdb, hub, logger.Component("push_bridge"))

	// --- Services ---
	notifier := service.NewNotificationService(notificationRepo, dispatcher, logger.Component("notifier"))
	authService := service.NewAuthService(userRepo, employeeRepo, managerRepo,
		cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, logger.Component("auth"))
	employeeService := service.NewEmployeeService(userRepo, employeeRepo, managerRepo,
		leaveRepo, salesRepo, notifier, logger.Component("employee"))
	managerService := service.NewManagerService(userRepo, employeeRepo, managerRepo,
		leaveRepo, salesRepo, notifier, logger.Component("manager"))

	// --- Background scan ---
	scanner := worker.NewLeaveScanner(employeeRepo, userRepo, leaveRepo, notifier,
		redis.NewScanLock(rdb), cfg.LeaveScanInterval, logger.Component("leave_scanner"))
	go scanner.Run(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		AuthService:     authService,
		EmployeeService: employeeService,
		ManagerService:  managerService,
		Notifier:        notifier,
		Hub:             hub,
		Mongo:           db,
		Redis:           rdb,
		JWTSecret:       cfg.JWTSecret,
		Log:             logger.Component("api"),
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

// runPushBridge drains the redis pattern subscription into the local hub so a
// push reaches the recipient regardless of which instance holds the SSE
// connection.
func runPushBridge(ctx context.Context, rdb *goredis.Client, hub *push.Hub, log zerolog.Logger) {
	sub := redis.Subscribe(ctx, rdb)
	defer sub.Close()

	bus := make(chan push.PubSubMessage)
	go hub.Run(ctx, bus)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			payload, err := redis.DecodePayload(msg.Payload)
			if err != nil {
				log.Warn().Err(err).Str("channel", msg.Channel).Msg("dropping undecodable push payload")
				continue
			}
			bus <- push.PubSubMessage{
				Email:   redis.RecipientEmail(msg.Channel),
				Payload: payload,
			}
		}
	}
}
