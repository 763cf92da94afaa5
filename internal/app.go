package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"media-fetch-api/config"
	"media-fetch-api/internal/application/ports"
	"media-fetch-api/internal/application/services"
	"media-fetch-api/internal/infrastructure/db/postgres"
	downloadRepo "media-fetch-api/internal/infrastructure/db/postgres/download"
	quotaRepo "media-fetch-api/internal/infrastructure/db/postgres/quota"
	"media-fetch-api/internal/infrastructure/engine"
	"media-fetch-api/internal/infrastructure/jwt"
	"media-fetch-api/internal/infrastructure/metrics"
	"media-fetch-api/internal/infrastructure/mq"
	"media-fetch-api/internal/infrastructure/outbox"
	"media-fetch-api/internal/interface/api/rest"
	"media-fetch-api/internal/interface/api/rest/middleware"
	"media-fetch-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	extractor  *engine.Extractor
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
	sweeper    ports.Sweeper
	downloads  ports.DownloadService
	catalog    ports.Catalog
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// config
	if err = godotenv.Load(".env"); err != nil {
		logger.Warn("no .env file loaded", zap.Error(err))
	}
	cfg := config.Load()

	// storage dirs
	for _, dir := range []string{cfg.DownloadDir(), cfg.OutboxDir()} {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			logger.Fatal("cannot create storage dir", zap.String("dir", dir), zap.Error(err))
		}
	}

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err = postgres.EnsureSchema(ctx, dbPool); err != nil {
		logger.Fatal("failed to ensure schema", zap.Error(err))
	}

	// extraction engine
	extractor := engine.New(logger, cfg.Engine)
	extractor.SelfTest(ctx)

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}

	// repos
	dRepo := downloadRepo.NewRepository(dbPool)
	qRepo := quotaRepo.NewRepository(dbPool)

	// services
	ledger := services.NewLedgerService(qRepo, cfg.Storage.DailyLimit)
	catalog := services.NewCatalogService(dRepo, ledger, logger, mCounter)
	sweeper := services.NewSweeperService(
		dRepo, logger, mCounter,
		cfg.DownloadDir(), cfg.RetentionWindow(), cfg.Storage.SweepInterval,
	)
	downloads := services.NewOrchestratorService(
		extractor, catalog, ledger, rbMQ, logger, mCounter,
		cfg.DownloadDir(), cfg.MaxFileSizeBytes(), cfg.Engine,
	)

	// rmqConsumer: queued requests are delivered through the shared outbox
	outboxDeliverer := outbox.New(logger, cfg.OutboxDir())
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger, downloads, outboxDeliverer)
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = rmqConsumer.Init(); err != nil {
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	return &App{
		logger:     logger,
		cfg:        cfg,
		db:         dbPool,
		extractor:  extractor,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		mq:         rbMQ,
		mqConsumer: rmqConsumer,
		sweeper:    sweeper,
		downloads:  downloads,
		catalog:    catalog,
	}, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq.GetConn() != nil {
		a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.cfg.App.Host+":"+a.cfg.App.Port))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.mqConsumer.RequestWorker(ctx)
		return nil
	})

	// retention sweeper runs beside the request path; they only share the catalog
	g.Go(func() error {
		a.sweeper.Worker(ctx)
		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	authService := services.NewAuthService(jwtService, a.cfg.App)

	rest.NewAuthController(a.router, a.logger, authService)
	rest.NewDownloadController(a.router, a.downloads, a.logger, a.cfg.Storage.RequestTimeout)
	rest.NewStatsController(a.router, a.catalog, a.logger)
	rest.NewAdminController(a.router, a.catalog, a.sweeper, a.logger, jwtService)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
