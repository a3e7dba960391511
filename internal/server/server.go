// Package server wires configuration, storage, services and the HTTP router
// into a runnable process.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brewline/cafe-pos/internal/api"
	"github.com/brewline/cafe-pos/internal/api/handler"
	"github.com/brewline/cafe-pos/internal/api/metrics"
	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
	"github.com/brewline/cafe-pos/internal/core/service"
	mongodb "github.com/brewline/cafe-pos/internal/infrastructure/db/mongo"
	redisdb "github.com/brewline/cafe-pos/internal/infrastructure/db/redis"
	"github.com/brewline/cafe-pos/internal/infrastructure/queue"
	"github.com/brewline/cafe-pos/internal/infrastructure/storage"
	"github.com/brewline/cafe-pos/internal/pkg/config"
	"github.com/brewline/cafe-pos/pkg/logger"
)

const csrfSweepInterval = 5 * time.Minute

// Server owns the HTTP listener and every long-lived connection.
type Server struct {
	httpServer *http.Server
	mongo      *mongo.Client
	redis      *redis.Client
	dispatcher *queue.Dispatcher
	csrf       *service.CSRFService
	log        zerolog.Logger
	stop       chan struct{}

	shutdownOnce sync.Once
	shutdownErr  error
}

// Stores groups the database handles shared by the server and admin commands.
type Stores struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// OpenStores connects to MongoDB and makes sure the indexes exist.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &Stores{Client: client, DB: db}, nil
}

// New builds the whole dependency graph. Nothing listens until Start.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Server, error) {
	stores, err := OpenStores(ctx, cfg)
	if err != nil {
		return nil, err
	}
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		_ = stores.Client.Disconnect(ctx)
		return nil, err
	}

	var archive ports.UploadArchive
	if minioCfg := storage.MinioConfig(cfg.Minio); minioCfg.Enabled() {
		m, err := storage.NewMinioArchive(minioCfg)
		if err == nil {
			err = m.EnsureBucket(ctx)
		}
		if err != nil {
			_ = rdb.Close()
			_ = stores.Client.Disconnect(ctx)
			return nil, err
		}
		archive = m
		log.Info().Str("bucket", cfg.Minio.Bucket).Msg("upload archive enabled")
	}

	db := stores.DB
	userRepo := mongodb.NewUserRepository(db)
	outletRepo := mongodb.NewOutletRepository(db)
	menuRepo := mongodb.NewMenuRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	offerRepo := mongodb.NewOfferRepository(db)
	onlineRepo := mongodb.NewOnlineOrderRepository(db)
	expenseRepo := mongodb.NewExpenseRepository(db)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)
	loyalty := service.NewLoyaltyService(mongodb.NewLoyaltyRepository(db), cfg.LoyaltyRupeesPerPoint, log)
	audit := service.NewAuditService(mongodb.NewAuditRepository(db))
	csrf := service.NewCSRFService(cfg.Security.CSRFTTL)

	orders := service.NewOrderService(orderRepo, menuRepo, offerRepo, loyalty, log)
	orders.OnCreate(func(o *domain.Order) {
		metrics.OrdersCreatedTotal.WithLabelValues(o.OutletID).Inc()
		metrics.OrderValue.Observe(o.Total)
	})

	countRows := func(kind string, rows int) { metrics.ImportRowsTotal.WithLabelValues(kind).Add(float64(rows)) }
	sales := service.NewSaleService(mongodb.NewSaleRepository(db), onlineRepo, expenseRepo, archive, log)
	sales.OnImport(countRows)
	expenses := service.NewExpenseService(expenseRepo, archive, log)
	expenses.OnImport(countRows)
	online := service.NewOnlineSaleService(onlineRepo, archive, log)
	online.OnImport(countRows)
	recons := service.NewReconciliationService(mongodb.NewReconciliationRepository(db), archive, log)
	recons.OnImport(countRows)

	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, audit, logger.Component("audit"))
	dispatcher.OnDrop(metrics.AuditDroppedTotal.Inc)
	metrics.ObserveAuditQueue(dispatcher.Pending)

	e := api.NewRouter(api.Services{
		Tokens:     tokens,
		Auth:       service.NewAuthService(userRepo, tokens, limiter, log),
		Users:      service.NewUserService(userRepo, outletRepo),
		Outlets:    service.NewOutletService(outletRepo),
		Resolver:   service.NewOutletResolver(userRepo, outletRepo),
		Menu:       service.NewMenuService(mongodb.NewCategoryRepository(db), menuRepo, orderRepo),
		Orders:     orders,
		Inventory:  service.NewInventoryService(mongodb.NewIngredientRepository(db), log),
		Sales:      sales,
		Expenses:   expenses,
		Online:     online,
		Loyalty:    loyalty,
		Offers:     service.NewOfferService(offerRepo),
		Forecasts:  service.NewForecastService(mongodb.NewForecastRepository(db), menuRepo),
		Recons:     recons,
		CSRF:       csrf,
		APIKeys:    service.NewAPIKeyService(cfg.Security.APIKeyTTL, cfg.Security.APIKeyGrace),
		Audit:      audit,
		UserRepo:   userRepo,
		AuditQueue: dispatcher,
		Health: map[string]handler.Pinger{
			"mongo": func(ctx context.Context) error { return mongodb.Ping(ctx, stores.Client) },
			"redis": func(ctx context.Context) error { return redisdb.Ping(ctx, rdb) },
		},
	}, api.Options{Logger: log, RateLimitRPS: cfg.RateLimitRPS})

	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      e,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		mongo:      stores.Client,
		redis:      rdb,
		dispatcher: dispatcher,
		csrf:       csrf,
		log:        log,
		stop:       make(chan struct{}),
	}, nil
}

// Start launches background workers and blocks serving HTTP until Shutdown.
func (s *Server) Start() error {
	s.dispatcher.Start()
	go s.sweepCSRF()

	s.log.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and pending audit entries, then closes
// the connections. Later calls return the first call's result.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		close(s.stop)
		err := s.httpServer.Shutdown(ctx)
		if derr := s.dispatcher.Stop(ctx); derr != nil {
			s.log.Warn().Err(derr).Msg("audit queue not fully drained")
		}
		_ = s.redis.Close()
		if merr := s.mongo.Disconnect(ctx); merr != nil && err == nil {
			err = merr
		}
		s.shutdownErr = err
	})
	return s.shutdownErr
}

func (s *Server) sweepCSRF() {
	t := time.NewTicker(csrfSweepInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			if n := s.csrf.Sweep(); n > 0 {
				s.log.Debug().Int("removed", n).Msg("expired csrf tokens swept")
			}
		case <-s.stop:
			return
		}
	}
}
