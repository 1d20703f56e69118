package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/steake/internal/config"
	"github.com/GlebRadaev/steake/internal/game"
	"github.com/GlebRadaev/steake/internal/handlers"
	"github.com/GlebRadaev/steake/internal/pg"
	"github.com/GlebRadaev/steake/internal/repo"
	"github.com/GlebRadaev/steake/internal/roundstore"
	"github.com/GlebRadaev/steake/internal/service"
	"github.com/GlebRadaev/steake/internal/service/authservice"
	"github.com/GlebRadaev/steake/pkg/auth"
	"github.com/GlebRadaev/steake/pkg/logger"
)

const redisDialTimeout = 5 * time.Second

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	rounds, err := roundStore(ctx, cfg)
	if err != nil {
		zap.L().Error("round store failed: ", zap.Error(err))
		return fmt.Errorf("can't connect round store: %w", err)
	}

	conn := pg.New(pool)
	a.cfg = cfg
	a.repo = repo.New(conn, txManager)
	a.srv = service.New(a.repo, service.Deps{
		JWT:        auth.NewJWTService(cfg.JWTSecret),
		TokenTTL:   cfg.TokenTTL,
		BcryptCost: cfg.BcryptCost,
		Rounds:     rounds,
		RNG:        game.NewRNG(),
	})
	a.api = handlers.New(a.srv)

	err = a.srv.EnsureAdmin(ctx, authservice.AdminSeed{
		Login:    cfg.AdminLogin,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Balance:  cfg.AdminBalance,
	})
	if err != nil {
		zap.L().Error("admin bootstrap failed: ", zap.Error(err))
		return fmt.Errorf("can't bootstrap admin: %w", err)
	}

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func roundStore(ctx context.Context, cfg *config.Config) (game.RoundStore, error) {
	if cfg.RedisAddr == "" {
		zap.L().Info("using in-memory round store")
		return roundstore.NewMemory(), nil
	}
	client, err := roundstore.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redisDialTimeout)
	if err != nil {
		return nil, err
	}
	zap.L().Info("using redis round store", zap.String("addr", cfg.RedisAddr))
	return roundstore.NewRedis(client, cfg.RoundTTL), nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
