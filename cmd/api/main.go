package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"storespark/internal/core/auth"
	"storespark/internal/core/cache"
	"storespark/internal/core/config"
	"storespark/internal/core/database"
	"storespark/internal/core/logger"
	"storespark/internal/core/server"
	"storespark/internal/domain"
	"storespark/internal/repo"
	"storespark/internal/service"
	"storespark/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	repos := mustBuildRepos(cfg, log)

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	authSvc := service.NewAuthService(repos.Users, jwter, c, log)
	storeSvc := service.NewStoreService(repos.Stores, repos.Ratings, repos.Users, c, log)

	r := router.NewAPIEngine(log, jwter, authSvc, storeSvc)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("user api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("user api start FAILED", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("user api stopped gracefully")
}

// mustBuildRepos 按驱动选仓储：memory 走内置实现，其余走 gorm
func mustBuildRepos(cfg *config.Config, l *zap.Logger) repo.Set {
	if cfg.DB.Driver == "memory" {
		repos := repo.NewMemorySet()
		if cfg.DB.Seed {
			if err := repo.Seed(repos); err != nil {
				l.Fatal("seed failed", zap.Error(err))
			}
		}
		l.Info("using in-memory repositories")
		return repos
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}, &domain.Store{}, &domain.Rating{}); err != nil {
			l.Fatal("automigrate failed", zap.Error(err))
		}
		l.Info("automigrate done")
	}

	repos := repo.NewGormSet(db)
	if cfg.DB.Seed {
		if err := repo.Seed(repos); err != nil {
			l.Fatal("seed failed", zap.Error(err))
		}
	}
	return repos
}
