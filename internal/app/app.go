// Package app wires storage, services and transport together.
package app

import (
	"context"
	"fmt"
	"net/http"

	"surveyhub/internal/cache"
	"surveyhub/internal/config"
	"surveyhub/internal/log"
	"surveyhub/internal/repository"
	"surveyhub/internal/service"
	"surveyhub/internal/transport/rest"
	"surveyhub/internal/transport/ws"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	UserRepo     repository.AccountRepo
	AdminRepo    repository.AccountRepo
	SurveyRepo   repository.SurveyRepo
	SessionCache cache.SessionCache

	Tokens    *service.TokenService
	Accounts  *service.AccountService
	Surveys   *service.SurveyService
	Responses *service.ResponseService
	Analytics *service.AnalyticsService
	Hub       *ws.Hub

	cfg   *config.Config
	mongo *mongo.Client
	redis *redis.Client
}

// New connects to MongoDB and Redis and builds every service. The caller
// owns the returned App and must Close it.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	client, err := repository.Connect(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDatabase)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	log.Infof("connected to MongoDB database %s", cfg.MongoDatabase)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = client.Disconnect(context.Background())
		_ = rdb.Close()
		return nil, fmt.Errorf("ping Redis at %s: %w", cfg.RedisAddr, err)
	}
	log.Infof("connected to Redis at %s", cfg.RedisAddr)

	a := &App{
		UserRepo:     repository.NewUserRepo(db),
		AdminRepo:    repository.NewAdminRepo(db),
		SurveyRepo:   repository.NewSurveyRepo(db),
		SessionCache: cache.NewSessionCache(rdb),
		Hub:          ws.NewHub(),
		cfg:          cfg,
		mongo:        client,
		redis:        rdb,
	}

	a.Tokens = service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, a.SessionCache)
	a.Accounts = service.NewAccountService(a.UserRepo, a.AdminRepo, a.Tokens)
	a.Surveys = service.NewSurveyService(a.SurveyRepo, a.UserRepo, cfg.MinOptions)
	a.Responses = service.NewResponseService(a.SurveyRepo, a.Surveys)
	a.Analytics = service.NewAnalyticsService(a.Responses)

	// the hub implements service.Broadcaster
	a.Surveys.SetBroadcaster(a.Hub)
	a.Responses.SetBroadcaster(a.Hub)

	return a, nil
}

// Router returns the HTTP handler serving the API.
func (a *App) Router() http.Handler {
	return rest.NewRouter(&rest.Container{
		TokenService:     a.Tokens,
		AccountService:   a.Accounts,
		SurveyService:    a.Surveys,
		ResponseService:  a.Responses,
		AnalyticsService: a.Analytics,
		WSHub:            a.Hub,
		CORS:             a.cfg.CORS,
	})
}

// Close stops the hub and disconnects from the stores.
func (a *App) Close(ctx context.Context) error {
	a.Hub.Close()
	redisErr := a.redis.Close()
	if err := a.mongo.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect MongoDB: %w", err)
	}
	if redisErr != nil {
		return fmt.Errorf("close Redis: %w", redisErr)
	}
	return nil
}
