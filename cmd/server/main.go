// Blog API server.
//
// @title Blog API
// @version 1.0
// @description Blog backend with JWT authentication, posts, comments and role based authorization.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	_ "blogapi/docs"
	"blogapi/internal/auth"
	"blogapi/internal/cache"
	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/handler"
	"blogapi/internal/logging"
	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/router"
	"blogapi/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}, &model.Comment{}); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	var store auth.TokenStore
	switch cfg.TokenStore {
	case config.TokenStoreRedis:
		store = auth.NewRedisTokenStore(cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB))
		logger.Info("using redis token store", "addr", cfg.RedisAddr)
	default:
		memStore := auth.NewMemoryTokenStore()
		defer memStore.Close()
		store = memStore
		logger.Info("using in-memory token store")
	}

	jwtSvc := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, store)

	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	authSvc := service.NewAuthService(userRepo, jwtSvc)
	postSvc := service.NewPostService(postRepo)
	commentSvc := service.NewCommentService(commentRepo, postRepo)
	userSvc := service.NewUserService(userRepo)

	e := echo.New()
	router.Register(e, cfg, logger, jwtSvc, authSvc,
		handler.NewAuthHandler(authSvc, cfg),
		handler.NewPostHandler(postSvc),
		handler.NewCommentHandler(commentSvc),
		handler.NewAdminHandler(userSvc, postSvc),
	)

	logger.Info("server starting", "port", cfg.ServerPort, "env", cfg.Env)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
