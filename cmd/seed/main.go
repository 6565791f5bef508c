// Command seed creates the initial admin account. Credentials come from
// ADMIN_USERNAME, ADMIN_EMAIL and ADMIN_PASSWORD; the run is a no-op when
// the username already exists.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/logging"
	"blogapi/internal/model"
	"blogapi/internal/password"
	"blogapi/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	username := os.Getenv("ADMIN_USERNAME")
	email := os.Getenv("ADMIN_EMAIL")
	pw := os.Getenv("ADMIN_PASSWORD")
	if username == "" || email == "" || pw == "" {
		logger.Error("ADMIN_USERNAME, ADMIN_EMAIL and ADMIN_PASSWORD must be set")
		os.Exit(1)
	}
	if err := password.Validate(pw); err != nil {
		logger.Error("admin password rejected by policy", "error", err)
		os.Exit(1)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}, &model.Comment{}); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)

	if existing, err := users.FindByUsername(ctx, username); err == nil {
		logger.Info("admin account already exists", "user_id", existing.ID)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("admin lookup failed", "error", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("hashing password failed", "error", err)
		os.Exit(1)
	}
	admin := &model.User{
		Username:     username,
		Email:        model.NormalizeEmail(email),
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := users.Create(ctx, admin); err != nil {
		logger.Error("creating admin failed", "error", err)
		os.Exit(1)
	}
	logger.Info("admin account created", "user_id", admin.ID, "username", admin.Username)
}
