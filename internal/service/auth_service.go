// Package service implements the application's use cases on top of the
// repositories and the token layer. Handlers stay thin; every rule that
// matters lives here.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/logging"
	"blogapi/internal/model"
	"blogapi/internal/password"
	"blogapi/internal/repository"
)

const bcryptCost = 10

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// TokenPair is an access/refresh token pair issued as a unit.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService covers registration, login, token refresh and the
// account-level operations of the authenticated user.
type AuthService interface {
	Register(ctx context.Context, username, email, pw string) (*model.User, TokenPair, error)
	Login(ctx context.Context, username, pw string) (*model.User, TokenPair, error)
	// Refresh rotates a refresh token and mints a fresh access token for its
	// owner. Any failure surfaces as ErrInvalidRefreshToken.
	Refresh(ctx context.Context, refreshToken string) (*model.User, TokenPair, error)
	// Logout revokes the presented access token for its remaining lifetime.
	Logout(ctx context.Context, accessToken string) error
	ChangePassword(ctx context.Context, userID uint, currentPw, newPw string) error
	// ResolveUser loads the live user record behind a token subject. Unknown
	// and deactivated users both fail with ErrUnauthorized.
	ResolveUser(ctx context.Context, claims *auth.Claims) (*model.User, error)
}

type authService struct {
	users repository.UserRepository
	jwt   *auth.JWTService
}

// NewAuthService wires the auth use cases.
func NewAuthService(users repository.UserRepository, jwt *auth.JWTService) AuthService {
	return &authService{users: users, jwt: jwt}
}

func (s *authService) Register(ctx context.Context, username, email, pw string) (*model.User, TokenPair, error) {
	if err := validateUsername(username); err != nil {
		return nil, TokenPair{}, err
	}
	email = model.NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, TokenPair{}, err
	}
	if err := password.Validate(pw); err != nil {
		return nil, TokenPair{}, err
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, TokenPair{}, apperrors.ErrDuplicateUsername
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, TokenPair{}, err
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, TokenPair{}, apperrors.ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, TokenPair{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("hashing password: %w", err)
	}
	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, TokenPair{}, err
	}

	logging.FromContext(ctx).Info("user registered",
		"user_id", user.ID,
		"username", user.Username,
	)

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, tokens, nil
}

func (s *authService) Login(ctx context.Context, username, pw string) (*model.User, TokenPair, error) {
	log := logging.FromContext(ctx)

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, TokenPair{}, apperrors.ErrInvalidCredentials
		}
		return nil, TokenPair{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(pw)); err != nil {
		return nil, TokenPair{}, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		// Same response as a bad password so account state is not probeable.
		log.Warn("login attempt on deactivated account", "user_id", user.ID)
		return nil, TokenPair{}, apperrors.ErrInvalidCredentials
	}

	log.Info("user logged in", "user_id", user.ID, "username", user.Username)

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, tokens, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*model.User, TokenPair, error) {
	log := logging.FromContext(ctx)

	claims, err := s.jwt.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, apperrors.ErrInvalidRefreshToken
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, TokenPair{}, apperrors.ErrInvalidRefreshToken
	}

	// Resolve the user before consuming the token: a deactivated or deleted
	// account must not burn its entry and register an undeliverable
	// successor.
	user, err := s.ResolveUser(ctx, claims)
	if err != nil {
		return nil, TokenPair{}, err
	}

	newRefresh, err := s.jwt.Rotate(ctx, refreshToken, userID)
	if err != nil {
		if errors.Is(err, auth.ErrTokenNotFound) {
			// A valid signature on an unregistered token means it was already
			// rotated or revoked.
			log.Warn("refresh token reuse detected", "user_id", userID)
		}
		return nil, TokenPair{}, apperrors.ErrInvalidRefreshToken
	}
	access, err := s.jwt.IssueAccessToken(user.ID, auth.Identity{
		Username: user.Username,
		Role:     user.Role,
		Email:    user.Email,
	})
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, TokenPair{AccessToken: access, RefreshToken: newRefresh}, nil
}

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	if err := s.jwt.Revoke(ctx, accessToken); err != nil {
		return err
	}
	logging.FromContext(ctx).Info("user logged out")
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uint, currentPw, newPw string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUnauthorized
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPw)); err != nil {
		return apperrors.ErrCurrentPasswordMismatch
	}
	if err := password.Validate(newPw); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPw), bcryptCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	user.PasswordHash = string(hash)
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	logging.FromContext(ctx).Info("password changed", "user_id", user.ID)
	return nil
}

func (s *authService) ResolveUser(ctx context.Context, claims *auth.Claims) (*model.User, error) {
	userID, err := claims.UserID()
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (TokenPair, error) {
	access, err := s.jwt.IssueAccessToken(user.ID, auth.Identity{
		Username: user.Username,
		Role:     user.Role,
		Email:    user.Email,
	})
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.jwt.IssueRefreshToken(ctx, user.ID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func validateUsername(username string) error {
	if n := utf8.RuneCountInString(username); n < 3 || n > 50 {
		return apperrors.NewValidationError("username", username,
			"username must be between 3 and 50 characters")
	}
	if !usernameRe.MatchString(username) {
		return apperrors.NewValidationError("username", username,
			"username may only contain letters, digits and underscores")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" || utf8.RuneCountInString(email) > 100 || !emailRe.MatchString(email) {
		return apperrors.NewValidationError("email", email, "invalid email address")
	}
	return nil
}
