package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Token type markers carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	// ErrTokenInvalid is returned for signature, expiry or claim failures.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenRevoked is returned when a token is in the revocation set.
	ErrTokenRevoked = errors.New("token revoked")
	// ErrTokenOwnerMismatch is returned when a refresh token's registered
	// owner differs from the claimed user.
	ErrTokenOwnerMismatch = errors.New("refresh token owner mismatch")
)

// Claims are the JWT claims embedded in issued tokens.
type Claims struct {
	Username  string `json:"username,omitempty"`
	Role      string `json:"role,omitempty"`
	Email     string `json:"email,omitempty"`
	TokenType string `json:"type"`
	LoginTime string `json:"login_time,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim. The subject travels as a string on the
// wire; any non-numeric value fails closed.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil {
		return 0, ErrTokenInvalid
	}
	return uint(id), nil
}

// Identity is the claim payload embedded in access tokens.
type Identity struct {
	Username string
	Role     string
	Email    string
}

// JWTService mints and verifies HS256-signed tokens and drives the refresh
// rotation protocol against the token store.
type JWTService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	store      TokenStore
}

// NewJWTService creates a token issuer with the given signing secret and
// token lifetimes.
func NewJWTService(secret string, accessTTL, refreshTTL time.Duration, store TokenStore) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		store:      store,
	}
}

// IssueAccessToken mints a short-lived stateless access token. The jti is
// derived from the subject and a high-resolution timestamp.
func (s *JWTService) IssueAccessToken(userID uint, identity Identity) (string, error) {
	now := time.Now()
	sub := strconv.FormatUint(uint64(userID), 10)
	claims := &Claims{
		Username:  identity.Username,
		Role:      identity.Role,
		Email:     identity.Email,
		TokenType: TokenTypeAccess,
		LoginTime: now.UTC().Format(time.RFC3339),
		SessionID: fmt.Sprintf("%s_%d", sub, now.Unix()),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ID:        fmt.Sprintf("%s_%d", sub, now.UnixNano()),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// IssueRefreshToken mints a refresh token and registers it in the token
// store keyed by its own string value.
func (s *JWTService) IssueRefreshToken(ctx context.Context, userID uint) (string, error) {
	now := time.Now()
	expiresAt := now.Add(s.refreshTTL)
	jti := uuid.New().String()
	claims := &Claims{
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}
	data := RefreshTokenData{
		UserID:    userID,
		JTI:       jti,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}
	if err := s.store.PutRefreshToken(ctx, token, data); err != nil {
		return "", err
	}
	return token, nil
}

// VerifyAccessToken checks signature, expiry and the revocation set.
func (s *JWTService) VerifyAccessToken(ctx context.Context, raw string) (*Claims, error) {
	claims, err := s.parse(raw)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, ErrTokenInvalid
	}
	revoked, err := s.store.IsRevoked(ctx, raw)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// VerifyRefreshToken checks signature, expiry and the refresh type marker.
// Registry membership is checked by Rotate, not here.
func (s *JWTService) VerifyRefreshToken(raw string) (*Claims, error) {
	claims, err := s.parse(raw)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Rotate consumes oldToken and issues its single-use successor for the same
// owner. The registry entry is removed atomically before any check, so a
// replayed token fails with ErrTokenNotFound and concurrent rotations of
// the same token have exactly one winner. An owner mismatch burns the
// consumed entry.
func (s *JWTService) Rotate(ctx context.Context, oldToken string, claimedUserID uint) (string, error) {
	data, err := s.store.ConsumeRefreshToken(ctx, oldToken)
	if err != nil {
		return "", err
	}
	if data.UserID != claimedUserID {
		return "", ErrTokenOwnerMismatch
	}
	if err := s.store.Revoke(ctx, oldToken, time.Until(data.ExpiresAt)); err != nil {
		return "", err
	}
	return s.IssueRefreshToken(ctx, claimedUserID)
}

// Revoke adds a token's opaque value to the revocation set for the token's
// remaining lifetime.
func (s *JWTService) Revoke(ctx context.Context, raw string) error {
	claims, err := s.parse(raw)
	if err != nil {
		return err
	}
	return s.store.Revoke(ctx, raw, time.Until(claims.ExpiresAt.Time))
}

func (s *JWTService) parse(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
