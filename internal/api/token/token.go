// Package token contains utilities for http tokens.
package token

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/foodgram-app/backend/internal/config"
	"github.com/foodgram-app/backend/internal/env"
	"github.com/foodgram-app/backend/internal/jwt"
)

const (
	refreshTokenBytes    = 32
	accessTokenLifetime  = 60 * 30           // 30 minutes
	refreshTokenLifetime = 60 * 60 * 24 * 14 // 14 days
)

var ErrMalformedRefreshToken = errors.New("malformed refresh token")

func AccessTokenName(e *env.Env) string {
	if e.Config.Env == config.EnvProd {
		return "__Host-Http-access"
	}
	return "access"
}

func RefreshTokenName(e *env.Env) string {
	if e.Config.Env == config.EnvProd {
		return "__Host-Http-refresh"
	}
	return "refresh"
}

func NewRandomToken(numbytes uint) (string, error) {
	token := make([]byte, numbytes)
	if _, err := rand.Reader.Read(token); err != nil {
		return "", fmt.Errorf("creating token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(token), nil
}

func NewRefreshToken(userID int64) (string, error) {
	randSegment, err := NewRandomToken(refreshTokenBytes)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%s", userID, randSegment), nil
}

func ExtractUserIDFromRefreshToken(token string) (int64, error) {
	idSegment, _, found := strings.Cut(token, ".")
	if !found {
		return 0, ErrMalformedRefreshToken
	}
	userID, err := strconv.ParseInt(idSegment, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing user id segment: %w", err)
	}
	return userID, nil
}

func NewAccessToken(params jwt.JWTParams, e *env.Env) (string, error) {
	if e.Config.AppSecret.Value == nil {
		return "", errors.New("app secret not configured")
	}
	version := e.Config.AppSecret.Version
	if version == "" {
		version = jwt.DefaultKID
	}
	token, err := jwt.GenerateJWT(params, []byte(*e.Config.AppSecret.Value), version)
	if err != nil {
		return "", fmt.Errorf("generating access token: %w", err)
	}
	return token, nil
}

func NewAccessTokenCookie(token string, e *env.Env) *http.Cookie {
	cookie := &http.Cookie{
		Name:     AccessTokenName(e),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   accessTokenLifetime,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}

	if e.Config.Env == config.EnvProd {
		cookie.Secure = true
	}

	return cookie
}

func NewRefreshTokenCookie(token string, e *env.Env) *http.Cookie {
	cookie := &http.Cookie{
		Name:     RefreshTokenName(e),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   refreshTokenLifetime,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}

	if e.Config.Env == config.EnvProd {
		cookie.Secure = true
	}

	return cookie
}

// ExpiredCookie returns a cookie that instructs the client to drop the
// named cookie.
func ExpiredCookie(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	}
}

type userIDKeyType struct{}

var userIDKey userIDKeyType

type accessTokenKeyType struct{}

var accessTokenKey accessTokenKeyType

func UserIDWithCtx(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromCtx(ctx context.Context) (int64, error) {
	if v, ok := ctx.Value(userIDKey).(int64); ok {
		return v, nil
	}
	return 0, errors.New("user id not found in context")
}

func AccessTokenWithCtx(ctx context.Context, token *jwtlib.Token) context.Context {
	return context.WithValue(ctx, accessTokenKey, token)
}

func AccessTokenFromCtx(ctx context.Context) (*jwtlib.Token, error) {
	if v, ok := ctx.Value(accessTokenKey).(*jwtlib.Token); ok {
		return v, nil
	}
	return nil, errors.New("access token not found in context")
}
