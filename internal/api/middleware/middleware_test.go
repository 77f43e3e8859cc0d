package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/foodgram-app/backend/internal/api/requestid"
	"github.com/foodgram-app/backend/internal/api/token"
	"github.com/foodgram-app/backend/internal/config"
	"github.com/foodgram-app/backend/internal/env"
	fgJwt "github.com/foodgram-app/backend/internal/jwt"
	"github.com/foodgram-app/backend/internal/role"
)

const testSecret = "test-secret-32-bytes-long-123456"

func newTestEnv(t *testing.T) *env.Env {
	t.Helper()
	secret := config.AppSecretValue(testSecret)
	conf := config.Config{
		AppSecret:  config.AppSecret{Value: &secret, Version: "1"},
		HostOrigin: "http://localhost:8080",
		Env:        config.EnvDev,
	}
	return env.New(nil, nil, nil, conf)
}

func newAccessToken(t *testing.T, e *env.Env, userID int64, userRole role.Role) string {
	t.Helper()
	accessToken, err := token.NewAccessToken(fgJwt.JWTParams{
		UserID: strconv.FormatInt(userID, 10),
		Role:   userRole.String(),
	}, e)
	if err != nil {
		t.Fatalf("creating access token: %v", err)
	}
	return accessToken
}

func TestAuthorizeRequest(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		name         string
		requiredRole role.Role
		setupRequest func(*testing.T, *http.Request)
		wantStatus   int
		wantNext     bool
	}{
		{
			name:         "valid user token",
			requiredRole: role.RoleUser,
			setupRequest: func(t *testing.T, r *http.Request) {
				r.AddCookie(&http.Cookie{
					Name:  token.AccessTokenName(e),
					Value: newAccessToken(t, e, 123, role.RoleUser),
				})
			},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:         "admin token on admin route",
			requiredRole: role.RoleAdmin,
			setupRequest: func(t *testing.T, r *http.Request) {
				r.AddCookie(&http.Cookie{
					Name:  token.AccessTokenName(e),
					Value: newAccessToken(t, e, 1, role.RoleAdmin),
				})
			},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:         "admin token on user route",
			requiredRole: role.RoleUser,
			setupRequest: func(t *testing.T, r *http.Request) {
				r.AddCookie(&http.Cookie{
					Name:  token.AccessTokenName(e),
					Value: newAccessToken(t, e, 1, role.RoleAdmin),
				})
			},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:         "user token on admin route",
			requiredRole: role.RoleAdmin,
			setupRequest: func(t *testing.T, r *http.Request) {
				r.AddCookie(&http.Cookie{
					Name:  token.AccessTokenName(e),
					Value: newAccessToken(t, e, 123, role.RoleUser),
				})
			},
			wantStatus: http.StatusForbidden,
			wantNext:   false,
		},
		{
			name:         "missing cookie",
			requiredRole: role.RoleUser,
			setupRequest: func(*testing.T, *http.Request) {},
			wantStatus:   http.StatusUnauthorized,
			wantNext:     false,
		},
		{
			name:         "garbage token",
			requiredRole: role.RoleUser,
			setupRequest: func(t *testing.T, r *http.Request) {
				r.AddCookie(&http.Cookie{
					Name:  token.AccessTokenName(e),
					Value: "not-a-jwt",
				})
			},
			wantStatus: http.StatusUnauthorized,
			wantNext:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var gotUserID int64
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUserID, _ = token.UserIDFromCtx(r.Context())
			})

			handler := InjectEnv(e)(AuthorizeRequest(tt.requiredRole)(next))

			req := httptest.NewRequest(http.MethodGet, "/api/recipes", nil)
			tt.setupRequest(t, req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if nextCalled != tt.wantNext {
				t.Errorf("next called = %v, want %v", nextCalled, tt.wantNext)
			}
			if tt.wantNext && gotUserID == 0 {
				t.Error("user id was not injected into the request context")
			}
		})
	}
}

func TestAddRequestID(t *testing.T) {
	var got uint64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = requestid.ExtractRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	AddRequestID(next).ServeHTTP(rec, req)

	if got == 0 {
		t.Error("request id was not injected into the request context")
	}
}

func TestAddCors(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		origin     string
		wantOrigin string
	}{
		{
			name:       "dev reflects the request origin",
			env:        config.EnvDev,
			origin:     "http://localhost:3000",
			wantOrigin: "http://localhost:3000",
		},
		{
			name:       "prod pins the configured origin",
			env:        config.EnvProd,
			origin:     "http://evil.example",
			wantOrigin: "http://localhost:8080",
		},
		{
			name:       "no origin header falls back to host origin",
			env:        config.EnvDev,
			origin:     "",
			wantOrigin: "http://localhost:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret := config.AppSecretValue(testSecret)
			conf := config.Config{
				AppSecret:  config.AppSecret{Value: &secret, Version: "1"},
				HostOrigin: "http://localhost:8080",
				Env:        tt.env,
			}
			e := env.New(nil, nil, nil, conf)

			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
			handler := InjectEnv(e)(AddCors(next))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestAddCors_Preflight(t *testing.T) {
	e := newTestEnv(t)
	nextCalled := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { nextCalled = true })
	handler := InjectEnv(e)(AddCors(next))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if nextCalled {
		t.Error("next handler was called on a preflight request")
	}
}
