package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-elra/internal/auth"
	autherrors "go-elra/internal/auth/errors"
	"go-elra/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAuthService struct {
	loginFn   func(ctx context.Context, email, password string) (auth.TokenPair, auth.AuthResponse, error)
	refreshFn func(ctx context.Context, token string) (auth.TokenPair, auth.AuthResponse, error)
	meFn      func(ctx context.Context, userID string) (auth.AuthResponse, error)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (auth.TokenPair, auth.AuthResponse, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthService) RefreshToken(ctx context.Context, token string) (auth.TokenPair, auth.AuthResponse, error) {
	return f.refreshFn(ctx, token)
}

func (f *fakeAuthService) GetMe(ctx context.Context, userID string) (auth.AuthResponse, error) {
	return f.meFn(ctx, userID)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func postJSON(h gin.HandlerFunc, body any, headers map[string]string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth", &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}

	h(c)
	return w
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &fakeAuthService{
		loginFn: func(ctx context.Context, email, password string) (auth.TokenPair, auth.AuthResponse, error) {
			if password != "secret123" {
				return auth.TokenPair{}, auth.AuthResponse{}, autherrors.ErrInvalidCredentials
			}
			return auth.TokenPair{AccessToken: "a", RefreshToken: "r"}, auth.AuthResponse{Email: email}, nil
		},
	}
	h := auth.NewHandler(svc)

	t.Run("api client gets tokens in body", func(t *testing.T) {
		w := postJSON(h.Login, map[string]string{"email": "hana@elra.test", "password": "secret123"}, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Values("Set-Cookie"))
		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var data map[string]any
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "a", data["access_token"])
	})

	t.Run("web client gets cookies", func(t *testing.T) {
		w := postJSON(h.Login, map[string]string{"email": "hana@elra.test", "password": "secret123"},
			map[string]string{"X-Client-Type": "web"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, w.Header().Values("Set-Cookie"), 2)
	})

	t.Run("bad credentials", func(t *testing.T) {
		w := postJSON(h.Login, map[string]string{"email": "hana@elra.test", "password": "x"}, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		w := postJSON(h.Login, map[string]string{"email": "not-an-email"}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	svc := &fakeAuthService{
		refreshFn: func(ctx context.Context, token string) (auth.TokenPair, auth.AuthResponse, error) {
			assert.Equal(t, "r", token)
			return auth.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, auth.AuthResponse{}, nil
		},
	}
	h := auth.NewHandler(svc)

	w := postJSON(h.RefreshToken, map[string]string{"refresh_token": "r"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(h.RefreshToken, map[string]string{}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(h.RefreshToken, nil, map[string]string{"X-Client-Type": "web"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeAuthService{
		meFn: func(ctx context.Context, userID string) (auth.AuthResponse, error) {
			return auth.AuthResponse{ID: userID}, nil
		},
	}
	h := auth.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	c.Set(middleware.ContextUserID, "u-1")
	h.Me(c)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	h.Me(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(h.Logout, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	for _, cookie := range w.Header().Values("Set-Cookie") {
		assert.Contains(t, cookie, "Max-Age=0")
	}
}
