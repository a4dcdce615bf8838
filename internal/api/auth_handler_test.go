package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/service"
	"github.com/careergenie/careergenie-api/internal/store"
)

func postJSON(t *testing.T, url, token string, body any) *http.Response {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(encoded))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func postPut(t *testing.T, url, token string, body any) *http.Response {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(encoded))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func getWithToken(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("success returns token pair", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		userID := uuid.New()
		env.users.registerFn = func(ctx context.Context, email, password string) (*domain.User, error) {
			assert.Equal(t, "new@example.com", email)
			return &domain.User{ID: userID, Email: email}, nil
		}

		resp := postJSON(t, env.server.URL+"/api/auth/register", "", RegisterRequest{
			Email:    "new@example.com",
			Password: "a-long-password",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decodeBody[AuthResponse](t, resp)
		assert.Equal(t, userID, body.UserID)
		assert.Equal(t, "access-"+userID.String(), body.AccessToken)
		assert.Equal(t, "refresh-"+userID.String(), body.RefreshToken)
	})

	t.Run("duplicate email returns conflict", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.users.registerFn = func(ctx context.Context, email, password string) (*domain.User, error) {
			return nil, fmt.Errorf("failed to create user: %w", store.ErrEmailExists)
		}

		resp := postJSON(t, env.server.URL+"/api/auth/register", "", RegisterRequest{
			Email:    "taken@example.com",
			Password: "a-long-password",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("short password rejected by validation", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		resp := postJSON(t, env.server.URL+"/api/auth/register", "", RegisterRequest{
			Email:    "new@example.com",
			Password: "short",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		userID := uuid.New()
		env.users.authenticateFn = func(ctx context.Context, email, password string) (*domain.User, error) {
			return &domain.User{ID: userID, Email: email}, nil
		}

		resp := postJSON(t, env.server.URL+"/api/auth/login", "", LoginRequest{
			Email:    "user@example.com",
			Password: "whatever-works",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[AuthResponse](t, resp)
		assert.Equal(t, userID, body.UserID)
	})

	t.Run("wrong credentials return unauthorized", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.users.authenticateFn = func(ctx context.Context, email, password string) (*domain.User, error) {
			return nil, service.ErrInvalidCredentials
		}

		resp := postJSON(t, env.server.URL+"/api/auth/login", "", LoginRequest{
			Email:    "user@example.com",
			Password: "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		body := decodeBody[map[string]any](t, resp)
		assert.Equal(t, "Invalid credentials", body["error"])
	})
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("valid refresh token returns new pair", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		resp := postJSON(t, env.server.URL+"/api/auth/refresh", "", RefreshTokenRequest{
			RefreshToken: "refresh-" + env.userID.String(),
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[RefreshTokenResponse](t, resp)
		assert.Equal(t, "access-"+env.userID.String(), body.AccessToken)
		assert.NotEmpty(t, body.RefreshToken)
	})

	t.Run("garbage refresh token rejected", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		resp := postJSON(t, env.server.URL+"/api/auth/refresh", "", RefreshTokenRequest{
			RefreshToken: "not-a-real-token",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()
		resp := getWithToken(t, env.server.URL+"/api/profile", "")
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid token", func(t *testing.T) {
		t.Parallel()
		resp := getWithToken(t, env.server.URL+"/api/profile", "bogus")
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
