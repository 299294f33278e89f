// internal/auth/basic_test.go
package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"competition-intake/internal/common/config"
	"competition-intake/internal/common/logger"

	"github.com/stretchr/testify/assert"
)

func setupGate(t *testing.T) http.Handler {
	gate := NewBasicAuth(config.AdminConfig{
		Username: "admin",
		Password: "s3cret",
	}, logger.NewTestLogger(t))

	return gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestBasicAuth_MissingCredentials(t *testing.T) {
	handler := setupGate(t)

	req := httptest.NewRequest(http.MethodGet, "/api/applications", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic")
}

func TestBasicAuth_WrongPassword(t *testing.T) {
	handler := setupGate(t)

	req := httptest.NewRequest(http.MethodGet, "/api/applications", nil)
	req.SetBasicAuth("admin", "wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBasicAuth_WrongUsername(t *testing.T) {
	handler := setupGate(t)

	req := httptest.NewRequest(http.MethodGet, "/api/applications", nil)
	req.SetBasicAuth("root", "s3cret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBasicAuth_ValidCredentials(t *testing.T) {
	handler := setupGate(t)

	req := httptest.NewRequest(http.MethodGet, "/api/applications", nil)
	req.SetBasicAuth("admin", "s3cret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
