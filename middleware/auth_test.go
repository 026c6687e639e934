package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func authedHandler(gotUser *string) http.Handler {
	return Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := UserID(r); ok {
			*gotUser = id
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthAcceptsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	var gotUser string
	req := httptest.NewRequest("GET", "/log", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "user-123"))
	rec := httptest.NewRecorder()

	authedHandler(&gotUser).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-123", gotUser)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	req := httptest.NewRequest("GET", "/log", nil)
	rec := httptest.NewRecorder()
	var gotUser string
	authedHandler(&gotUser).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsBadSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "a different secret")

	req := httptest.NewRequest("GET", "/log", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "user-123"))
	rec := httptest.NewRecorder()
	var gotUser string
	authedHandler(&gotUser).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, gotUser)
}

func TestAuthRejectsTokenWithoutSubject(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/log", nil)
	req.Header.Set("Authorization", "Bearer "+s)
	rec := httptest.NewRecorder()
	var gotUser string
	authedHandler(&gotUser).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
