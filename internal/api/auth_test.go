package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthServiceVerifier_ValidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/validate-token", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"valid": true, "user_id": "u-123"}`))
	}))
	defer srv.Close()

	v := NewAuthServiceVerifier(srv.URL)
	userID, err := v.Verify(context.Background(), "some-token")
	require.NoError(t, err)
	assert.Equal(t, "u-123", userID)
}

func TestAuthServiceVerifier_InvalidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"valid": false}`))
	}))
	defer srv.Close()

	v := NewAuthServiceVerifier(srv.URL)
	_, err := v.Verify(context.Background(), "expired")
	assert.ErrorIs(t, err, errInvalidToken)
}

func TestAuthServiceVerifier_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	v := NewAuthServiceVerifier(srv.URL)
	_, err := v.Verify(context.Background(), "t")
	assert.Error(t, err)
}

func TestAuthServiceVerifier_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	v := NewAuthServiceVerifier(srv.URL)
	_, err := v.Verify(context.Background(), "t")
	assert.Error(t, err)
}

func TestExtractBearer(t *testing.T) {
	assert.Equal(t, "abc", extractBearer("Bearer abc"))
	assert.Equal(t, "", extractBearer(""))
	assert.Equal(t, "", extractBearer("abc"))
	assert.Equal(t, "", extractBearer("Basic abc"))
	assert.Equal(t, "a b", extractBearer("Bearer a b"))
}

func TestRoleAllowed(t *testing.T) {
	allowed := []string{"coordinator", "admin"}
	assert.True(t, roleAllowed("admin", allowed))
	assert.True(t, roleAllowed("coordinator", allowed))
	assert.False(t, roleAllowed("intake_staff", allowed))
	assert.False(t, roleAllowed("", allowed))
}

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RateLimitMiddleware(1))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	hits := 0
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)
		if w.Code == http.StatusOK {
			hits++
		}
	}
	assert.LessOrEqual(t, hits, 2, "burst of 1 admits at most the bucket size")
	assert.GreaterOrEqual(t, hits, 1)
}
