package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// TokenVerifier checks a bearer token against the external identity
// provider. Identity lives outside this service; only role assignments are
// local.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (userID string, err error)
}

var errInvalidToken = errors.New("invalid or expired token")

// AuthServiceVerifier validates tokens by calling the auth service.
type AuthServiceVerifier struct {
	url    string
	client *http.Client
}

func NewAuthServiceVerifier(url string) *AuthServiceVerifier {
	return &AuthServiceVerifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *AuthServiceVerifier) Verify(ctx context.Context, token string) (string, error) {
	payload, _ := json.Marshal(map[string]string{"token": token})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url+"/validate-token", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Valid  bool   `json:"valid"`
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("error decoding resp.Body: %w", err)
	}

	if !result.Valid || result.UserID == "" {
		return "", errInvalidToken
	}
	return result.UserID, nil
}

// authorize gates a route on a verified token plus one of the allowed roles.
// The verified user id and role are stored in the gin context for handlers.
func (h *Handler) authorize(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		userID, err := h.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		role, err := h.roles.GetRole(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch role"})
			return
		}
		if !roleAllowed(role, allowed) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func extractBearer(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func roleAllowed(role string, allowed []string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
