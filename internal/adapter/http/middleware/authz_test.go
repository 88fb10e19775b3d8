package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balwinder10003-code/ATTRAAH/configs"
)

func authzConfig() configs.Config {
	var cfg configs.Config
	cfg.Security.JWTSecret = "test-secret"
	cfg.Security.Issuer = "attraah-orderbot"
	cfg.Security.Audience = "chat-gateway"
	return cfg
}

func signToken(t *testing.T, cfg configs.Config, perms []string, mutate func(jwt.MapClaims)) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   cfg.Security.Issuer,
		"aud":   cfg.Security.Audience,
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   now.Add(10 * time.Minute).Unix(),
		"perms": perms,
	}
	if mutate != nil {
		mutate(claims)
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Security.JWTSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(cfg configs.Config, authHeader string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/events", NewAuthz(cfg).Require("events.write"), func(c *gin.Context) {
		c.JSON(http.StatusAccepted, gin.H{"accepted": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/events", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthzAllowsValidToken(t *testing.T) {
	cfg := authzConfig()
	token := signToken(t, cfg, []string{"events.write"}, nil)
	w := doRequest(cfg, "Bearer "+token)
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestAuthzRejectsMissingHeader(t *testing.T) {
	w := doRequest(authzConfig(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthzRejectsWrongSecret(t *testing.T) {
	cfg := authzConfig()
	other := authzConfig()
	other.Security.JWTSecret = "another-secret"
	token := signToken(t, other, []string{"events.write"}, nil)
	w := doRequest(cfg, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthzRejectsExpiredToken(t *testing.T) {
	cfg := authzConfig()
	token := signToken(t, cfg, []string{"events.write"}, func(c jwt.MapClaims) {
		c["exp"] = time.Now().Add(-time.Hour).Unix()
	})
	w := doRequest(cfg, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthzRejectsAudienceMismatch(t *testing.T) {
	cfg := authzConfig()
	token := signToken(t, cfg, []string{"events.write"}, func(c jwt.MapClaims) {
		c["aud"] = "someone-else"
	})
	w := doRequest(cfg, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthzRejectsMissingPermission(t *testing.T) {
	cfg := authzConfig()
	token := signToken(t, cfg, []string{"orders.read"}, nil)
	w := doRequest(cfg, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
