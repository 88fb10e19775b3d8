package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balwinder10003-code/ATTRAAH/configs"
)

func tokenConfig() configs.Config {
	var cfg configs.Config
	cfg.Security.JWTSecret = "test-secret"
	cfg.Security.Issuer = "attraah-orderbot"
	cfg.Security.Audience = "chat-gateway"
	cfg.Security.TTL = 15 * time.Minute
	cfg.Security.GatewayID = "chat-gateway"
	cfg.Security.GatewaySecret = "gw-secret"
	return cfg
}

func postToken(t *testing.T, cfg configs.Config, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/token", NewTokenHandler(cfg).IssueToken)

	req := httptest.NewRequest(http.MethodPost, "/v1/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIssueTokenForGateway(t *testing.T) {
	cfg := tokenConfig()
	w := postToken(t, cfg, url.Values{
		"client_id":     {"chat-gateway"},
		"client_secret": {"gw-secret"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")

	// The issued token must verify against the configured secret and
	// carry the events.write permission.
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (any, error) {
		return []byte(cfg.Security.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "attraah-orderbot", claims["iss"])
	assert.Equal(t, []any{"events.write"}, claims["perms"])
}

func TestIssueTokenRejectsBadSecret(t *testing.T) {
	w := postToken(t, tokenConfig(), url.Values{
		"client_id":     {"chat-gateway"},
		"client_secret": {"wrong"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIssueTokenRejectsUnknownClient(t *testing.T) {
	w := postToken(t, tokenConfig(), url.Values{
		"client_id":     {"someone-else"},
		"client_secret": {"gw-secret"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIssueTokenRejectsEmptyCredentials(t *testing.T) {
	w := postToken(t, tokenConfig(), url.Values{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
