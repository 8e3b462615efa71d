package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pigeon_chat_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/whoami", JWTAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("uuid"))
	})
	return engine
}

func doRequest(engine *gin.Engine, target, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthAcceptsBearerToken(t *testing.T) {
	jwt.Init("test-secret", 30, 168)
	engine := newProtectedRouter()

	token, err := jwt.GenerateAccessToken("U123")
	require.NoError(t, err)

	rec := doRequest(engine, "/whoami", "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "U123", rec.Body.String())
}

func TestJWTAuthAcceptsQueryToken(t *testing.T) {
	jwt.Init("test-secret", 30, 168)
	engine := newProtectedRouter()

	token, err := jwt.GenerateAccessToken("U123")
	require.NoError(t, err)

	// Websocket upgrades cannot set headers from the browser.
	rec := doRequest(engine, "/whoami?token="+token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "U123", rec.Body.String())
}

func TestJWTAuthRejectsMissingAndMalformed(t *testing.T) {
	jwt.Init("test-secret", 30, 168)
	engine := newProtectedRouter()

	rec := doRequest(engine, "/whoami", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(engine, "/whoami", "Token abc")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(engine, "/whoami", "Bearer not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsRefreshToken(t *testing.T) {
	jwt.Init("test-secret", 30, 168)
	engine := newProtectedRouter()

	refresh, _, err := jwt.GenerateRefreshToken("U123")
	require.NoError(t, err)

	rec := doRequest(engine, "/whoami", "Bearer "+refresh)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
