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

	"github.com/BruksfildServices01/rdv-service/internal/audit"
	"github.com/BruksfildServices01/rdv-service/internal/logger"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func sign(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func securedEngine() *gin.Engine {
	r := gin.New()
	g := r.Group("/", AuthMiddleware(secret))
	g.GET("/whoami", func(c *gin.Context) {
		actor := audit.ActorFrom(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"id": c.GetUint(ContextUserID), "actor": *actor})
	})
	g.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := securedEngine()
	exp := time.Now().Add(time.Hour).Unix()

	w := do(r, "/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing_authorization_header")

	w = do(r, "/whoami", sign(t, jwt.MapClaims{"sub": 3, "exp": exp}, "other"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/whoami", sign(t, jwt.MapClaims{"sub": 3, "exp": time.Now().Add(-time.Minute).Unix()}, secret))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/whoami", sign(t, jwt.MapClaims{"sub": 3, "role": "member", "exp": exp}, secret))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":3,"actor":3}`, w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	r := securedEngine()
	exp := time.Now().Add(time.Hour).Unix()

	w := do(r, "/admin", sign(t, jwt.MapClaims{"sub": 3, "role": "member", "exp": exp}, secret))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, "/admin", sign(t, jwt.MapClaims{"sub": 1, "role": "admin", "exp": exp}, secret))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(1, 2)
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	r := gin.New()
	r.GET("/login", l.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, "/login", "").Code)
	assert.Equal(t, http.StatusOK, do(r, "/login", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, "/login", "").Code)

	fixed = fixed.Add(time.Second)
	assert.Equal(t, http.StatusOK, do(r, "/login", "").Code)
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://rdv.example.fr"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://rdv.example.fr")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://rdv.example.fr", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLoggerSetsID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(logger.Discard()), Metrics())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, "/x", "")
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(HeaderRequestID))
}
