package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signTest(t *testing.T, sub uint, role string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"name": "Test User",
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func invoke(authHeader string, mw ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return rec, h(c)
}

func TestRequireAuthValidToken(t *testing.T) {
	tok := signTest(t, 7, "owner", time.Hour)
	rec, err := invoke("Bearer "+tok, RequireAuth(testSecret))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthMissingHeader(t *testing.T) {
	_, err := invoke("", RequireAuth(testSecret))
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	_, err := invoke("Token abc", RequireAuth(testSecret))
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	tok := signTest(t, 7, "owner", time.Hour)
	_, err := invoke("Bearer "+tok, RequireAuth("other-secret"))
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	tok := signTest(t, 7, "owner", -time.Hour)
	_, err := invoke("Bearer "+tok, RequireAuth(testSecret))
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthSetsContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signTest(t, 42, "extension", time.Hour))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUID uint
	var gotRole string
	h := RequireAuth(testSecret)(func(c echo.Context) error {
		gotUID, _ = c.Get("user_id").(uint)
		gotRole, _ = c.Get("role").(string)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, uint(42), gotUID)
	assert.Equal(t, "extension", gotRole)
}

func TestRequireRole(t *testing.T) {
	run := func(role string, allowed ...string) error {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.Set("role", role)
		h := RequireRole(allowed...)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
		return h(c)
	}

	assert.NoError(t, run("admin", "admin"))
	assert.NoError(t, run("Admin", "admin")) // case-insensitive
	assert.NoError(t, run("extension", "extension", "admin"))

	err := run("worker", "admin")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)

	err = run("", "admin")
	he, ok = err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}
