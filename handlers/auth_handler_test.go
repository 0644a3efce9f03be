package handlers

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenLoginKeepsPasswordWhitespace(t *testing.T) {
	setupTestDB(t)
	h := NewAuthHandler("test-secret")

	// a password with leading and trailing spaces is legal
	body := `{"email":"musa@farm.test","password":"  open sesame  ","name":"Musa"}`
	c, rec := newJSONContext(http.MethodPost, "/auth/register", body)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// login must compare the exact string that was registered
	c, rec = newJSONContext(http.MethodPost, "/auth/login",
		`{"email":"musa@farm.test","password":"  open sesame  "}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token")

	// the trimmed variant is a different password
	c, _ = newJSONContext(http.MethodPost, "/auth/login",
		`{"email":"musa@farm.test","password":"open sesame"}`)
	err := h.Login(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupTestDB(t)
	h := NewAuthHandler("test-secret")

	body := `{"email":"dup@farm.test","password":"longenough"}`
	c, rec := newJSONContext(http.MethodPost, "/auth/register", body)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	c, _ = newJSONContext(http.MethodPost, "/auth/register", body)
	err := h.Register(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}
