package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestAtoiOr(t *testing.T) {
	assert.Equal(t, 5, atoiOr("5", 1))
	assert.Equal(t, 1, atoiOr("", 1))
	assert.Equal(t, 1, atoiOr("abc", 1))
	assert.Equal(t, -3, atoiOr("-3", 1))
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitCSV("a, b ,c"))
	assert.Equal(t, []string{"one"}, splitCSV("one"))
	assert.Empty(t, splitCSV(" , ,"))
}

func ctxWithQuery(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestPageSize(t *testing.T) {
	page, size := pageSize(ctxWithQuery("page=3&size=50"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, size)

	// defaults and clamping
	page, size = pageSize(ctxWithQuery(""))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)

	// oversized size clamps to the cap instead of falling back to the default
	page, size = pageSize(ctxWithQuery("page=0&size=500"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, size)

	page, size = pageSize(ctxWithQuery("size=-1"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)
}

func TestValidDate(t *testing.T) {
	assert.True(t, validDate("2025-03-09"))
	assert.False(t, validDate("09/03/2025"))
	assert.False(t, validDate("2025-13-40"))
	assert.False(t, validDate(""))
}
