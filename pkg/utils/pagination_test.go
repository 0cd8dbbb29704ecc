package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, query string) PaginationParams {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	return GetPaginationParams(e.NewContext(req, rec))
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	p := paramsFor(t, "")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
	assert.Equal(t, 0, p.Offset)
}

func TestGetPaginationParamsOffset(t *testing.T) {
	p := paramsFor(t, "page=3&limit=10")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, 20, p.Offset)
}

func TestGetPaginationParamsClampsBadInput(t *testing.T) {
	p := paramsFor(t, "page=-1&limit=5000")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
}
