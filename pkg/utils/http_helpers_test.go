package utils

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("search", "chair")
	values.Set("sort[created_at]", "DESC")
	values.Set("sort[name]", "sideways")
	values.Add("filter[name]", "Chair")
	values.Set("limit", "10")
	values.Set("page", "3")

	f := ParseFilterFromQuery(values)

	assert.Equal(t, "chair", f.Search)
	assert.Equal(t, map[string]string{"created_at": "desc"}, f.Sort)
	assert.Equal(t, "Chair", f.Filter["name"])
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, 20, f.Offset)
	assert.True(t, f.WithPagination)
}

func TestParseFilterCapsLimit(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{"limit": {"100000"}, "withPagination": {"false"}})
	assert.Equal(t, MaxLimit, f.Limit)
	assert.False(t, f.WithPagination)
}

func TestParseUUIDParam(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("roomID")

	id := uuid.New()
	c.SetParamValues(id.String())
	got, err := ParseUUIDParam(c, "roomID")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	c.SetParamValues("12")
	_, err = ParseUUIDParam(c, "roomID")
	assert.Error(t, err)
}
