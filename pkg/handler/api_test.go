package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/config"
)

func serveRouter(req *http.Request) (int, []byte, error) {
	router := echo.New()
	router.HTTPErrorHandler = config.CustomHTTPErrorHandler
	RegisterPing(router)
	RegisterRoutes(router)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	response := rr.Result()
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	return response.StatusCode, body, err
}

func TestPing(t *testing.T) {
	paths := []string{"/ping", "/ping/"}
	for _, path := range paths {
		req, _ := http.NewRequest("GET", path, nil)
		code, body, err := serveRouter(req)
		assert.Nil(t, err)
		assert.Equal(t, http.StatusOK, code)

		expected := "{\"message\":\"pong\"}\n"
		assert.Equal(t, expected, string(body))
	}
}

func TestPingUnderRootIsNotAvailable(t *testing.T) {
	paths := []string{
		api.FullRootPath() + "/ping",
		api.FullRootPath() + "/ping/",
		api.MajorRootPath() + "/ping",
		api.MajorRootPath() + "/ping/",
	}
	for _, path := range paths {
		t.Log(path)
		req, _ := http.NewRequest("GET", path, nil)
		code, body, err := serveRouter(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, code)

		expected := "{\"errors\":[{\"status\":404,\"detail\":\"Not Found\"}]}\n"
		assert.Equal(t, expected, string(body))
	}
}

func getTestContext(params string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, api.FullRootPath()+"/organizations/abcd/tickets/"+params, nil)
	rec := httptest.NewRecorder()
	e := echo.New()
	return e.NewContext(req, rec)
}

func TestRootRoute(t *testing.T) {
	assert.Equal(t, api.FullRootPath(), "/api/"+config.DefaultAppName+"/v1.0")
}

func TestParsePagination(t *testing.T) {
	pageInfo := ParsePagination(getTestContext(""))
	assert.Equal(t, DefaultLimit, pageInfo.Limit)
	assert.Equal(t, 0, pageInfo.Offset)

	pageInfo = ParsePagination(getTestContext("?limit=37&offset=123"))
	assert.Equal(t, 37, pageInfo.Limit)
	assert.Equal(t, 123, pageInfo.Offset)

	pageInfo = ParsePagination(getTestContext("?limit=5000"))
	assert.Equal(t, MaxLimit, pageInfo.Limit)

	pageInfo = ParsePagination(getTestContext("?sort_by[]=status&sort_by[]=priority:asc&sort_by[]=created_at:desc"))
	assert.Equal(t, "status,priority:asc,created_at:desc", pageInfo.SortBy)

	pageInfo = ParsePagination(getTestContext("?sort_by=status"))
	assert.Equal(t, "status", pageInfo.SortBy)
}

func TestParseTicketFilters(t *testing.T) {
	filters := ParseTicketFilters(getTestContext(""))
	assert.Equal(t, DefaultSearch, filters.Search)
	assert.Equal(t, DefaultStatus, filters.Status)

	filters = ParseTicketFilters(getTestContext("?search=printer&status=open&priority=high&category_uuid=abcd&assigned_to=efgh"))
	assert.Equal(t, "printer", filters.Search)
	assert.Equal(t, "open", filters.Status)
	assert.Equal(t, "high", filters.Priority)
	assert.Equal(t, "abcd", filters.CategoryUUID)
	assert.Equal(t, "efgh", filters.AssignedTo)
}

func TestCollectionResponse(t *testing.T) {
	coll := api.TicketCollectionResponse{}

	setCollectionResponseMetadata(&coll, getTestContext("?offset=0&limit=1"), 10)
	assert.Equal(t, 0, coll.Meta.Offset)
	assert.NotEmpty(t, coll.Links.First)
	assert.NotEmpty(t, coll.Links.Last)
	assert.Empty(t, coll.Links.Prev)
	assert.NotEmpty(t, coll.Links.Next)

	setCollectionResponseMetadata(&coll, getTestContext("?offset=10&limit=1"), 10)
	assert.NotEmpty(t, coll.Links.First)
	assert.NotEmpty(t, coll.Links.Last)
	assert.NotEmpty(t, coll.Links.Prev)
	assert.Empty(t, coll.Links.Next)

	setCollectionResponseMetadata(&coll, getTestContext("?offset=5&limit=1"), 10)
	assert.NotEmpty(t, coll.Links.First)
	assert.NotEmpty(t, coll.Links.Last)
	assert.NotEmpty(t, coll.Links.Prev)
	assert.NotEmpty(t, coll.Links.Next)
}

func TestCreateLink(t *testing.T) {
	link := createLink(getTestContext(""), 99)
	assert.Equal(t, api.FullRootPath()+"/organizations/abcd/tickets/?limit=100&offset=99", link)

	link = createLink(getTestContext("?status=open&priority=high"), 0)
	assert.Equal(t, api.FullRootPath()+"/organizations/abcd/tickets/?limit=100&offset=0&priority=high&status=open", link)
}
