package errors

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestHttpCodeForDaoError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HttpCodeForDaoError(&DaoError{NotFound: true}))
	assert.Equal(t, http.StatusBadRequest, HttpCodeForDaoError(&DaoError{BadValidation: true}))
	assert.Equal(t, http.StatusConflict, HttpCodeForDaoError(&DaoError{AlreadyExists: true}))
	assert.Equal(t, http.StatusForbidden, HttpCodeForDaoError(&DaoError{Forbidden: true}))
	assert.Equal(t, http.StatusInternalServerError, HttpCodeForDaoError(&DaoError{}))
	assert.Equal(t, http.StatusInternalServerError, HttpCodeForDaoError(assert.AnError))
}

func TestNewErrorResponseFromError(t *testing.T) {
	resp := NewErrorResponseFromError("Error fetching organization", &DaoError{NotFound: true, Message: "Organization not found"})
	assert.Len(t, resp.Errors, 1)
	assert.Equal(t, http.StatusNotFound, resp.Errors[0].Status)
	assert.Equal(t, "Error fetching organization", resp.Errors[0].Title)
	assert.Equal(t, "Organization not found", resp.Errors[0].Detail)
}

func TestNewErrorResponseFromEchoError(t *testing.T) {
	resp := NewErrorResponseFromEchoError(echo.NewHTTPError(http.StatusForbidden, "forbidden"))
	assert.Len(t, resp.Errors, 1)
	assert.Equal(t, http.StatusForbidden, resp.Errors[0].Status)
	assert.Equal(t, "forbidden", resp.Errors[0].Detail)
}

func TestGetGeneralResponseCode(t *testing.T) {
	assert.Equal(t, 200, GetGeneralResponseCode(ErrorResponse{}))
	assert.Equal(t, 404, GetGeneralResponseCode(NewErrorResponse(404, "", "")))

	mixed := ErrorResponse{Errors: []HandlerError{
		{Status: 400}, {Status: 500},
	}}
	assert.Equal(t, 500, GetGeneralResponseCode(mixed))
}
