package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/config"
	"github.com/ticketing-services/ticketing-backend/pkg/dao"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
	"github.com/ticketing-services/ticketing-backend/pkg/middleware"
	"github.com/ticketing-services/ticketing-backend/pkg/test"
	test_handler "github.com/ticketing-services/ticketing-backend/pkg/test/handler"
	"github.com/ticketing-services/ticketing-backend/pkg/utils"
)

const categoryTestOrg = "99999999-8888-7777-6666-555555555555"

type TicketCategorySuite struct {
	suite.Suite
	reg *dao.MockDaoRegistry
}

func TestTicketCategorySuite(t *testing.T) {
	suite.Run(t, new(TicketCategorySuite))
}

func (suite *TicketCategorySuite) SetupTest() {
	suite.reg = dao.GetMockDaoRegistry(suite.T())
}

func (suite *TicketCategorySuite) serveCategoriesRouter(req *http.Request) (int, []byte, error) {
	router := echo.New()
	router.Use(middleware.EnforceIdentityWithSkipper(middleware.SkipAuth))
	router.HTTPErrorHandler = config.CustomHTTPErrorHandler
	pathPrefix := router.Group(api.FullRootPath())

	RegisterTicketCategoryRoutes(pathPrefix, suite.reg.ToDaoRegistry())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	response := rr.Result()
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	return response.StatusCode, body, err
}

func (suite *TicketCategorySuite) categoriesPath() string {
	return fmt.Sprintf("%s/organizations/%s/categories/", api.FullRootPath(), categoryTestOrg)
}

func (suite *TicketCategorySuite) TestList() {
	t := suite.T()

	collection := api.TicketCategoryCollectionResponse{
		Data: []api.TicketCategoryResponse{
			{UUID: "cat-1", OrganizationUUID: categoryTestOrg, Name: "Billing", IsActive: true},
			{UUID: "cat-2", OrganizationUUID: categoryTestOrg, Name: "Hardware", IsActive: false},
		},
	}
	paginationData := api.PaginationData{Limit: DefaultLimit, Offset: DefaultOffset}
	suite.reg.TicketCategory.On("List", test.MockCtx(), categoryTestOrg, paginationData).
		Return(collection, int64(2), nil)

	req := httptest.NewRequest(http.MethodGet, suite.categoriesPath(), nil)
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, body, err := suite.serveCategoriesRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, code)

	response := api.TicketCategoryCollectionResponse{}
	err = json.Unmarshal(body, &response)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), response.Meta.Count)
	assert.Equal(t, "Billing", response.Data[0].Name)
}

func (suite *TicketCategorySuite) TestCreate() {
	t := suite.T()

	request := api.TicketCategoryRequest{
		Name:  utils.Ptr("Billing"),
		Color: utils.Ptr("#ff0000"),
	}
	expected := api.TicketCategoryResponse{
		UUID:             "cat-1",
		OrganizationUUID: categoryTestOrg,
		Name:             "Billing",
		Color:            "#ff0000",
		IsActive:         true,
	}
	suite.reg.TicketCategory.On("Create", test.MockCtx(), categoryTestOrg, request).Return(expected, nil)

	body, err := json.Marshal(request)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, suite.categoriesPath(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, respBody, err := suite.serveCategoriesRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusCreated, code)

	response := api.TicketCategoryResponse{}
	err = json.Unmarshal(respBody, &response)
	assert.Nil(t, err)
	assert.Equal(t, expected.UUID, response.UUID)
}

func (suite *TicketCategorySuite) TestCreateDuplicateName() {
	t := suite.T()

	request := api.TicketCategoryRequest{Name: utils.Ptr("Billing")}
	daoError := ce.DaoError{
		AlreadyExists: true,
		Message:       "Category with this name already exists",
	}
	suite.reg.TicketCategory.On("Create", test.MockCtx(), categoryTestOrg, request).
		Return(api.TicketCategoryResponse{}, &daoError)

	body, err := json.Marshal(request)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, suite.categoriesPath(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, _, err := suite.serveCategoriesRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusConflict, code)
}

func (suite *TicketCategorySuite) TestFetch() {
	t := suite.T()

	expected := api.TicketCategoryResponse{
		UUID:             "cat-1",
		OrganizationUUID: categoryTestOrg,
		Name:             "Billing",
		IsActive:         true,
	}
	suite.reg.TicketCategory.On("Fetch", test.MockCtx(), categoryTestOrg, "cat-1").Return(expected, nil)

	req := httptest.NewRequest(http.MethodGet, suite.categoriesPath()+"cat-1", nil)
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, body, err := suite.serveCategoriesRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, code)

	response := api.TicketCategoryResponse{}
	err = json.Unmarshal(body, &response)
	assert.Nil(t, err)
	assert.Equal(t, expected.Name, response.Name)
}

func (suite *TicketCategorySuite) TestFullUpdate() {
	t := suite.T()

	request := api.TicketCategoryRequest{Name: utils.Ptr("Invoices")}
	filled := request
	filled.FillDefaults()

	expected := api.TicketCategoryResponse{
		UUID:             "cat-1",
		OrganizationUUID: categoryTestOrg,
		Name:             "Invoices",
		IsActive:         true,
	}
	suite.reg.TicketCategory.On("Update", test.MockCtx(), categoryTestOrg, "cat-1", filled).Return(nil)
	suite.reg.TicketCategory.On("Fetch", test.MockCtx(), categoryTestOrg, "cat-1").Return(expected, nil)

	body, err := json.Marshal(request)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, suite.categoriesPath()+"cat-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, respBody, err := suite.serveCategoriesRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, code)

	response := api.TicketCategoryResponse{}
	err = json.Unmarshal(respBody, &response)
	assert.Nil(t, err)
	assert.Equal(t, "Invoices", response.Name)
}

func (suite *TicketCategorySuite) TestDelete() {
	t := suite.T()

	suite.reg.TicketCategory.On("Delete", test.MockCtx(), categoryTestOrg, "cat-1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, suite.categoriesPath()+"cat-1", nil)
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, _, err := suite.serveCategoriesRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusNoContent, code)
}

func (suite *TicketCategorySuite) TestDeleteNotFound() {
	t := suite.T()

	daoError := ce.DaoError{
		NotFound: true,
		Message:  "Could not find category",
	}
	suite.reg.TicketCategory.On("Delete", test.MockCtx(), categoryTestOrg, "bad-uuid").Return(&daoError)

	req := httptest.NewRequest(http.MethodDelete, suite.categoriesPath()+"bad-uuid", nil)
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, _, err := suite.serveCategoriesRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusNotFound, code)
}
