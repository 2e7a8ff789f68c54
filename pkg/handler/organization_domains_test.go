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

const domainTestOrg = "12121212-3434-5656-7878-909090909090"

type OrganizationDomainSuite struct {
	suite.Suite
	reg *dao.MockDaoRegistry
}

func TestOrganizationDomainSuite(t *testing.T) {
	suite.Run(t, new(OrganizationDomainSuite))
}

func (suite *OrganizationDomainSuite) SetupTest() {
	suite.reg = dao.GetMockDaoRegistry(suite.T())
}

func (suite *OrganizationDomainSuite) serveDomainsRouter(req *http.Request) (int, []byte, error) {
	router := echo.New()
	router.Use(middleware.EnforceIdentityWithSkipper(middleware.SkipAuth))
	router.HTTPErrorHandler = config.CustomHTTPErrorHandler
	pathPrefix := router.Group(api.FullRootPath())

	RegisterOrganizationDomainRoutes(pathPrefix, suite.reg.ToDaoRegistry())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	response := rr.Result()
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	return response.StatusCode, body, err
}

func (suite *OrganizationDomainSuite) domainsPath() string {
	return fmt.Sprintf("%s/organizations/%s/domains/", api.FullRootPath(), domainTestOrg)
}

func (suite *OrganizationDomainSuite) TestList() {
	t := suite.T()

	collection := api.OrganizationDomainCollectionResponse{
		Data: []api.OrganizationDomainResponse{
			{UUID: "domain-1", OrganizationUUID: domainTestOrg, Domain: "example.com"},
		},
	}
	paginationData := api.PaginationData{Limit: DefaultLimit, Offset: DefaultOffset}
	suite.reg.Domain.On("List", test.MockCtx(), domainTestOrg, paginationData).
		Return(collection, int64(1), nil)

	req := httptest.NewRequest(http.MethodGet, suite.domainsPath(), nil)
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, body, err := suite.serveDomainsRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, code)

	response := api.OrganizationDomainCollectionResponse{}
	err = json.Unmarshal(body, &response)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), response.Meta.Count)
	assert.Equal(t, "example.com", response.Data[0].Domain)
}

func (suite *OrganizationDomainSuite) TestAdd() {
	t := suite.T()

	request := api.OrganizationDomainRequest{Domain: utils.Ptr("example.com")}
	expected := api.OrganizationDomainResponse{
		UUID:             "domain-1",
		OrganizationUUID: domainTestOrg,
		Domain:           "example.com",
	}
	suite.reg.Domain.On("Create", test.MockCtx(), domainTestOrg, request).Return(expected, nil)

	body, err := json.Marshal(request)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, suite.domainsPath(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, respBody, err := suite.serveDomainsRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusCreated, code)

	response := api.OrganizationDomainResponse{}
	err = json.Unmarshal(respBody, &response)
	assert.Nil(t, err)
	assert.Equal(t, expected.Domain, response.Domain)
}

func (suite *OrganizationDomainSuite) TestAddDuplicate() {
	t := suite.T()

	request := api.OrganizationDomainRequest{Domain: utils.Ptr("example.com")}
	daoError := ce.DaoError{
		AlreadyExists: true,
		Message:       "Domain already allowed",
	}
	suite.reg.Domain.On("Create", test.MockCtx(), domainTestOrg, request).
		Return(api.OrganizationDomainResponse{}, &daoError)

	body, err := json.Marshal(request)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, suite.domainsPath(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, _, err := suite.serveDomainsRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusConflict, code)
}

func (suite *OrganizationDomainSuite) TestRemove() {
	t := suite.T()

	suite.reg.Domain.On("Delete", test.MockCtx(), domainTestOrg, "domain-1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, suite.domainsPath()+"domain-1", nil)
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, _, err := suite.serveDomainsRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusNoContent, code)
}

func (suite *OrganizationDomainSuite) TestRemoveNotFound() {
	t := suite.T()

	daoError := ce.DaoError{
		NotFound: true,
		Message:  "Could not find domain",
	}
	suite.reg.Domain.On("Delete", test.MockCtx(), domainTestOrg, "bad-uuid").Return(&daoError)

	req := httptest.NewRequest(http.MethodDelete, suite.domainsPath()+"bad-uuid", nil)
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, _, err := suite.serveDomainsRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusNotFound, code)
}
