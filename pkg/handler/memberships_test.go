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
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"github.com/ticketing-services/ticketing-backend/pkg/test"
	test_handler "github.com/ticketing-services/ticketing-backend/pkg/test/handler"
	"github.com/ticketing-services/ticketing-backend/pkg/utils"
)

const membershipTestOrg = "11111111-2222-3333-4444-555555555555"

type MembershipSuite struct {
	suite.Suite
	reg *dao.MockDaoRegistry
}

func TestMembershipSuite(t *testing.T) {
	suite.Run(t, new(MembershipSuite))
}

func (suite *MembershipSuite) SetupTest() {
	suite.reg = dao.GetMockDaoRegistry(suite.T())
}

func (suite *MembershipSuite) serveMembersRouter(req *http.Request) (int, []byte, error) {
	router := echo.New()
	router.Use(middleware.EnforceIdentityWithSkipper(middleware.SkipAuth))
	router.HTTPErrorHandler = config.CustomHTTPErrorHandler
	pathPrefix := router.Group(api.FullRootPath())

	RegisterMembershipRoutes(pathPrefix, suite.reg.ToDaoRegistry())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	response := rr.Result()
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	return response.StatusCode, body, err
}

func (suite *MembershipSuite) membersPath() string {
	return fmt.Sprintf("%s/organizations/%s/members/", api.FullRootPath(), membershipTestOrg)
}

func (suite *MembershipSuite) TestList() {
	t := suite.T()

	collection := api.MembershipCollectionResponse{
		Data: []api.MembershipResponse{
			{UUID: "member-1", OrganizationUUID: membershipTestOrg, UserEmail: "owner@example.com", Role: "owner"},
			{UUID: "member-2", OrganizationUUID: membershipTestOrg, UserEmail: "agent@example.com", Role: "agent"},
		},
	}
	paginationData := api.PaginationData{Limit: DefaultLimit, Offset: DefaultOffset}
	suite.reg.Membership.On("List", test.MockCtx(), membershipTestOrg, paginationData).
		Return(collection, int64(2), nil)

	req := httptest.NewRequest(http.MethodGet, suite.membersPath(), nil)
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, body, err := suite.serveMembersRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, code)

	response := api.MembershipCollectionResponse{}
	err = json.Unmarshal(body, &response)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), response.Meta.Count)
	assert.Equal(t, 2, len(response.Data))
	assert.Equal(t, "owner", response.Data[0].Role)
}

func (suite *MembershipSuite) TestAdd() {
	t := suite.T()

	request := api.MembershipRequest{
		UserEmail: utils.Ptr("newagent@example.com"),
		Role:      utils.Ptr("agent"),
	}
	expected := api.MembershipResponse{
		UUID:             "member-3",
		OrganizationUUID: membershipTestOrg,
		UserEmail:        "newagent@example.com",
		Role:             "agent",
	}
	suite.reg.Membership.On("Create", test.MockCtx(), membershipTestOrg, request).Return(expected, nil)

	body, err := json.Marshal(request)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, suite.membersPath(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, respBody, err := suite.serveMembersRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusCreated, code)

	response := api.MembershipResponse{}
	err = json.Unmarshal(respBody, &response)
	assert.Nil(t, err)
	assert.Equal(t, expected.UUID, response.UUID)
	assert.Equal(t, "agent", response.Role)
}

func (suite *MembershipSuite) TestAddAlreadyMember() {
	t := suite.T()

	request := api.MembershipRequest{
		UserEmail: utils.Ptr("owner@example.com"),
		Role:      utils.Ptr("member"),
	}
	daoError := ce.DaoError{
		AlreadyExists: true,
		Message:       "User is already a member",
	}
	suite.reg.Membership.On("Create", test.MockCtx(), membershipTestOrg, request).
		Return(api.MembershipResponse{}, &daoError)

	body, err := json.Marshal(request)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, suite.membersPath(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, _, err := suite.serveMembersRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusConflict, code)
}

func (suite *MembershipSuite) TestFetch() {
	t := suite.T()

	expected := api.MembershipResponse{
		UUID:             "member-1",
		OrganizationUUID: membershipTestOrg,
		UserEmail:        "owner@example.com",
		Role:             "owner",
	}
	suite.reg.Membership.On("Fetch", test.MockCtx(), membershipTestOrg, "member-1").Return(expected, nil)

	req := httptest.NewRequest(http.MethodGet, suite.membersPath()+"member-1", nil)
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, body, err := suite.serveMembersRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, code)

	response := api.MembershipResponse{}
	err = json.Unmarshal(body, &response)
	assert.Nil(t, err)
	assert.Equal(t, expected.UUID, response.UUID)
}

func (suite *MembershipSuite) TestUpdateRole() {
	t := suite.T()

	request := api.MembershipRequest{Role: utils.Ptr("admin")}
	expected := api.MembershipResponse{
		UUID:             "member-2",
		OrganizationUUID: membershipTestOrg,
		UserUUID:         "user-2",
		Role:             "admin",
	}
	suite.reg.Membership.On("UpdateRole", test.MockCtx(), membershipTestOrg, "member-2", models.RoleAdmin).Return(nil)
	suite.reg.Membership.On("Fetch", test.MockCtx(), membershipTestOrg, "member-2").Return(expected, nil)

	body, err := json.Marshal(request)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, suite.membersPath()+"member-2", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, respBody, err := suite.serveMembersRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, code)

	response := api.MembershipResponse{}
	err = json.Unmarshal(respBody, &response)
	assert.Nil(t, err)
	assert.Equal(t, "admin", response.Role)
}

func (suite *MembershipSuite) TestUpdateRoleBlank() {
	t := suite.T()

	req := httptest.NewRequest(http.MethodPatch, suite.membersPath()+"member-2", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, _, err := suite.serveMembersRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
	suite.reg.Membership.AssertNotCalled(t, "UpdateRole")
}

func (suite *MembershipSuite) TestUpdateRoleLastOwner() {
	t := suite.T()

	request := api.MembershipRequest{Role: utils.Ptr("member")}
	daoError := ce.DaoError{
		BadValidation: true,
		Message:       "Organizations must keep at least one owner",
	}
	suite.reg.Membership.On("UpdateRole", test.MockCtx(), membershipTestOrg, "member-1", models.RoleMember).
		Return(&daoError)

	body, err := json.Marshal(request)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, suite.membersPath()+"member-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, _, err := suite.serveMembersRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
}

func (suite *MembershipSuite) TestRemove() {
	t := suite.T()

	member := api.MembershipResponse{
		UUID:             "member-2",
		OrganizationUUID: membershipTestOrg,
		UserUUID:         "user-2",
		Role:             "agent",
	}
	suite.reg.Membership.On("Fetch", test.MockCtx(), membershipTestOrg, "member-2").Return(member, nil)
	suite.reg.Membership.On("Delete", test.MockCtx(), membershipTestOrg, "member-2").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, suite.membersPath()+"member-2", nil)
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, _, err := suite.serveMembersRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusNoContent, code)
}

func (suite *MembershipSuite) TestRemoveLastOwner() {
	t := suite.T()

	member := api.MembershipResponse{
		UUID:             "member-1",
		OrganizationUUID: membershipTestOrg,
		UserUUID:         "user-1",
		Role:             "owner",
	}
	daoError := ce.DaoError{
		BadValidation: true,
		Message:       "Organizations must keep at least one owner",
	}
	suite.reg.Membership.On("Fetch", test.MockCtx(), membershipTestOrg, "member-1").Return(member, nil)
	suite.reg.Membership.On("Delete", test.MockCtx(), membershipTestOrg, "member-1").Return(&daoError)

	req := httptest.NewRequest(http.MethodDelete, suite.membersPath()+"member-1", nil)
	req.Header.Set(api.IdentityHeader, test_handler.BearerToken(t))

	code, _, err := suite.serveMembersRouter(req)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
}
