package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/cache"
	"github.com/ticketing-services/ticketing-backend/pkg/dao"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"github.com/ticketing-services/ticketing-backend/pkg/notifications"
	"github.com/ticketing-services/ticketing-backend/pkg/rbac"
)

type MembershipHandler struct {
	DaoRegistry dao.DaoRegistry
	Cache       cache.Cache
}

func RegisterMembershipRoutes(engine *echo.Group, daoReg *dao.DaoRegistry) {
	if engine == nil {
		panic("engine is nil")
	}
	if daoReg == nil {
		panic("daoReg is nil")
	}
	h := MembershipHandler{DaoRegistry: *daoReg, Cache: cache.Initialize()}

	addOrgRoute(engine, http.MethodGet, "/organizations/:org_uuid/members/", h.listMembers, rbac.CapabilityRead)
	addOrgRoute(engine, http.MethodPost, "/organizations/:org_uuid/members/", h.addMember, rbac.CapabilityManage)
	addOrgRoute(engine, http.MethodGet, "/organizations/:org_uuid/members/:uuid", h.fetch, rbac.CapabilityRead)
	addOrgRoute(engine, http.MethodPatch, "/organizations/:org_uuid/members/:uuid", h.updateRole, rbac.CapabilityManage)
	addOrgRoute(engine, http.MethodDelete, "/organizations/:org_uuid/members/:uuid", h.removeMember, rbac.CapabilityManage)
}

// ListMembers godoc
// @Summary      List Members
// @ID           listMembers
// @Description  List the members of an organization.
// @Tags         members
// @Accept       json
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Success      200 {object} api.MembershipCollectionResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/members/ [get]
func (mh *MembershipHandler) listMembers(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	pageData := ParsePagination(c)

	members, total, err := mh.DaoRegistry.Membership.List(c.Request().Context(), orgUUID, pageData)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error listing members", err.Error())
	}
	return c.JSON(http.StatusOK, setCollectionResponseMetadata(&members, c, total))
}

// AddMember godoc
// @Summary      Add Member
// @ID           addMember
// @Description  Add a user to an organization by uuid or email.
// @Tags         members
// @Accept       json
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param        body  body     api.MembershipRequest  true  "request body"
// @Success      201  {object}  api.MembershipResponse
// @Failure      400 {object} ce.ErrorResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      409 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/members/ [post]
func (mh *MembershipHandler) addMember(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	var newMember api.MembershipRequest
	if err := c.Bind(&newMember); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error binding params", err.Error())
	}

	respMember, err := mh.DaoRegistry.Membership.Create(c.Request().Context(), orgUUID, newMember)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error adding member", err.Error())
	}

	notifications.SendNotification(orgUUID, notifications.MemberAdded, []notifications.TicketEvent{})
	return c.JSON(http.StatusCreated, respMember)
}

// GetMember godoc
// @Summary      Get Member
// @ID           getMember
// @Description  Get one membership.
// @Tags         members
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param  uuid  path  string  true  "Membership ID."
// @Success      200 {object} api.MembershipResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      404 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/members/{uuid} [get]
func (mh *MembershipHandler) fetch(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	uuid := c.Param("uuid")

	resp, err := mh.DaoRegistry.Membership.Fetch(c.Request().Context(), orgUUID, uuid)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error fetching member", err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateRole godoc
// @Summary      Change a member's role
// @ID           updateMemberRole
// @Description  Change a member's role. The last owner can never be demoted.
// @Tags         members
// @Accept       json
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param  uuid  path  string  true  "Membership ID."
// @Param        body  body     api.MembershipRequest  true  "request body"
// @Success      200 {object} api.MembershipResponse
// @Failure      400 {object} ce.ErrorResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      404 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/members/{uuid} [patch]
func (mh *MembershipHandler) updateRole(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	uuid := c.Param("uuid")

	var memberParams api.MembershipRequest
	if err := c.Bind(&memberParams); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error binding params", err.Error())
	}
	if memberParams.Role == nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error updating member", "Role cannot be blank")
	}

	err := mh.DaoRegistry.Membership.UpdateRole(c.Request().Context(), orgUUID, uuid, models.Role(*memberParams.Role))
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error updating member", err.Error())
	}

	resp, err := mh.DaoRegistry.Membership.Fetch(c.Request().Context(), orgUUID, uuid)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error updating member", err.Error())
	}
	mh.dropCachedRole(c, orgUUID, resp.UserUUID)

	notifications.SendNotification(orgUUID, notifications.MemberRoleChanged, []notifications.TicketEvent{})
	return c.JSON(http.StatusOK, resp)
}

// RemoveMember godoc
// @Summary      Remove Member
// @ID           removeMember
// @Description  Remove a member from an organization. The last owner can never be removed.
// @Tags         members
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param  uuid  path  string  true  "Membership ID."
// @Success      204 {string} string ""
// @Failure      400 {object} ce.ErrorResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      404 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/members/{uuid} [delete]
func (mh *MembershipHandler) removeMember(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	uuid := c.Param("uuid")

	// Fetched first so the cached role of the removed user can be dropped.
	member, err := mh.DaoRegistry.Membership.Fetch(c.Request().Context(), orgUUID, uuid)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error removing member", err.Error())
	}

	if err := mh.DaoRegistry.Membership.Delete(c.Request().Context(), orgUUID, uuid); err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error removing member", err.Error())
	}
	mh.dropCachedRole(c, orgUUID, member.UserUUID)

	notifications.SendNotification(orgUUID, notifications.MemberRemoved, []notifications.TicketEvent{})
	return c.NoContent(http.StatusNoContent)
}

// dropCachedRole makes role changes take effect without waiting for the
// cache entry to expire.
func (mh *MembershipHandler) dropCachedRole(c echo.Context, orgUUID string, userUUID string) {
	if err := mh.Cache.DeleteMembershipRole(c.Request().Context(), orgUUID, userUUID); err != nil {
		log.Error().Err(err).Msg("could not drop cached membership role")
	}
}
