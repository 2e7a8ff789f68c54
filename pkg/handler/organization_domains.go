package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/dao"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
	"github.com/ticketing-services/ticketing-backend/pkg/rbac"
)

type OrganizationDomainHandler struct {
	DaoRegistry dao.DaoRegistry
}

func RegisterOrganizationDomainRoutes(engine *echo.Group, daoReg *dao.DaoRegistry) {
	if engine == nil {
		panic("engine is nil")
	}
	if daoReg == nil {
		panic("daoReg is nil")
	}
	h := OrganizationDomainHandler{DaoRegistry: *daoReg}

	addOrgRoute(engine, http.MethodGet, "/organizations/:org_uuid/domains/", h.listDomains, rbac.CapabilityManage)
	addOrgRoute(engine, http.MethodPost, "/organizations/:org_uuid/domains/", h.addDomain, rbac.CapabilityManage)
	addOrgRoute(engine, http.MethodDelete, "/organizations/:org_uuid/domains/:uuid", h.removeDomain, rbac.CapabilityManage)
}

// ListDomains godoc
// @Summary      List allowed email domains
// @ID           listOrganizationDomains
// @Description  List the email domains allowed to submit portal tickets. An empty list allows any address.
// @Tags         domains
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Success      200 {object} api.OrganizationDomainCollectionResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/domains/ [get]
func (dh *OrganizationDomainHandler) listDomains(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	pageData := ParsePagination(c)

	domains, total, err := dh.DaoRegistry.Domain.List(c.Request().Context(), orgUUID, pageData)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error listing domains", err.Error())
	}
	return c.JSON(http.StatusOK, setCollectionResponseMetadata(&domains, c, total))
}

// AddDomain godoc
// @Summary      Add allowed email domain
// @ID           addOrganizationDomain
// @Description  Add an email domain to the allowlist.
// @Tags         domains
// @Accept       json
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param        body  body     api.OrganizationDomainRequest  true  "request body"
// @Success      201 {object} api.OrganizationDomainResponse
// @Failure      400 {object} ce.ErrorResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      409 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/domains/ [post]
func (dh *OrganizationDomainHandler) addDomain(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	var newDomain api.OrganizationDomainRequest
	if err := c.Bind(&newDomain); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error binding params", err.Error())
	}

	resp, err := dh.DaoRegistry.Domain.Create(c.Request().Context(), orgUUID, newDomain)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error adding domain", err.Error())
	}
	return c.JSON(http.StatusCreated, resp)
}

// RemoveDomain godoc
// @Summary      Remove allowed email domain
// @ID           removeOrganizationDomain
// @Description  Remove an email domain from the allowlist.
// @Tags         domains
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param  uuid  path  string  true  "Domain ID."
// @Success      204 {string} string ""
// @Failure      403 {object} ce.ErrorResponse
// @Failure      404 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/domains/{uuid} [delete]
func (dh *OrganizationDomainHandler) removeDomain(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	uuid := c.Param("uuid")

	if err := dh.DaoRegistry.Domain.Delete(c.Request().Context(), orgUUID, uuid); err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error removing domain", err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
