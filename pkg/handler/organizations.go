package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/dao"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"github.com/ticketing-services/ticketing-backend/pkg/rbac"
	"github.com/ticketing-services/ticketing-backend/pkg/tenant"
)

type OrganizationHandler struct {
	DaoRegistry dao.DaoRegistry
}

func RegisterOrganizationRoutes(engine *echo.Group, daoReg *dao.DaoRegistry) {
	if engine == nil {
		panic("engine is nil")
	}
	if daoReg == nil {
		panic("daoReg is nil")
	}
	h := OrganizationHandler{DaoRegistry: *daoReg}

	// Routes without :org_uuid carry no membership requirement, any
	// authenticated user may call them.
	engine.GET("/organizations/", h.listOrganizations)
	engine.POST("/organizations/", h.createOrganization)
	engine.GET("/subdomains/:subdomain/availability", h.subdomainAvailability)

	addOrgRoute(engine, http.MethodGet, "/organizations/:org_uuid", h.fetch, rbac.CapabilityRead)
	addOrgRoute(engine, http.MethodPut, "/organizations/:org_uuid", h.fullUpdate, rbac.CapabilityManage)
	addOrgRoute(engine, http.MethodPatch, "/organizations/:org_uuid", h.partialUpdate, rbac.CapabilityManage)
	addOrgRoute(engine, http.MethodDelete, "/organizations/:org_uuid", h.deleteOrganization, rbac.CapabilityOwn)
}

// CreateOrganization godoc
// @Summary      Create Organization
// @ID           createOrganization
// @Description  Complete onboarding: create the organization and make the caller its owner.
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        body  body     api.OrganizationRequest  true  "request body"
// @Success      201  {object}  api.OrganizationResponse
// @Failure      400 {object} ce.ErrorResponse
// @Failure      401 {object} ce.ErrorResponse
// @Failure      409 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/ [post]
func (oh *OrganizationHandler) createOrganization(c echo.Context) error {
	var newOrganization api.OrganizationRequest
	if err := c.Bind(&newOrganization); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error binding params", err.Error())
	}

	user := getUser(c)
	if user.UserUUID == "" {
		return ce.NewErrorResponse(http.StatusUnauthorized, "Authentication required", "Creating an organization requires an authenticated user")
	}

	// The identity provider's view of the caller has to exist before the
	// owner membership can reference it.
	err := oh.DaoRegistry.User.Upsert(c.Request().Context(), models.User{
		Base:     models.Base{UUID: user.UserUUID},
		Email:    user.Email,
		FullName: user.FullName,
	})
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error creating organization", err.Error())
	}

	respOrganization, err := oh.DaoRegistry.Organization.Create(c.Request().Context(), user.UserUUID, newOrganization)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error creating organization", err.Error())
	}

	return c.JSON(http.StatusCreated, respOrganization)
}

// ListOrganizations godoc
// @Summary      List Organizations
// @ID           listOrganizations
// @Description  List the organizations the caller belongs to, with their role in each.
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Success      200 {object} api.OrganizationCollectionResponse
// @Failure      401 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/ [get]
func (oh *OrganizationHandler) listOrganizations(c echo.Context) error {
	user := getUser(c)
	pageData := ParsePagination(c)

	organizations, total, err := oh.DaoRegistry.Organization.List(c.Request().Context(), user.UserUUID, pageData)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error listing organizations", err.Error())
	}
	return c.JSON(http.StatusOK, setCollectionResponseMetadata(&organizations, c, total))
}

// GetOrganization godoc
// @Summary      Get Organization
// @ID           getOrganization
// @Description  Get organization information.
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Success      200   {object}  api.OrganizationResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      404 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid} [get]
func (oh *OrganizationHandler) fetch(c echo.Context) error {
	orgUUID := c.Param("org_uuid")

	resp, err := oh.DaoRegistry.Organization.Fetch(c.Request().Context(), orgUUID)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error fetching organization", err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (oh *OrganizationHandler) fullUpdate(c echo.Context) error {
	return oh.update(c, true)
}

func (oh *OrganizationHandler) partialUpdate(c echo.Context) error {
	return oh.update(c, false)
}

func (oh *OrganizationHandler) update(c echo.Context, fillDefaults bool) error {
	orgUUID := c.Param("org_uuid")
	orgParams := api.OrganizationRequest{}

	if err := c.Bind(&orgParams); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error binding parameters", err.Error())
	}
	if fillDefaults {
		orgParams.FillDefaults()
	}
	if err := oh.DaoRegistry.Organization.Update(c.Request().Context(), orgUUID, orgParams); err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error updating organization", err.Error())
	}

	resp, err := oh.DaoRegistry.Organization.Fetch(c.Request().Context(), orgUUID)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error updating organization", err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

// DeleteOrganization godoc
// @Summary      Delete Organization
// @ID           deleteOrganization
// @Description  Soft delete an organization, owner only.
// @Tags         organizations
// @Param  org_uuid  path  string  true  "Organization ID."
// @Success      204 {string} string ""
// @Failure      403 {object} ce.ErrorResponse
// @Failure      404 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid} [delete]
func (oh *OrganizationHandler) deleteOrganization(c echo.Context) error {
	orgUUID := c.Param("org_uuid")

	if err := oh.DaoRegistry.Organization.Delete(c.Request().Context(), orgUUID); err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error deleting organization", err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// SubdomainAvailability godoc
// @Summary      Check subdomain availability
// @ID           subdomainAvailability
// @Description  Report whether a subdomain can still be claimed. Advisory only, creation re-checks under the unique index.
// @Tags         organizations
// @Produce      json
// @Param  subdomain  path  string  true  "Subdomain label."
// @Success      200 {object} api.SubdomainAvailabilityResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /subdomains/{subdomain}/availability [get]
func (oh *OrganizationHandler) subdomainAvailability(c echo.Context) error {
	subdomain := c.Param("subdomain")

	if err := models.ValidateSubdomain(subdomain); err != nil {
		return c.JSON(http.StatusOK, api.SubdomainAvailabilityResponse{
			Subdomain: subdomain,
			Available: false,
			Reason:    "invalid",
		})
	}
	if tenant.IsReserved(subdomain) {
		return c.JSON(http.StatusOK, api.SubdomainAvailabilityResponse{
			Subdomain: subdomain,
			Available: false,
			Reason:    "reserved",
		})
	}

	taken, err := oh.DaoRegistry.Organization.SubdomainTaken(c.Request().Context(), subdomain)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error checking subdomain", err.Error())
	}
	if taken {
		return c.JSON(http.StatusOK, api.SubdomainAvailabilityResponse{
			Subdomain: subdomain,
			Available: false,
			Reason:    "taken",
		})
	}
	return c.JSON(http.StatusOK, api.SubdomainAvailabilityResponse{
		Subdomain: subdomain,
		Available: true,
	})
}
