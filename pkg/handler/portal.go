package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/dao"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
	"github.com/ticketing-services/ticketing-backend/pkg/notifications"
	"github.com/ticketing-services/ticketing-backend/pkg/utils"
)

type PortalHandler struct {
	DaoRegistry dao.DaoRegistry
}

// RegisterPortalRoutes registers the anonymous routes tenant subdomain
// traffic is rewritten onto. They skip identity, the tenant router already
// scoped them to one organization.
func RegisterPortalRoutes(engine *echo.Echo, daoReg *dao.DaoRegistry, submitLimiter echo.MiddlewareFunc) {
	if engine == nil {
		panic("engine is nil")
	}
	if daoReg == nil {
		panic("daoReg is nil")
	}
	h := PortalHandler{DaoRegistry: *daoReg}

	group := engine.Group("/org")
	group.GET("/not-found", h.notFound)
	group.GET("/error", h.unavailable)
	group.GET("/:org_uuid/", h.profile)
	group.GET("/:org_uuid", h.profile)
	group.GET("/:org_uuid/tickets/:reference_id", h.lookupTicket)
	if submitLimiter != nil {
		group.POST("/:org_uuid/tickets/", h.submitTicket, submitLimiter)
	} else {
		group.POST("/:org_uuid/tickets/", h.submitTicket)
	}
}

// PortalProfile godoc
// @Summary      Portal profile
// @ID           portalProfile
// @Description  Public branding of a tenant with its active ticket categories.
// @Tags         portal
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Success      200 {object} api.PortalProfileResponse
// @Failure      404 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /org/{org_uuid} [get]
func (ph *PortalHandler) profile(c echo.Context) error {
	orgUUID := c.Param("org_uuid")

	org, err := ph.DaoRegistry.Organization.Fetch(c.Request().Context(), orgUUID)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error fetching organization", err.Error())
	}

	categories, _, err := ph.DaoRegistry.TicketCategory.List(c.Request().Context(), orgUUID, api.PaginationData{Limit: DefaultLimit})
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error fetching categories", err.Error())
	}

	active := make([]api.TicketCategoryResponse, 0, len(categories.Data))
	for _, category := range categories.Data {
		if category.IsActive {
			active = append(active, category)
		}
	}

	return c.JSON(http.StatusOK, api.PortalProfileResponse{
		Organization: org,
		Categories:   active,
	})
}

// PortalSubmitTicket godoc
// @Summary      Submit portal ticket
// @ID           portalSubmitTicket
// @Description  Anonymous ticket submission from a tenant's portal. The requester email must match the organization's domain allowlist when one is configured.
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param        body  body     api.TicketRequest  true  "request body"
// @Success      201 {object} api.TicketResponse
// @Failure      400 {object} ce.ErrorResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      404 {object} ce.ErrorResponse
// @Failure      429 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /org/{org_uuid}/tickets/ [post]
func (ph *PortalHandler) submitTicket(c echo.Context) error {
	orgUUID := c.Param("org_uuid")

	var newTicket api.TicketRequest
	if err := c.Bind(&newTicket); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error binding params", err.Error())
	}
	if newTicket.RequesterEmail == nil || *newTicket.RequesterEmail == "" {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error submitting ticket", "Requester email cannot be blank")
	}
	// Anonymous submissions always enter as portal tickets.
	newTicket.Source = utils.Ptr("portal")

	allowed, err := ph.DaoRegistry.Domain.AllowsEmail(c.Request().Context(), orgUUID, *newTicket.RequesterEmail)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error submitting ticket", err.Error())
	}
	if !allowed {
		return ce.NewErrorResponse(http.StatusForbidden, "Error submitting ticket", "This email domain is not allowed to submit tickets")
	}

	resp, err := ph.DaoRegistry.Ticket.Create(c.Request().Context(), orgUUID, nil, newTicket)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error submitting ticket", err.Error())
	}

	notifications.SendNotification(orgUUID, notifications.TicketCreated, []notifications.TicketEvent{notifications.MapTicketResponse(resp)})
	return c.JSON(http.StatusCreated, resp)
}

// PortalLookupTicket godoc
// @Summary      Look up portal ticket
// @ID           portalLookupTicket
// @Description  Requester's view of a ticket by its quotable reference id. The email query parameter must match the requester, mismatches are indistinguishable from unknown references.
// @Tags         portal
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param  reference_id  path  string  true  "Ticket reference id."
// @Param  email  query  string  true  "Requester email."
// @Success      200 {object} api.PortalTicketResponse
// @Failure      404 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /org/{org_uuid}/tickets/{reference_id} [get]
func (ph *PortalHandler) lookupTicket(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	referenceID := c.Param("reference_id")
	email := c.QueryParam("email")

	ticket, err := ph.DaoRegistry.Ticket.FetchByReference(c.Request().Context(), orgUUID, referenceID)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error fetching ticket", err.Error())
	}
	if email == "" || !strings.EqualFold(ticket.RequesterEmail, email) {
		return ce.NewErrorResponse(http.StatusNotFound, "Error fetching ticket", "ticket with reference "+referenceID+" not found")
	}

	responses, _, err := ph.DaoRegistry.TicketResponse.List(c.Request().Context(), orgUUID, ticket.UUID, api.PaginationData{Limit: MaxLimit}, false)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error fetching ticket", err.Error())
	}

	return c.JSON(http.StatusOK, api.PortalTicketResponse{
		Ticket:    ticket,
		Responses: responses.Data,
	})
}

func (ph *PortalHandler) notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{
		"title":  "Organization not found",
		"detail": "No organization is registered under this address",
	})
}

func (ph *PortalHandler) unavailable(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, echo.Map{
		"title":  "Temporarily unavailable",
		"detail": "We could not look up this address, try again shortly",
	})
}
