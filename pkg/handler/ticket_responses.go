package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/dao"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
	"github.com/ticketing-services/ticketing-backend/pkg/middleware"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"github.com/ticketing-services/ticketing-backend/pkg/notifications"
	"github.com/ticketing-services/ticketing-backend/pkg/rbac"
)

type TicketResponseHandler struct {
	DaoRegistry dao.DaoRegistry
}

func RegisterTicketResponseRoutes(engine *echo.Group, daoReg *dao.DaoRegistry) {
	if engine == nil {
		panic("engine is nil")
	}
	if daoReg == nil {
		panic("daoReg is nil")
	}
	h := TicketResponseHandler{DaoRegistry: *daoReg}

	addOrgRoute(engine, http.MethodGet, "/organizations/:org_uuid/tickets/:uuid/responses/", h.listResponses, rbac.CapabilityRead)
	addOrgRoute(engine, http.MethodPost, "/organizations/:org_uuid/tickets/:uuid/responses/", h.createResponse, rbac.CapabilityRespond)
}

// ListResponses godoc
// @Summary      List ticket conversation
// @ID           listTicketResponses
// @Description  List a ticket's conversation, oldest first. Internal notes are only visible to agents and above.
// @Tags         responses
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param  uuid  path  string  true  "Ticket ID."
// @Success      200 {object} api.TicketResponseCollectionResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      404 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/tickets/{uuid}/responses/ [get]
func (rh *TicketResponseHandler) listResponses(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	ticketUUID := c.Param("uuid")
	pageData := ParsePagination(c)

	includeInternal := middleware.MembershipRole(c).HasAtLeast(models.RoleAgent)

	responses, total, err := rh.DaoRegistry.TicketResponse.List(c.Request().Context(), orgUUID, ticketUUID, pageData, includeInternal)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error listing responses", err.Error())
	}
	return c.JSON(http.StatusOK, setCollectionResponseMetadata(&responses, c, total))
}

// CreateResponse godoc
// @Summary      Add ticket response
// @ID           createTicketResponse
// @Description  Append a conversation entry. The first public reply from a member stamps the ticket's first response time.
// @Tags         responses
// @Accept       json
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param  uuid  path  string  true  "Ticket ID."
// @Param        body  body     api.TicketResponseRequest  true  "request body"
// @Success      201 {object} api.TicketResponseItem
// @Failure      400 {object} ce.ErrorResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      404 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/tickets/{uuid}/responses/ [post]
func (rh *TicketResponseHandler) createResponse(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	ticketUUID := c.Param("uuid")

	var respParams api.TicketResponseRequest
	if err := c.Bind(&respParams); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error binding params", err.Error())
	}

	user := getUser(c)
	resp, err := rh.DaoRegistry.TicketResponse.Create(c.Request().Context(), orgUUID, ticketUUID, true, respParams, actorUUID(c), user.Email)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error adding response", err.Error())
	}

	notifications.SendNotification(orgUUID, notifications.TicketCommented, []notifications.TicketEvent{})
	return c.JSON(http.StatusCreated, resp)
}
