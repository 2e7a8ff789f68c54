package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/dao"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"github.com/ticketing-services/ticketing-backend/pkg/notifications"
	"github.com/ticketing-services/ticketing-backend/pkg/rbac"
)

type TicketHandler struct {
	DaoRegistry dao.DaoRegistry
}

func RegisterTicketRoutes(engine *echo.Group, daoReg *dao.DaoRegistry) {
	if engine == nil {
		panic("engine is nil")
	}
	if daoReg == nil {
		panic("daoReg is nil")
	}
	h := TicketHandler{DaoRegistry: *daoReg}

	addOrgRoute(engine, http.MethodGet, "/organizations/:org_uuid/tickets/", h.listTickets, rbac.CapabilityRead)
	addOrgRoute(engine, http.MethodPost, "/organizations/:org_uuid/tickets/", h.createTicket, rbac.CapabilityRespond)
	addOrgRoute(engine, http.MethodGet, "/organizations/:org_uuid/tickets/:uuid", h.fetch, rbac.CapabilityRead)
	addOrgRoute(engine, http.MethodPut, "/organizations/:org_uuid/tickets/:uuid", h.fullUpdate, rbac.CapabilityRespond)
	addOrgRoute(engine, http.MethodPatch, "/organizations/:org_uuid/tickets/:uuid", h.partialUpdate, rbac.CapabilityRespond)
	addOrgRoute(engine, http.MethodPost, "/organizations/:org_uuid/tickets/:uuid/assign", h.assign, rbac.CapabilityAssign)
	addOrgRoute(engine, http.MethodPost, "/organizations/:org_uuid/tickets/:uuid/status", h.setStatus, rbac.CapabilityAssign)
	addOrgRoute(engine, http.MethodDelete, "/organizations/:org_uuid/tickets/:uuid", h.deleteTicket, rbac.CapabilityManage)
}

// ListTickets godoc
// @Summary      List Tickets
// @ID           listTickets
// @Description  List an organization's tickets, filterable by status, priority, category, assignee and free text search.
// @Tags         tickets
// @Param		 offset query int false "Starting point for retrieving a subset of results. Default value: `0`."
// @Param		 limit query int false "Number of items to include in response. Default value: `100`."
// @Param		 search query string false "Search tickets by subject, description, reference id or requester email."
// @Param		 status query string false "Filter tickets by status."
// @Param		 priority query string false "Filter tickets by priority."
// @Param		 category_uuid query string false "Filter tickets by category."
// @Param		 assigned_to query string false "Filter tickets by assignee uuid, `none` matches unassigned tickets."
// @Param		 sort_by query string false "Sort criteria can include `subject`, `status`, `priority`, `created_at`, `updated_at` and `due_date`."
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Success      200 {object} api.TicketCollectionResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/tickets/ [get]
func (th *TicketHandler) listTickets(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	pageData := ParsePagination(c)
	filterData := ParseTicketFilters(c)

	tickets, total, err := th.DaoRegistry.Ticket.List(c.Request().Context(), orgUUID, pageData, filterData)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error listing tickets", err.Error())
	}
	return c.JSON(http.StatusOK, setCollectionResponseMetadata(&tickets, c, total))
}

// CreateTicket godoc
// @Summary      Create Ticket
// @ID           createTicket
// @Description  Create a ticket on behalf of a requester.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param        body  body     api.TicketRequest  true  "request body"
// @Success      201 {object} api.TicketResponse
// @Failure      400 {object} ce.ErrorResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/tickets/ [post]
func (th *TicketHandler) createTicket(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	var newTicket api.TicketRequest
	if err := c.Bind(&newTicket); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error binding params", err.Error())
	}

	resp, err := th.DaoRegistry.Ticket.Create(c.Request().Context(), orgUUID, actorUUID(c), newTicket)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error creating ticket", err.Error())
	}

	notifications.SendNotification(orgUUID, notifications.TicketCreated, []notifications.TicketEvent{notifications.MapTicketResponse(resp)})
	return c.JSON(http.StatusCreated, resp)
}

// GetTicket godoc
// @Summary      Get Ticket
// @ID           getTicket
// @Description  Get one ticket.
// @Tags         tickets
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param  uuid  path  string  true  "Ticket ID."
// @Success      200 {object} api.TicketResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      404 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/tickets/{uuid} [get]
func (th *TicketHandler) fetch(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	uuid := c.Param("uuid")

	resp, err := th.DaoRegistry.Ticket.Fetch(c.Request().Context(), orgUUID, uuid)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error fetching ticket", err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (th *TicketHandler) fullUpdate(c echo.Context) error {
	return th.update(c, true)
}

func (th *TicketHandler) partialUpdate(c echo.Context) error {
	return th.update(c, false)
}

func (th *TicketHandler) update(c echo.Context, fillDefaults bool) error {
	orgUUID := c.Param("org_uuid")
	uuid := c.Param("uuid")

	ticketParams := api.TicketRequest{}
	if err := c.Bind(&ticketParams); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error binding parameters", err.Error())
	}
	if fillDefaults {
		ticketParams.FillDefaults()
	}
	if err := th.DaoRegistry.Ticket.Update(c.Request().Context(), orgUUID, uuid, actorUUID(c), ticketParams); err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error updating ticket", err.Error())
	}

	resp, err := th.DaoRegistry.Ticket.Fetch(c.Request().Context(), orgUUID, uuid)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error updating ticket", err.Error())
	}

	notifications.SendNotification(orgUUID, notifications.TicketUpdated, []notifications.TicketEvent{notifications.MapTicketResponse(resp)})
	return c.JSON(http.StatusOK, resp)
}

// AssignTicket godoc
// @Summary      Assign Ticket
// @ID           assignTicket
// @Description  Assign a ticket to an organization member, or unassign it with a null assignee.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param  uuid  path  string  true  "Ticket ID."
// @Param        body  body     api.TicketAssignRequest  true  "request body"
// @Success      200 {object} api.TicketResponse
// @Failure      400 {object} ce.ErrorResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      404 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/tickets/{uuid}/assign [post]
func (th *TicketHandler) assign(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	uuid := c.Param("uuid")

	var assignParams api.TicketAssignRequest
	if err := c.Bind(&assignParams); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error binding params", err.Error())
	}

	err := th.DaoRegistry.Ticket.Assign(c.Request().Context(), orgUUID, uuid, actorUUID(c), assignParams.AssignedTo)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error assigning ticket", err.Error())
	}

	resp, err := th.DaoRegistry.Ticket.Fetch(c.Request().Context(), orgUUID, uuid)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error assigning ticket", err.Error())
	}

	notifications.SendNotification(orgUUID, notifications.TicketAssigned, []notifications.TicketEvent{notifications.MapTicketResponse(resp)})
	return c.JSON(http.StatusOK, resp)
}

// SetTicketStatus godoc
// @Summary      Change ticket status
// @ID           setTicketStatus
// @Description  Transition a ticket's status. Resolving stamps resolved_at and optional resolution notes, closing stamps closed_at, reopening clears both.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param  uuid  path  string  true  "Ticket ID."
// @Param        body  body     api.TicketStatusRequest  true  "request body"
// @Success      200 {object} api.TicketResponse
// @Failure      400 {object} ce.ErrorResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      404 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/tickets/{uuid}/status [post]
func (th *TicketHandler) setStatus(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	uuid := c.Param("uuid")

	var statusParams api.TicketStatusRequest
	if err := c.Bind(&statusParams); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error binding params", err.Error())
	}
	if statusParams.Status == nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error changing ticket status", "Status cannot be blank")
	}

	var resolutionNotes string
	if statusParams.ResolutionNotes != nil {
		resolutionNotes = *statusParams.ResolutionNotes
	}

	err := th.DaoRegistry.Ticket.SetStatus(c.Request().Context(), orgUUID, uuid, actorUUID(c), models.TicketStatus(*statusParams.Status), resolutionNotes)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error changing ticket status", err.Error())
	}

	resp, err := th.DaoRegistry.Ticket.Fetch(c.Request().Context(), orgUUID, uuid)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error changing ticket status", err.Error())
	}

	notifications.SendNotification(orgUUID, statusEventName(models.TicketStatus(resp.Status)), []notifications.TicketEvent{notifications.MapTicketResponse(resp)})
	return c.JSON(http.StatusOK, resp)
}

func statusEventName(status models.TicketStatus) notifications.EventName {
	switch status {
	case models.StatusResolved:
		return notifications.TicketResolved
	case models.StatusClosed:
		return notifications.TicketClosed
	case models.StatusOpen:
		return notifications.TicketReopened
	default:
		return notifications.TicketUpdated
	}
}

// DeleteTicket godoc
// @Summary      Delete Ticket
// @ID           deleteTicket
// @Description  Soft delete a ticket.
// @Tags         tickets
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param  uuid  path  string  true  "Ticket ID."
// @Success      204 {string} string ""
// @Failure      403 {object} ce.ErrorResponse
// @Failure      404 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/tickets/{uuid} [delete]
func (th *TicketHandler) deleteTicket(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	uuid := c.Param("uuid")

	if err := th.DaoRegistry.Ticket.Delete(c.Request().Context(), orgUUID, uuid); err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error deleting ticket", err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
