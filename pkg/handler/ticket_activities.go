package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ticketing-services/ticketing-backend/pkg/dao"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
	"github.com/ticketing-services/ticketing-backend/pkg/rbac"
)

type TicketActivityHandler struct {
	DaoRegistry dao.DaoRegistry
}

func RegisterTicketActivityRoutes(engine *echo.Group, daoReg *dao.DaoRegistry) {
	if engine == nil {
		panic("engine is nil")
	}
	if daoReg == nil {
		panic("daoReg is nil")
	}
	h := TicketActivityHandler{DaoRegistry: *daoReg}

	addOrgRoute(engine, http.MethodGet, "/organizations/:org_uuid/tickets/:uuid/activities/", h.listActivities, rbac.CapabilityRead)
}

// ListActivities godoc
// @Summary      List ticket activities
// @ID           listTicketActivities
// @Description  List a ticket's audit trail, newest first.
// @Tags         activities
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param  uuid  path  string  true  "Ticket ID."
// @Success      200 {object} api.TicketActivityCollectionResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      404 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/tickets/{uuid}/activities/ [get]
func (ah *TicketActivityHandler) listActivities(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	ticketUUID := c.Param("uuid")
	pageData := ParsePagination(c)

	activities, total, err := ah.DaoRegistry.TicketActivity.List(c.Request().Context(), orgUUID, ticketUUID, pageData)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error listing activities", err.Error())
	}
	return c.JSON(http.StatusOK, setCollectionResponseMetadata(&activities, c, total))
}
