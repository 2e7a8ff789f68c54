package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ticketing-services/ticketing-backend/pkg/dao"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
	"github.com/ticketing-services/ticketing-backend/pkg/rbac"
)

type AnalyticsHandler struct {
	DaoRegistry dao.DaoRegistry
}

func RegisterAnalyticsRoutes(engine *echo.Group, daoReg *dao.DaoRegistry) {
	if engine == nil {
		panic("engine is nil")
	}
	if daoReg == nil {
		panic("daoReg is nil")
	}
	h := AnalyticsHandler{DaoRegistry: *daoReg}

	addOrgRoute(engine, http.MethodGet, "/organizations/:org_uuid/analytics", h.summary, rbac.CapabilityRead)
}

// AnalyticsSummary godoc
// @Summary      Ticket analytics
// @ID           analyticsSummary
// @Description  Aggregate ticket counts by status, priority and category, with resolution and first response averages.
// @Tags         analytics
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Success      200 {object} api.AnalyticsSummaryResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/analytics [get]
func (ah *AnalyticsHandler) summary(c echo.Context) error {
	orgUUID := c.Param("org_uuid")

	resp, err := ah.DaoRegistry.Analytics.Summary(c.Request().Context(), orgUUID)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error computing analytics", err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}
