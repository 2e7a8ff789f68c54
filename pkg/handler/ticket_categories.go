package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/dao"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
	"github.com/ticketing-services/ticketing-backend/pkg/rbac"
)

type TicketCategoryHandler struct {
	DaoRegistry dao.DaoRegistry
}

func RegisterTicketCategoryRoutes(engine *echo.Group, daoReg *dao.DaoRegistry) {
	if engine == nil {
		panic("engine is nil")
	}
	if daoReg == nil {
		panic("daoReg is nil")
	}
	h := TicketCategoryHandler{DaoRegistry: *daoReg}

	addOrgRoute(engine, http.MethodGet, "/organizations/:org_uuid/categories/", h.listCategories, rbac.CapabilityRead)
	addOrgRoute(engine, http.MethodPost, "/organizations/:org_uuid/categories/", h.createCategory, rbac.CapabilityManage)
	addOrgRoute(engine, http.MethodGet, "/organizations/:org_uuid/categories/:uuid", h.fetch, rbac.CapabilityRead)
	addOrgRoute(engine, http.MethodPut, "/organizations/:org_uuid/categories/:uuid", h.fullUpdate, rbac.CapabilityManage)
	addOrgRoute(engine, http.MethodPatch, "/organizations/:org_uuid/categories/:uuid", h.partialUpdate, rbac.CapabilityManage)
	addOrgRoute(engine, http.MethodDelete, "/organizations/:org_uuid/categories/:uuid", h.deleteCategory, rbac.CapabilityManage)
}

// ListCategories godoc
// @Summary      List Categories
// @ID           listTicketCategories
// @Description  List the ticket categories of an organization.
// @Tags         categories
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Success      200 {object} api.TicketCategoryCollectionResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/categories/ [get]
func (ch *TicketCategoryHandler) listCategories(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	pageData := ParsePagination(c)

	categories, total, err := ch.DaoRegistry.TicketCategory.List(c.Request().Context(), orgUUID, pageData)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error listing categories", err.Error())
	}
	return c.JSON(http.StatusOK, setCollectionResponseMetadata(&categories, c, total))
}

// CreateCategory godoc
// @Summary      Create Category
// @ID           createTicketCategory
// @Description  Create a ticket category. Names are unique per organization.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param        body  body     api.TicketCategoryRequest  true  "request body"
// @Success      201 {object} api.TicketCategoryResponse
// @Failure      400 {object} ce.ErrorResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      409 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/categories/ [post]
func (ch *TicketCategoryHandler) createCategory(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	var newCategory api.TicketCategoryRequest
	if err := c.Bind(&newCategory); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error binding params", err.Error())
	}

	resp, err := ch.DaoRegistry.TicketCategory.Create(c.Request().Context(), orgUUID, newCategory)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error creating category", err.Error())
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetCategory godoc
// @Summary      Get Category
// @ID           getTicketCategory
// @Description  Get one ticket category.
// @Tags         categories
// @Produce      json
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param  uuid  path  string  true  "Category ID."
// @Success      200 {object} api.TicketCategoryResponse
// @Failure      403 {object} ce.ErrorResponse
// @Failure      404 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/categories/{uuid} [get]
func (ch *TicketCategoryHandler) fetch(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	uuid := c.Param("uuid")

	resp, err := ch.DaoRegistry.TicketCategory.Fetch(c.Request().Context(), orgUUID, uuid)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error fetching category", err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (ch *TicketCategoryHandler) fullUpdate(c echo.Context) error {
	return ch.update(c, true)
}

func (ch *TicketCategoryHandler) partialUpdate(c echo.Context) error {
	return ch.update(c, false)
}

func (ch *TicketCategoryHandler) update(c echo.Context, fillDefaults bool) error {
	orgUUID := c.Param("org_uuid")
	uuid := c.Param("uuid")

	catParams := api.TicketCategoryRequest{}
	if err := c.Bind(&catParams); err != nil {
		return ce.NewErrorResponse(http.StatusBadRequest, "Error binding parameters", err.Error())
	}
	if fillDefaults {
		catParams.FillDefaults()
	}
	if err := ch.DaoRegistry.TicketCategory.Update(c.Request().Context(), orgUUID, uuid, catParams); err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error updating category", err.Error())
	}

	resp, err := ch.DaoRegistry.TicketCategory.Fetch(c.Request().Context(), orgUUID, uuid)
	if err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error updating category", err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

// DeleteCategory godoc
// @Summary      Delete Category
// @ID           deleteTicketCategory
// @Description  Delete a ticket category. Tickets keep no dangling reference.
// @Tags         categories
// @Param  org_uuid  path  string  true  "Organization ID."
// @Param  uuid  path  string  true  "Category ID."
// @Success      204 {string} string ""
// @Failure      403 {object} ce.ErrorResponse
// @Failure      404 {object} ce.ErrorResponse
// @Failure      500 {object} ce.ErrorResponse
// @Router       /organizations/{org_uuid}/categories/{uuid} [delete]
func (ch *TicketCategoryHandler) deleteCategory(c echo.Context) error {
	orgUUID := c.Param("org_uuid")
	uuid := c.Param("uuid")

	if err := ch.DaoRegistry.TicketCategory.Delete(c.Request().Context(), orgUUID, uuid); err != nil {
		return ce.NewErrorResponse(ce.HttpCodeForDaoError(err), "Error deleting category", err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
