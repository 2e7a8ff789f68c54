package handler

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/dao"
	"github.com/ticketing-services/ticketing-backend/pkg/db"
)

const DefaultOffset = 0
const DefaultLimit = 100
const DefaultSortBy = ""
const DefaultSearch = ""
const DefaultStatus = ""
const DefaultPriority = ""
const DefaultCategoryUUID = ""
const DefaultAssignedTo = ""
const MaxLimit = 200

func RegisterRoutes(engine *echo.Echo) {
	paths := []string{api.FullRootPath(), api.MajorRootPath()}

	for i := 0; i < len(paths); i++ {
		group := engine.Group(paths[i])

		daoReg := dao.GetDaoRegistry(db.DB)
		RegisterOrganizationRoutes(group, daoReg)
		RegisterMembershipRoutes(group, daoReg)
		RegisterOrganizationDomainRoutes(group, daoReg)
		RegisterTicketCategoryRoutes(group, daoReg)
		RegisterTicketRoutes(group, daoReg)
		RegisterTicketResponseRoutes(group, daoReg)
		RegisterTicketActivityRoutes(group, daoReg)
		RegisterAnalyticsRoutes(group, daoReg)
	}

	data, err := json.MarshalIndent(engine.Routes(), "", "  ")
	if err == nil {
		log.Debug().Msg(string(data))
	}
}

func RegisterPing(engine *echo.Echo) {
	engine.GET("/ping", ping)
	engine.GET("/ping/", ping)
}

func ping(c echo.Context) error {
	return c.JSON(200, echo.Map{
		"message": "pong",
	})
}

func createLink(c echo.Context, offset int) string {
	req := c.Request()
	q := req.URL.Query()
	page := ParsePagination(c)
	filters := ParseTicketFilters(c)

	q.Set("limit", strconv.Itoa(page.Limit))
	q.Set("offset", strconv.Itoa(offset))

	if filters.Search != "" {
		q.Set("search", filters.Search)
	}
	if filters.Status != "" {
		q.Set("status", filters.Status)
	}
	if filters.Priority != "" {
		q.Set("priority", filters.Priority)
	}
	if filters.CategoryUUID != "" {
		q.Set("category_uuid", filters.CategoryUUID)
	}
	if filters.AssignedTo != "" {
		q.Set("assigned_to", filters.AssignedTo)
	}

	params, _ := url.PathUnescape(q.Encode())
	return fmt.Sprintf("%v?%v", req.URL.Path, params)
}

// setCollectionResponseMetadata determines metadata of collection response based on context and collection size.
// Returns collection response with updated metadata.
func setCollectionResponseMetadata(collection api.CollectionMetadataSettable, c echo.Context, totalCount int64) api.CollectionMetadataSettable {
	page := ParsePagination(c)
	var lastPage int
	if int(totalCount) > 0 && (int(totalCount)%page.Limit) == 0 {
		lastPage = int(totalCount) - page.Limit
	} else {
		lastPage = int(totalCount) - int(totalCount)%page.Limit
	}
	links := api.Links{
		First: createLink(c, 0),
		Last:  createLink(c, lastPage),
	}
	if page.Offset+page.Limit < int(totalCount) {
		links.Next = createLink(c, page.Offset+page.Limit)
	}
	if page.Offset-page.Limit >= 0 {
		links.Prev = createLink(c, page.Offset-page.Limit)
	}

	collection.SetMetadata(api.ResponseMetadata{
		Count:  totalCount,
		Limit:  page.Limit,
		Offset: page.Offset,
	}, links)
	return collection
}

func ParsePagination(c echo.Context) api.PaginationData {
	pageData := api.PaginationData{Limit: DefaultLimit, Offset: DefaultOffset, SortBy: DefaultSortBy}
	err := echo.QueryParamsBinder(c).
		Int("limit", &pageData.Limit).
		Int("offset", &pageData.Offset).
		String("sort_by", &pageData.SortBy).
		BindError()

	if err != nil {
		log.Error().Err(err).Msg("Failed to bind pagination.")
	}

	if pageData.SortBy == DefaultSortBy {
		err = c.Request().ParseForm()
		if err != nil {
			log.Error().Err(err).Msg("Failed to bind pagination.")
		}
		q := c.Request().Form
		pageData.SortBy = strings.Join(q["sort_by[]"], ",")
	}

	if pageData.Limit > MaxLimit {
		pageData.Limit = MaxLimit
	}
	return pageData
}

func ParseTicketFilters(c echo.Context) api.TicketFilterData {
	filterData := api.TicketFilterData{
		Search:       DefaultSearch,
		Status:       DefaultStatus,
		Priority:     DefaultPriority,
		CategoryUUID: DefaultCategoryUUID,
		AssignedTo:   DefaultAssignedTo,
	}
	err := echo.QueryParamsBinder(c).
		String("search", &filterData.Search).
		String("status", &filterData.Status).
		String("priority", &filterData.Priority).
		String("category_uuid", &filterData.CategoryUUID).
		String("assigned_to", &filterData.AssignedTo).
		BindError()

	if err != nil {
		log.Error().Err(err).Msg("Error parsing filters")
	}

	return filterData
}
