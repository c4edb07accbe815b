package controller

import (
	"meditranslate-be/internal/dto"
	"meditranslate-be/internal/pkg/serverutils"
	"meditranslate-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SearchController struct {
	searchService service.ISearchService
}

func NewSearchController(searchService service.ISearchService) *SearchController {
	return &SearchController{
		searchService: searchService,
	}
}

func (ctrl *SearchController) RegisterRoutes(api fiber.Router) {
	api.Get("/search/v1", ctrl.Search)
}

// Search handles GET /api/search/v1?q=. An empty query returns an empty list
// rather than every message in the system.
func (ctrl *SearchController) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.JSON(serverutils.SuccessResponse("Search results", []*dto.SearchResultResponse{}))
	}

	results, err := ctrl.searchService.Search(c.UserContext(), query)
	if err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse("Search results", results))
}
