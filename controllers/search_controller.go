package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hazaribi/google-drive-clone-backend-secure/services"
	"github.com/hazaribi/google-drive-clone-backend-secure/utils"
)

type SearchController struct {
	searchService *services.SearchService
}

func NewSearchController(searchService *services.SearchService) *SearchController {
	return &SearchController{searchService: searchService}
}

// Search handles GET /search?q=&type=&limit=&page=
func (sc *SearchController) Search(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := sc.searchService.Search(c.Request.Context(), caller, services.SearchParams{
		Query: c.Query("q"),
		Kind:  c.Query("type"),
		Limit: limit,
		Page:  page,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Search results", result)
}

// AdvancedSearch handles GET /search/advanced with file-only filters.
// Scoped to the caller's own files.
func (sc *SearchController) AdvancedSearch(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	params := services.AdvancedSearchParams{
		Query:    c.Query("q"),
		MimeType: c.Query("format"),
	}

	if raw := c.Query("min_size"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid min_size", "")
			return
		}
		params.MinSize = &v
	}
	if raw := c.Query("max_size"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid max_size", "")
			return
		}
		params.MaxSize = &v
	}
	if raw := c.Query("created_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid created_after (expect RFC3339)", "")
			return
		}
		params.CreatedAfter = &t
	}
	if raw := c.Query("created_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid created_before (expect RFC3339)", "")
			return
		}
		params.CreatedBefore = &t
	}

	files, err := sc.searchService.AdvancedSearch(c.Request.Context(), caller, params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Search results", files)
}
