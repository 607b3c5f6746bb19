package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"idea-feed/cmd/api/dto"
	"idea-feed/cmd/api/services"
	"idea-feed/repositories"
)

// ListIdeasHandler godoc
// @Summary      List ideas
// @Description  List stored ideas with filters, sort and pagination
// @Tags         ideas
// @Param        page       query  int     false  "Page number (1-based)"
// @Param        page_size  query  int     false  "Page size (<=100)"
// @Param        platform   query  string  false  "reddit, twitter, rss or all"
// @Param        category   query  string  false  "Category or all"
// @Param        search     query  string  false  "Case-insensitive search on title, description and tags"
// @Param        sort       query  string  false  "trending (default), newest or popular"
// @Produce      json
// @Success      200  {object}  dto.PaginationIdeaDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /v1/ideas [get]
func ListIdeasHandler(svc *services.IdeaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ListIdeasInput
		// pagination
		in.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
		in.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(repositories.DefaultPageSize)))
		// filters
		in.Platform = c.Query("platform")
		in.Category = c.Query("category")
		in.Search = c.Query("search")
		in.Sort = c.Query("sort")

		page, err := svc.List(c.Request.Context(), in)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// GetIdeaHandler godoc
// @Summary      Get idea by id
// @Description  Get a single stored idea by its id (e.g. reddit_abc123)
// @Tags         ideas
// @Param        id   path   string  true  "Idea ID"
// @Produce      json
// @Success      200  {object}  models.Idea
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /v1/ideas/{id} [get]
func GetIdeaHandler(svc *services.IdeaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		idea, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, idea)
	}
}
