package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	_ "idea-feed/classifier"
	"idea-feed/cmd/api/dto"
	"idea-feed/cmd/api/services"
	"idea-feed/models"
)

// ClassifyHandler godoc
// @Summary      Classify a post
// @Description  Run the keyword classifier on a title and body. platform selects the rule set and enables hashtag tags for twitter.
// @Tags         classify
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ClassifyRequestDTO  true  "Post text"
// @Success      200   {object}  classifier.Classification
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Router       /v1/classify [post]
func ClassifyHandler(svc *services.ClassifyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ClassifyRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid request body"})
			return
		}
		platform := models.Platform(req.Platform)
		switch platform {
		case "", models.PlatformReddit, models.PlatformTwitter, models.PlatformRSS:
		default:
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "unknown platform: " + req.Platform})
			return
		}
		c.JSON(http.StatusOK, svc.Classify(req.Title, req.Body, platform))
	}
}
