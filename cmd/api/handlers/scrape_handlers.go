package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"idea-feed/cmd/api/dto"
	"idea-feed/cmd/api/services"
	"idea-feed/internal/trace"
	"idea-feed/feeder"
	"idea-feed/internal/logger"
	"idea-feed/models"
	ideaServices "idea-feed/services"
)

const (
	msgRedditCredentials = "Reddit credentials required"
	msgRedditAuth        = "Failed to authenticate with Reddit API"
	msgTwitterToken      = "Twitter Bearer Token required. Either configure in app settings or set TWITTER_BEARER_TOKEN environment variable."
	msgNoIdeas           = "No ideas found. Check your API configuration and try again."
)

// ScrapeRedditHandler godoc
// @Summary      Scrape reddit
// @Description  Fetch hot posts of the default subreddits with the given app credentials and return the ones classified as ideas
// @Tags         scrape
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RedditScrapeRequestDTO  true  "Reddit app credentials"
// @Success      200   {object}  dto.ScrapeResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      401   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /scrape-reddit [post]
func ScrapeRedditHandler(svc *services.ScrapeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.RedditScrapeRequestDTO
		// 본문이 비어 있거나 형식이 틀리면 자격 증명 누락으로 처리한다.
		_ = c.ShouldBindJSON(&req)

		ideas, err := svc.ScrapeReddit(c.Request.Context(), feeder.RedditCredentials{
			ClientID:     req.ClientID,
			ClientSecret: req.ClientSecret,
		})
		switch {
		case errors.Is(err, feeder.ErrMissingCredentials):
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: msgRedditCredentials})
			return
		case errors.Is(err, feeder.ErrRedditAuth):
			c.JSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: msgRedditAuth})
			return
		case err != nil:
			logger.ErrorWithFields("reddit scrape failed", logger.Fields{
				"request_id": trace.RequestIDFromContext(c.Request.Context()),
				"error":      err.Error(),
			})
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "Reddit scraping failed: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.ScrapeResponseDTO{Ideas: ideas, Count: len(ideas)})
	}
}

// ScrapeTwitterHandler godoc
// @Summary      Scrape twitter
// @Description  Search the default hashtags and accounts and return tweets classified as ideas. Falls back to TWITTER_BEARER_TOKEN when no token is sent.
// @Tags         scrape
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TwitterScrapeRequestDTO  false  "Twitter bearer token"
// @Success      200   {object}  dto.ScrapeResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /scrape-twitter [post]
func ScrapeTwitterHandler(svc *services.ScrapeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.TwitterScrapeRequestDTO
		_ = c.ShouldBindJSON(&req)

		ideas, err := svc.ScrapeTwitter(c.Request.Context(), req.BearerToken)
		switch {
		case errors.Is(err, feeder.ErrMissingCredentials):
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: msgTwitterToken})
			return
		case err != nil:
			logger.ErrorWithFields("twitter scrape failed", logger.Fields{
				"request_id": trace.RequestIDFromContext(c.Request.Context()),
				"error":      err.Error(),
			})
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "Twitter scraping failed: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.ScrapeResponseDTO{Ideas: ideas, Count: len(ideas)})
	}
}

// CollectHandler godoc
// @Summary      Collect ideas from configured sources
// @Description  Run every enabled source (reddit, twitter, rss), drop duplicate titles and apply the optional feed query
// @Tags         scrape
// @Produce      json
// @Param        sources   query  []string  false  "Platforms to run (default all enabled)"
// @Param        platform  query  string    false  "Platform filter (all = none)"
// @Param        category  query  string    false  "Category filter (all = none)"
// @Param        search    query  string    false  "Case-insensitive search on title, description and tags"
// @Param        sort      query  string    false  "trending, newest or popular"
// @Success      200  {object}  dto.CollectResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      502  {object}  dto.CollectResponseDTO
// @Router       /scrape [post]
func CollectHandler(svc *services.ScrapeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query ideaServices.FeedQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		req := ideaServices.CollectRequest{Query: &query}
		for _, p := range c.QueryArray("sources") {
			req.Platforms = append(req.Platforms, models.Platform(p))
		}

		res, err := svc.Collect(c.Request.Context(), req)
		if errors.Is(err, ideaServices.ErrNoSources) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}

		resp := dto.CollectResponseDTO{
			Ideas:      res.Ideas,
			Count:      len(res.Ideas),
			Status:     res.Status,
			Errors:     res.Errors,
			Duplicates: res.Duplicates,
		}
		switch {
		case err != nil && !errors.Is(err, ideaServices.ErrSinkWrite):
			resp.Message = "Scraping failed: " + err.Error()
			c.JSON(http.StatusBadGateway, resp)
			return
		case err != nil:
			resp.Message = err.Error()
		case len(res.Ideas) == 0 && len(res.Errors) == 0:
			resp.Message = msgNoIdeas
		}
		c.JSON(http.StatusOK, resp)
	}
}

// ScrapeStatusHandler godoc
// @Summary      Source status
// @Description  Last known state (idle, scraping, success, error) of each configured source
// @Tags         scrape
// @Produce      json
// @Success      200  {object}  dto.ScrapeStatusDTO
// @Router       /scrape/status [get]
func ScrapeStatusHandler(svc *services.ScrapeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.ScrapeStatusDTO{Status: svc.Status()})
	}
}

// MethodNotAllowedHandler 는 등록되지 않은 메서드 요청에 405 를 응답한다.
func MethodNotAllowedHandler(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, dto.ErrorResponseDTO{Error: "Method not allowed"})
}
