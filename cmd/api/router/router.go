package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"idea-feed/cmd/api/handlers"
	"idea-feed/cmd/api/middleware"
	"idea-feed/cmd/api/services"
	_ "idea-feed/docs"
)

// Deps 는 라우터가 노출하는 서비스들이다.
type Deps struct {
	AllowedOrigins []string
	Scrape         *services.ScrapeService
	Classify       *services.ClassifyService
	// Ideas 가 nil 이면 (Mongo 미연결) /api/v1/ideas 를 등록하지 않는다.
	Ideas *services.IdeaService
	// Health 가 오류를 반환하면 /health 는 503 을 응답한다.
	Health func(ctx context.Context) error
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(deps.AllowedOrigins))
	r.Use(middleware.RequestTrace())
	r.Use(middleware.RequestMetrics())
	r.NoMethod(handlers.MethodNotAllowedHandler)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if deps.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
			defer cancel()
			if err := deps.Health(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 화면에서 자격 증명을 넘겨 호출하는 단일 플랫폼 수집
	api := r.Group("/api")
	{
		api.POST("/scrape-reddit", handlers.ScrapeRedditHandler(deps.Scrape))
		api.POST("/scrape-twitter", handlers.ScrapeTwitterHandler(deps.Scrape))
	}

	// v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.POST("/scrape", handlers.CollectHandler(deps.Scrape))
		v1.GET("/scrape/status", handlers.ScrapeStatusHandler(deps.Scrape))
		v1.POST("/classify", handlers.ClassifyHandler(deps.Classify))

		if deps.Ideas != nil {
			v1.GET("/ideas", handlers.ListIdeasHandler(deps.Ideas))
			v1.GET("/ideas/:id", handlers.GetIdeaHandler(deps.Ideas))
		}
	}

	return r
}
