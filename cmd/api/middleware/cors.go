package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

var (
	corsAllowedMethods = []string{
		http.MethodGet, http.MethodOptions, http.MethodPatch,
		http.MethodDelete, http.MethodPost, http.MethodPut,
	}
	corsAllowedHeaders = []string{
		"X-CSRF-Token", "X-Requested-With", "Accept", "Accept-Version",
		"Content-Length", "Content-MD5", "Content-Type", "Date", "X-Api-Version",
		"X-Request-Id",
	}
)

// CORS 는 rs/cors 정책을 gin 미들웨어로 감싼다. origins 가 비어 있으면 모든
// Origin 을 허용한다. OPTIONS 요청은 라우트와 무관하게 200 으로 끝낸다.
func CORS(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	policy := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   corsAllowedMethods,
		AllowedHeaders:   corsAllowedHeaders,
		ExposedHeaders:   []string{headerRequestID},
		AllowCredentials: true,
	})
	return func(c *gin.Context) {
		policy.HandlerFunc(c.Writer, c.Request)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
