package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"idea-feed/internal/trace"
	"idea-feed/internal/logger"
)

const headerRequestID = "X-Request-Id"

// sensitivePaths 의 요청 바디는 API 자격 증명을 담고 있어 로그에 남기지 않는다.
var sensitivePaths = map[string]bool{
	"/api/scrape-reddit":  true,
	"/api/scrape-twitter": true,
}

// RequestTrace는 모든 inbound HTTP 요청에 Request ID 를 보장해 컨텍스트/헤더에 저장하고,
// 요청 중 열린 소스 span 수와 함께 접근 로그를 남긴다.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		// 요청 하나가 수집 실행 하나다. 소스별 span 은 Collector 가 1,2,3,... 으로 연다.
		ctxWithTrace := trace.WithRequest(req.Context(), req.Header.Get(headerRequestID))
		requestID := trace.RequestIDFromContext(ctxWithTrace)
		c.Request = req.WithContext(ctxWithTrace)
		req = c.Request

		c.Request.Header.Set(headerRequestID, requestID)
		c.Writer.Header().Set(headerRequestID, requestID)

		// 쿼리 및 요청 바디 스니펫을 함께 로깅한다.
		// query_params 는 멀티 값 쿼리도 모두 보존하기 위해 map[string][]string 으로 기록한다.
		queryParams := map[string][]string{}
		for key, values := range req.URL.Query() {
			if len(values) > 0 {
				queryParams[key] = values
			}
		}
		var bodySnippet string
		if req.Body != nil && req.ContentLength != 0 &&
			(req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch || req.Method == http.MethodDelete) {
			if bodyBytes, err := io.ReadAll(req.Body); err == nil {
				if len(bodyBytes) > 0 {
					const maxBodyLog = 1024
					if len(bodyBytes) > maxBodyLog {
						bodySnippet = string(bodyBytes[:maxBodyLog])
					} else {
						bodySnippet = string(bodyBytes)
					}
				}
				// gin 핸들러에서 다시 읽을 수 있도록 Body 를 복원한다.
				c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			}
		}

		c.Next()

		status := c.Writer.Status()
		duration := time.Since(start)
		fields := logger.Fields{
			"method":       req.Method,
			"path":         req.URL.Path,
			"query_params": queryParams,
			"status":       status,
			"duration":     duration.String(),
			"request_id":   requestID,
			"source_spans": trace.SpanCount(c.Request.Context()),
		}
		if bodySnippet != "" && !sensitivePaths[req.URL.Path] {
			fields["body"] = bodySnippet
		}
		logger.InfoWithFields("completed request", fields)
	}
}
