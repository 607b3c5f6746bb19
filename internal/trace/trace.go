// Package trace ties the log lines of one collection run together.
//
// A run (an API request or a scheduled aggregation) carries a request id in
// its context. Each source fetched during the run opens a Span numbered
// 1, 2, 3, ... within that request and labelled with the source platform.
package trace

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"idea-feed/internal/logger"
	"idea-feed/models"
)

type ctxKey int

const (
	runKey ctxKey = iota
	spanKey
)

type run struct {
	requestID string
	spans     atomic.Int64
}

// Span is one source fetch inside a run.
type Span struct {
	RequestID string
	ID        string
	Platform  models.Platform
	Start     time.Time
}

// NewRequestID returns a fresh id for a run.
func NewRequestID() string {
	return uuid.NewString()
}

// WithRequest starts a run with requestID. An empty requestID gets a fresh one.
func WithRequest(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = NewRequestID()
	}
	return context.WithValue(ctx, runKey, &run{requestID: requestID})
}

// EnsureRequest returns ctx unchanged when it already carries a run.
func EnsureRequest(ctx context.Context) context.Context {
	if runFrom(ctx) != nil {
		return ctx
	}
	return WithRequest(ctx, "")
}

func runFrom(ctx context.Context) *run {
	if ctx == nil {
		return nil
	}
	r, _ := ctx.Value(runKey).(*run)
	return r
}

// RequestIDFromContext returns "" outside a run.
func RequestIDFromContext(ctx context.Context) string {
	if r := runFrom(ctx); r != nil {
		return r.requestID
	}
	return ""
}

// SpanCount reports how many spans the run has opened so far.
func SpanCount(ctx context.Context) int64 {
	if r := runFrom(ctx); r != nil {
		return r.spans.Load()
	}
	return 0
}

// StartSpan opens the next span of the run for a fetch from platform. A
// context without a run gets one first.
func StartSpan(ctx context.Context, platform models.Platform) (context.Context, Span) {
	ctx = EnsureRequest(ctx)
	r := runFrom(ctx)
	span := Span{
		RequestID: r.requestID,
		ID:        strconv.FormatInt(r.spans.Add(1), 10),
		Platform:  platform,
		Start:     time.Now(),
	}
	return context.WithValue(ctx, spanKey, span), span
}

func SpanFromContext(ctx context.Context) (Span, bool) {
	if ctx == nil {
		return Span{}, false
	}
	s, ok := ctx.Value(spanKey).(Span)
	return s, ok
}

// Fields returns the span's log fields. Callers may add to the map.
func (s Span) Fields() logger.Fields {
	return logger.Fields{
		"request_id": s.RequestID,
		"span_id":    s.ID,
		"platform":   string(s.Platform),
	}
}

func (s Span) Elapsed() time.Duration {
	return time.Since(s.Start)
}
