package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"idea-feed/internal/logger"
	"idea-feed/internal/trace"
	"idea-feed/metrics"
	"idea-feed/models"
)

// ErrNoSources 는 요청에 해당하는 활성 소스가 하나도 없을 때 반환된다.
var ErrNoSources = errors.New("no idea sources enabled")

// ErrSinkWrite 는 수집은 끝났지만 Sink 에 일부 아이디어를 쓰지 못했을 때 반환된다.
var ErrSinkWrite = errors.New("sink write failed")

type SourceStatus string

const (
	StatusIdle     SourceStatus = "idle"
	StatusScraping SourceStatus = "scraping"
	StatusSuccess  SourceStatus = "success"
	StatusError    SourceStatus = "error"
)

type CollectRequest struct {
	// Platforms 가 비어 있으면 모든 소스를 실행한다.
	Platforms []models.Platform
	// Query 가 있으면 결과 Ideas 에 FilterAndSort 를 적용한다. Sink 에는 전체가 기록된다.
	Query *FeedQuery
}

type CollectResult struct {
	Ideas      []models.Idea                    `json:"ideas"`
	Status     map[models.Platform]SourceStatus `json:"status"`
	Errors     map[models.Platform]string       `json:"errors,omitempty"`
	Duplicates int                              `json:"duplicates"`
	Sink       *SinkReport                      `json:"sink,omitempty"`
}

// Collector 는 소스 실행, 분류, 중복 제거, 저장을 한 번에 수행한다.
type Collector struct {
	sources     []Source
	classifiers ClassifierSet
	sink        Sink
	now         func() time.Time

	mu     sync.RWMutex
	status map[models.Platform]SourceStatus
}

type CollectorOption func(*Collector)

func WithSink(s Sink) CollectorOption {
	return func(c *Collector) { c.sink = s }
}

func WithClock(now func() time.Time) CollectorOption {
	return func(c *Collector) { c.now = now }
}

func NewCollector(sources []Source, classifiers ClassifierSet, opts ...CollectorOption) *Collector {
	c := &Collector{
		sources:     sources,
		classifiers: classifiers,
		now:         time.Now,
		status:      make(map[models.Platform]SourceStatus, len(sources)),
	}
	for _, src := range sources {
		c.status[src.Platform()] = StatusIdle
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Status 는 소스별 마지막 상태의 복사본을 반환한다.
func (c *Collector) Status() map[models.Platform]SourceStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[models.Platform]SourceStatus, len(c.status))
	for p, s := range c.status {
		out[p] = s
	}
	return out
}

func (c *Collector) setStatus(p models.Platform, s SourceStatus) {
	c.mu.Lock()
	c.status[p] = s
	c.mu.Unlock()
}

// Collect runs the selected sources in order. A failing source is reported
// and skipped; an error is returned only when every selected source failed or
// the sink could not store every idea (ErrSinkWrite). The result is filled in
// both cases.
func (c *Collector) Collect(ctx context.Context, req CollectRequest) (CollectResult, error) {
	selected := c.selectSources(req.Platforms)
	if len(selected) == 0 {
		return CollectResult{}, ErrNoSources
	}
	// 같은 실행의 소스 span 들이 하나의 request_id 를 공유한다.
	ctx = trace.EnsureRequest(ctx)

	result := CollectResult{
		Ideas:  []models.Idea{},
		Status: make(map[models.Platform]SourceStatus, len(selected)),
		Errors: map[models.Platform]string{},
	}
	for _, src := range selected {
		result.Status[src.Platform()] = StatusIdle
	}

	var collected []models.Idea
	var errs []error
	for _, src := range selected {
		platform := src.Platform()
		ideas, err := c.CollectSource(ctx, src)
		if err != nil {
			result.Status[platform] = StatusError
			result.Errors[platform] = err.Error()
			errs = append(errs, fmt.Errorf("%s: %w", platform, err))
			continue
		}
		result.Status[platform] = StatusSuccess
		collected = append(collected, ideas...)
	}

	if len(errs) == len(selected) {
		return result, errors.Join(errs...)
	}

	unique, dropped := DedupeByTitle(collected)
	metrics.DuplicatesDropped.Add(float64(dropped))
	result.Duplicates = dropped
	result.Ideas = unique

	logger.InfoWithFields("collection finished", logger.Fields{
		"request_id": trace.RequestIDFromContext(ctx),
		"ideas":      len(unique),
		"duplicates": dropped,
		"failed":     len(errs),
	})

	var sinkErr error
	if c.sink != nil && len(unique) > 0 {
		report, err := c.sink.Write(ctx, unique)
		result.Sink = &report
		if err != nil {
			logger.ErrorWithFields("sink write failed", logger.Fields{
				"sink":   c.sink.Name(),
				"failed": report.Failed,
				"error":  err.Error(),
			})
			sinkErr = fmt.Errorf("%w: %s: %w", ErrSinkWrite, c.sink.Name(), err)
		}
	}

	if req.Query != nil {
		result.Ideas = FilterAndSort(result.Ideas, *req.Query)
	}
	return result, sinkErr
}

func (c *Collector) selectSources(platforms []models.Platform) []Source {
	if len(platforms) == 0 {
		return c.sources
	}
	want := make(map[models.Platform]bool, len(platforms))
	for _, p := range platforms {
		want[p] = true
	}
	var out []Source
	for _, src := range c.sources {
		if want[src.Platform()] {
			out = append(out, src)
		}
	}
	return out
}

// CollectSource fetches one source and keeps the posts classified as ideas,
// in fetch order and without title dedupe. src does not have to be one of
// the collector's configured sources.
func (c *Collector) CollectSource(ctx context.Context, src Source) ([]models.Idea, error) {
	platform := src.Platform()
	label := string(platform)
	c.setStatus(platform, StatusScraping)

	ctx, span := trace.StartSpan(ctx, platform)
	logger.DebugWithFields("source collection started", span.Fields())

	posts, err := src.Fetch(ctx)
	metrics.SourceDuration.WithLabelValues(label).Observe(span.Elapsed().Seconds())
	if err != nil {
		c.setStatus(platform, StatusError)
		metrics.SourceRuns.WithLabelValues(label, "error").Inc()
		fields := span.Fields()
		fields["error"] = err.Error()
		logger.ErrorWithFields("source collection failed", fields)
		return nil, err
	}
	metrics.PostsFetched.WithLabelValues(label).Add(float64(len(posts)))

	now := c.now()
	ideas := make([]models.Idea, 0, len(posts))
	for _, post := range posts {
		cls := c.classifiers.Classify(post)
		if !cls.IsIdea {
			continue
		}
		metrics.IdeasClassified.WithLabelValues(label, string(cls.Category)).Inc()
		ideas = append(ideas, BuildIdea(post, cls, now))
	}

	c.setStatus(platform, StatusSuccess)
	metrics.SourceRuns.WithLabelValues(label, "success").Inc()
	fields := span.Fields()
	fields["posts"] = len(posts)
	fields["ideas"] = len(ideas)
	fields["duration"] = span.Elapsed().String()
	logger.InfoWithFields("source collected", fields)
	return ideas, nil
}
