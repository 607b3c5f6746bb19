package main

import (
	"context"
	"sync"

	"idea-feed/internal/logger"
	"idea-feed/services"
)

// AggregateService 는 설정된 소스 전체를 주기적으로 수집한다.
type AggregateService struct {
	collector *services.Collector

	// 이전 수집이 끝나기 전에 다음 스케줄이 오면 건너뛴다.
	running sync.Mutex
}

func NewAggregateService(collector *services.Collector) *AggregateService {
	return &AggregateService{collector: collector}
}

// RunFeedCollection 은 수집 한 번을 실행한다. 이미 실행 중이면 false 를 반환한다.
func (s *AggregateService) RunFeedCollection(ctx context.Context) (bool, error) {
	if !s.running.TryLock() {
		logger.WarnWithFields("previous collection still running, skip", nil)
		return false, nil
	}
	defer s.running.Unlock()

	res, err := s.collector.Collect(ctx, services.CollectRequest{})
	fields := logger.Fields{
		"ideas":      len(res.Ideas),
		"duplicates": res.Duplicates,
		"status":     res.Status,
	}
	if res.Sink != nil {
		fields["sink"] = *res.Sink
	}
	if err != nil {
		fields["error"] = err.Error()
		logger.ErrorWithFields("aggregate run failed", fields)
		return true, err
	}
	logger.InfoWithFields("aggregate run finished", fields)
	return true, nil
}
