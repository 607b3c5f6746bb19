package feeder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"golang.org/x/time/rate"
)

const FEEDER_TIMEOUT = 30 * time.Second

// bodySampleLimit 는 오류 메시지에 포함할 응답 본문의 최대 바이트 수다.
const bodySampleLimit = 512

// HTTPOptions 는 각 소스 클라이언트가 공유하는 전송 설정이다.
type HTTPOptions struct {
	Client      *http.Client
	Timeout     time.Duration
	MaxRetries  int
	BackoffBase time.Duration
	BackoffMax  time.Duration
	// RequestsPerSecond 가 0 이하면 속도 제한을 두지 않는다.
	RequestsPerSecond float64
	Burst             int
}

func (o HTTPOptions) withDefaults() HTTPOptions {
	if o.Timeout <= 0 {
		o.Timeout = FEEDER_TIMEOUT
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.BackoffBase <= 0 {
		o.BackoffBase = 500 * time.Millisecond
	}
	if o.BackoffMax < o.BackoffBase {
		o.BackoffMax = o.BackoffBase
	}
	if o.Burst <= 0 {
		o.Burst = 1
	}
	return o
}

// StatusError 는 성공(2xx)이 아닌 응답을 표현한다.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// retryableStatus 는 재시도 대상 상태 코드(429, 5xx)인지 판단한다.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// httpDoer 는 속도 제한과 재시도 정책을 적용해 요청을 수행한다.
type httpDoer struct {
	client   *http.Client
	limiter  *rate.Limiter
	executor failsafe.Executor[*http.Response]
}

//nolint:bodyclose // *http.Response is only a type parameter here
func newHTTPDoer(opts HTTPOptions) *httpDoer {
	opts = opts.withDefaults()

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst)
	}

	policy := retrypolicy.NewBuilder[*http.Response]().
		WithBackoff(opts.BackoffBase, opts.BackoffMax).
		WithMaxRetries(opts.MaxRetries).
		WithJitterFactor(0.1).
		HandleIf(func(_ *http.Response, err error) bool {
			if err == nil {
				return false
			}
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		}).
		Build()

	return &httpDoer{
		client:   client,
		limiter:  limiter,
		executor: failsafe.With(policy),
	}
}

// do 는 매 시도마다 newReq 로 요청을 새로 만든다. 재시도 대상 응답은 본문을
// 닫은 뒤 StatusError 로 바꿔 정책에 넘기므로, 반환된 응답만 호출자가 닫으면 된다.
func (d *httpDoer) do(ctx context.Context, newReq func(ctx context.Context) (*http.Request, error)) (*http.Response, error) {
	return d.executor.WithContext(ctx).Get(func() (*http.Response, error) {
		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		req, err := newReq(ctx)
		if err != nil {
			return nil, err
		}

		resp, err := d.client.Do(req)
		if err != nil {
			if resp != nil {
				resp.Body.Close()
			}
			return nil, err
		}

		if retryableStatus(resp.StatusCode) {
			return nil, drainStatusError(req, resp)
		}
		return resp, nil
	})
}

// getJSON 은 2xx 응답 본문을 out 으로 디코딩한다.
func (d *httpDoer) getJSON(ctx context.Context, newReq func(ctx context.Context) (*http.Request, error), out any) error {
	resp, err := d.do(ctx, newReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return drainStatusError(resp.Request, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func drainStatusError(req *http.Request, resp *http.Response) error {
	defer resp.Body.Close()
	sample, _ := io.ReadAll(io.LimitReader(resp.Body, bodySampleLimit))

	url := ""
	if req != nil && req.URL != nil {
		url = req.URL.Redacted()
	}
	return &StatusError{URL: url, StatusCode: resp.StatusCode, Body: string(sample)}
}
