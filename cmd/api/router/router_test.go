package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idea-feed/cmd/api/router"
	"idea-feed/cmd/api/services"
	"idea-feed/config"
	"idea-feed/feeder"
	"idea-feed/internal/trace"
	"idea-feed/models"
	"idea-feed/repositories"
	ideaServices "idea-feed/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSource struct {
	platform models.Platform
	posts    []feeder.Post
	err      error
	spans    []trace.Span
}

func (s *stubSource) Platform() models.Platform { return s.platform }

func (s *stubSource) Fetch(ctx context.Context) ([]feeder.Post, error) {
	if span, ok := trace.SpanFromContext(ctx); ok {
		s.spans = append(s.spans, span)
	}
	return s.posts, s.err
}

type stubStore struct {
	ideas   map[string]models.Idea
	lastOpt repositories.ListIdeasOptions
}

func (s *stubStore) FindByID(ctx context.Context, id string) (*models.Idea, error) {
	idea, ok := s.ideas[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &idea, nil
}

func (s *stubStore) List(ctx context.Context, opt repositories.ListIdeasOptions) ([]models.Idea, int64, error) {
	s.lastOpt = opt
	out := []models.Idea{}
	for _, idea := range s.ideas {
		out = append(out, idea)
	}
	return out, int64(len(out)), nil
}

func ideaPost(platform models.Platform, id, title string) feeder.Post {
	return feeder.Post{
		ID:        string(platform) + "_" + id,
		Platform:  platform,
		Title:     title,
		CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

type fixture struct {
	engine       *gin.Engine
	redditCreds  *feeder.RedditCredentials
	twitterToken *string
	store        *stubStore
}

type fixtureOptions struct {
	redditErr   error
	twitterEnv  string
	configured  []ideaServices.Source
	healthError error
	noStore     bool
}

func newFixture(t *testing.T, o fixtureOptions) *fixture {
	t.Helper()
	f := &fixture{
		redditCreds:  &feeder.RedditCredentials{},
		twitterToken: new(string),
		store: &stubStore{ideas: map[string]models.Idea{
			"reddit_1": {ID: "reddit_1", Title: "Plant tracker", Platform: models.PlatformReddit, Tags: []string{}},
		}},
	}

	classifiers := ideaServices.NewClassifierSet(config.PresetUnion)
	collector := ideaServices.NewCollector(o.configured, classifiers)
	scrape := services.NewScrapeService(config.Default(), collector,
		services.WithRedditSource(func(creds feeder.RedditCredentials) ideaServices.Source {
			*f.redditCreds = creds
			return &stubSource{
				platform: models.PlatformReddit,
				err:      o.redditErr,
				posts: []feeder.Post{
					ideaPost(models.PlatformReddit, "1", "App idea: plant tracker"),
					ideaPost(models.PlatformReddit, "2", "Nice sunset today"),
				},
			}
		}),
		services.WithTwitterSource(func(token string) ideaServices.Source {
			*f.twitterToken = token
			return &stubSource{platform: models.PlatformTwitter, posts: []feeder.Post{
				ideaPost(models.PlatformTwitter, "9", "Building an mvp this weekend #saas"),
			}}
		}),
		services.WithTwitterTokenFallback(func() string { return o.twitterEnv }),
	)

	deps := router.Deps{
		Scrape:   scrape,
		Classify: services.NewClassifyService(classifiers),
	}
	if !o.noStore {
		deps.Ideas = services.NewIdeaService(f.store)
	}
	if o.healthError != nil {
		deps.Health = func(ctx context.Context) error { return o.healthError }
	}
	f.engine = router.New(deps)
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestScrapeReddit(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		redditErr error
		status    int
		errMsg    string
	}{
		{name: "missing body", body: "", status: http.StatusBadRequest, errMsg: "Reddit credentials required"},
		{name: "missing secret", body: `{"clientId":"id"}`, status: http.StatusBadRequest, errMsg: "Reddit credentials required"},
		{
			name:      "auth rejected",
			body:      `{"clientId":"id","clientSecret":"secret"}`,
			redditErr: fmt.Errorf("%w: 401", feeder.ErrRedditAuth),
			status:    http.StatusUnauthorized,
			errMsg:    "Failed to authenticate with Reddit API",
		},
		{
			name:      "upstream failure",
			body:      `{"clientId":"id","clientSecret":"secret"}`,
			redditErr: errors.New("boom"),
			status:    http.StatusInternalServerError,
			errMsg:    "Reddit scraping failed: boom",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, fixtureOptions{redditErr: tc.redditErr})
			rec := f.do(http.MethodPost, "/api/scrape-reddit", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.errMsg, decode(t, rec)["error"])
		})
	}
}

func TestScrapeRedditSuccess(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	rec := f.do(http.MethodPost, "/api/scrape-reddit", `{"clientId":"id","clientSecret":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.EqualValues(t, 1, body["count"])
	ideas := body["ideas"].([]any)
	require.Len(t, ideas, 1)
	assert.Equal(t, "App idea: plant tracker", ideas[0].(map[string]any)["title"])
	assert.Equal(t, feeder.RedditCredentials{ClientID: "id", ClientSecret: "secret"}, *f.redditCreds)
}

func TestScrapeTwitterTokenFallback(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	rec := f.do(http.MethodPost, "/api/scrape-twitter", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "TWITTER_BEARER_TOKEN")

	f = newFixture(t, fixtureOptions{twitterEnv: "env-token"})
	rec = f.do(http.MethodPost, "/api/scrape-twitter", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "env-token", *f.twitterToken)

	rec = f.do(http.MethodPost, "/api/scrape-twitter", `{"bearerToken":"body-token"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body-token", *f.twitterToken)
	assert.EqualValues(t, 1, decode(t, rec)["count"])
}

func TestScrapeRoutesRejectOtherMethods(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	for _, path := range []string{"/api/scrape-reddit", "/api/scrape-twitter"} {
		rec := f.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
		assert.Equal(t, "Method not allowed", decode(t, rec)["error"])
	}
}

func TestPreflight(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	// browsers send the requested header names lower-cased
	for _, headers := range []string{"content-type", "x-request-id", "content-type,x-request-id"} {
		t.Run(headers, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/scrape-reddit", nil)
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", headers)
			rec := httptest.NewRecorder()
			f.engine.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestCollect(t *testing.T) {
	f := newFixture(t, fixtureOptions{configured: []ideaServices.Source{
		&stubSource{platform: models.PlatformReddit, posts: []feeder.Post{
			ideaPost(models.PlatformReddit, "1", "Startup idea: dog walking"),
		}},
		&stubSource{platform: models.PlatformTwitter, err: errors.New("rate limited")},
	}})

	rec := f.do(http.MethodPost, "/api/v1/scrape?sort=newest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, map[string]any{"reddit": "success", "twitter": "error"}, body["status"])
	assert.Equal(t, map[string]any{"twitter": "rate limited"}, body["errors"])

	rec = f.do(http.MethodGet, "/api/v1/scrape/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"reddit": "success", "twitter": "error"}, decode(t, rec)["status"])
}

func TestCollectNoIdeasMessage(t *testing.T) {
	f := newFixture(t, fixtureOptions{configured: []ideaServices.Source{
		&stubSource{platform: models.PlatformRSS},
	}})
	rec := f.do(http.MethodPost, "/api/v1/scrape", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "No ideas found. Check your API configuration and try again.", body["message"])
	assert.Equal(t, []any{}, body["ideas"])
}

func TestCollectFailures(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	rec := f.do(http.MethodPost, "/api/v1/scrape", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f = newFixture(t, fixtureOptions{configured: []ideaServices.Source{
		&stubSource{platform: models.PlatformReddit, err: errors.New("down")},
	}})
	rec = f.do(http.MethodPost, "/api/v1/scrape", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, decode(t, rec)["message"], "down")
}

func TestClassify(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	rec := f.do(http.MethodPost, "/api/v1/classify", `{"title":"I wish there was an app for #React devs","platform":"twitter"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["isIdea"])
	assert.Equal(t, []any{"React"}, body["tags"])
	assert.Contains(t, body, "marketPotential")

	rec = f.do(http.MethodPost, "/api/v1/classify", `{"title":"x","platform":"myspace"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/api/v1/classify", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListIdeas(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	rec := f.do(http.MethodGet, "/api/v1/ideas?page_size=500&platform=reddit&sort=popular&search=plant", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.EqualValues(t, 1, body["page"])
	assert.EqualValues(t, repositories.MaxPageSize, body["page_size"])
	assert.EqualValues(t, 1, body["total"])
	assert.Len(t, body["data"], 1)

	assert.Equal(t, repositories.ListIdeasOptions{
		Page: 1, PageSize: repositories.MaxPageSize, Platform: "reddit", Sort: "popular", Search: "plant",
	}, f.store.lastOpt)
}

func TestGetIdea(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	rec := f.do(http.MethodGet, "/api/v1/ideas/reddit_1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Plant tracker", decode(t, rec)["title"])

	rec = f.do(http.MethodGet, "/api/v1/ideas/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIdeasRoutesNeedStore(t *testing.T) {
	f := newFixture(t, fixtureOptions{noStore: true})
	rec := f.do(http.MethodGet, "/api/v1/ideas", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	rec := newFixture(t, fixtureOptions{}).do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = newFixture(t, fixtureOptions{healthError: errors.New("no mongo")}).do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))

	rec = f.do(http.MethodGet, "/health", "")
	_, err := uuid.Parse(rec.Header().Get("X-Request-Id"))
	assert.NoError(t, err)
}

func TestCollectOpensSpanPerSource(t *testing.T) {
	reddit := &stubSource{platform: models.PlatformReddit}
	rss := &stubSource{platform: models.PlatformRSS}
	f := newFixture(t, fixtureOptions{configured: []ideaServices.Source{reddit, rss}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scrape", nil)
	req.Header.Set("X-Request-Id", "req-7")
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, reddit.spans, 1)
	require.Len(t, rss.spans, 1)
	assert.Equal(t, "req-7", reddit.spans[0].RequestID)
	assert.Equal(t, "1", reddit.spans[0].ID)
	assert.Equal(t, models.PlatformReddit, reddit.spans[0].Platform)
	assert.Equal(t, "req-7", rss.spans[0].RequestID)
	assert.Equal(t, "2", rss.spans[0].ID)
	assert.Equal(t, models.PlatformRSS, rss.spans[0].Platform)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	f.do(http.MethodGet, "/health", "")

	rec := f.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "idea_feed_http_requests_total")
}
