package feeder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"idea-feed/internal/logger"
	"idea-feed/models"
)

const (
	RedditTokenURL = "https://www.reddit.com/api/v1/access_token"
	RedditAPIURL   = "https://oauth.reddit.com"
	RedditWebURL   = "https://reddit.com"
)

var (
	// ErrMissingCredentials 는 client id/secret 또는 bearer token 이 비어 있을 때 반환된다.
	ErrMissingCredentials = errors.New("credentials required")
	// ErrRedditAuth 는 reddit 토큰 발급이 거절되었을 때 반환된다.
	ErrRedditAuth = errors.New("failed to authenticate with reddit api")
)

type RedditCredentials struct {
	ClientID     string
	ClientSecret string
}

type RedditOptions struct {
	UserAgent string
	// TokenURL, APIURL 은 테스트에서 교체할 수 있도록 열어둔다.
	TokenURL string
	APIURL   string
	HTTP     HTTPOptions
}

// RedditClient 는 client-credentials 토큰으로 subreddit 목록을 읽는다.
type RedditClient struct {
	creds RedditCredentials
	opts  RedditOptions
	http  *httpDoer

	token string
}

func NewRedditClient(creds RedditCredentials, opts RedditOptions) *RedditClient {
	if opts.TokenURL == "" {
		opts.TokenURL = RedditTokenURL
	}
	if opts.APIURL == "" {
		opts.APIURL = RedditAPIURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "AppIdeasAggregator/1.0"
	}
	return &RedditClient{creds: creds, opts: opts, http: newHTTPDoer(opts.HTTP)}
}

type redditToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Authenticate 는 access token 을 발급받아 클라이언트에 보관한다.
func (c *RedditClient) Authenticate(ctx context.Context) error {
	if c.creds.ClientID == "" || c.creds.ClientSecret == "" {
		return ErrMissingCredentials
	}

	newReq := func(ctx context.Context) (*http.Request, error) {
		form := url.Values{"grant_type": {"client_credentials"}}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.TokenURL, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.SetBasicAuth(c.creds.ClientID, c.creds.ClientSecret)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("User-Agent", c.opts.UserAgent)
		return req, nil
	}

	var tok redditToken
	if err := c.http.getJSON(ctx, newReq, &tok); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode < http.StatusInternalServerError {
			return fmt.Errorf("%w: %v", ErrRedditAuth, err)
		}
		return fmt.Errorf("reddit token request failed: %w", err)
	}
	if tok.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", ErrRedditAuth)
	}

	c.token = tok.AccessToken
	return nil
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Author      string  `json:"author"`
	CreatedUTC  float64 `json:"created_utc"`
	Ups         int     `json:"ups"`
	NumComments int     `json:"num_comments"`
	Permalink   string  `json:"permalink"`
	// 개수만 사용한다.
	AllAwardings []json.RawMessage `json:"all_awardings"`
}

// Hot 은 r/<subreddit>/hot 의 상위 limit 개 게시글을 반환한다.
func (c *RedditClient) Hot(ctx context.Context, subreddit string, limit int) ([]Post, error) {
	if c.token == "" {
		return nil, fmt.Errorf("%w: not authenticated", ErrRedditAuth)
	}

	endpoint := fmt.Sprintf("%s/r/%s/hot?limit=%s", c.opts.APIURL, url.PathEscape(subreddit), strconv.Itoa(limit))
	newReq := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("User-Agent", c.opts.UserAgent)
		return req, nil
	}

	var listing redditListing
	if err := c.http.getJSON(ctx, newReq, &listing); err != nil {
		return nil, fmt.Errorf("failed to fetch r/%s: %w", subreddit, err)
	}

	posts := make([]Post, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		posts = append(posts, child.Data.toPost(subreddit))
	}
	return posts, nil
}

func (p redditPost) toPost(subreddit string) Post {
	sec, frac := int64(p.CreatedUTC), p.CreatedUTC-float64(int64(p.CreatedUTC))
	return Post{
		ID:        "reddit_" + p.ID,
		Platform:  models.PlatformReddit,
		Source:    "r/" + subreddit,
		Title:     p.Title,
		Body:      p.Selftext,
		Author:    "u/" + p.Author,
		URL:       RedditWebURL + p.Permalink,
		CreatedAt: time.Unix(sec, int64(frac*1e9)).UTC(),
		Upvotes:   p.Ups,
		Comments:  p.NumComments,
		Awards:    len(p.AllAwardings),
	}
}

// Collect 는 인증 후 subreddits 를 순서대로 읽는다. subreddit 하나의 실패는
// 로그만 남기고 건너뛰며, 인증 실패만 오류로 반환한다.
func (c *RedditClient) Collect(ctx context.Context, subreddits []string, limit int) ([]Post, error) {
	if err := c.Authenticate(ctx); err != nil {
		return nil, err
	}

	var posts []Post
	for _, sub := range subreddits {
		if err := ctx.Err(); err != nil {
			return posts, err
		}

		items, err := c.Hot(ctx, sub, limit)
		if err != nil {
			logger.ErrorWithFields("reddit subreddit fetch failed", logger.Fields{
				"subreddit": sub,
				"error":     err.Error(),
			})
			continue
		}
		logger.DebugWithFields("reddit subreddit fetched", logger.Fields{
			"subreddit": sub,
			"count":     len(items),
		})
		posts = append(posts, items...)
	}
	return posts, nil
}
