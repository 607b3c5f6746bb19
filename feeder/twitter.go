package feeder

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"idea-feed/internal/logger"
	"idea-feed/models"
)

const (
	TwitterAPIURL = "https://api.twitter.com/2"
	TwitterWebURL = "https://twitter.com"
)

type TwitterOptions struct {
	APIURL        string
	SearchLimit   int
	TimelineLimit int
	HTTP          HTTPOptions
}

// TwitterClient 는 v2 API 를 bearer token 으로 호출한다.
type TwitterClient struct {
	bearerToken string
	opts        TwitterOptions
	http        *httpDoer
}

func NewTwitterClient(bearerToken string, opts TwitterOptions) *TwitterClient {
	if opts.APIURL == "" {
		opts.APIURL = TwitterAPIURL
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = 50
	}
	if opts.TimelineLimit <= 0 {
		opts.TimelineLimit = 25
	}
	return &TwitterClient{bearerToken: bearerToken, opts: opts, http: newHTTPDoer(opts.HTTP)}
}

type tweetMetrics struct {
	LikeCount       int `json:"like_count"`
	RetweetCount    int `json:"retweet_count"`
	ReplyCount      int `json:"reply_count"`
	ImpressionCount int `json:"impression_count"`
}

type tweet struct {
	ID            string       `json:"id"`
	Text          string       `json:"text"`
	AuthorID      string       `json:"author_id"`
	CreatedAt     time.Time    `json:"created_at"`
	PublicMetrics tweetMetrics `json:"public_metrics"`
}

type TwitterUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type tweetsResponse struct {
	Data     []tweet `json:"data"`
	Includes struct {
		Users []TwitterUser `json:"users"`
	} `json:"includes"`
}

func (c *TwitterClient) get(ctx context.Context, endpoint string, out any) error {
	if c.bearerToken == "" {
		return ErrMissingCredentials
	}
	return c.http.getJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
		return req, nil
	}, out)
}

// SearchRecent 는 리트윗을 제외한 #hashtag 최근 트윗을 조회한다.
func (c *TwitterClient) SearchRecent(ctx context.Context, hashtag string) ([]Post, error) {
	q := url.Values{}
	q.Set("query", "#"+hashtag+" -is:retweet")
	q.Set("tweet.fields", "created_at,public_metrics,context_annotations,author_id")
	q.Set("expansions", "author_id")
	q.Set("user.fields", "username,name")
	q.Set("max_results", strconv.Itoa(c.opts.SearchLimit))

	var resp tweetsResponse
	if err := c.get(ctx, c.opts.APIURL+"/tweets/search/recent?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("failed to search #%s: %w", hashtag, err)
	}

	users := make(map[string]TwitterUser, len(resp.Includes.Users))
	for _, u := range resp.Includes.Users {
		users[u.ID] = u
	}

	posts := make([]Post, 0, len(resp.Data))
	for _, t := range resp.Data {
		author, ok := users[t.AuthorID]
		if !ok {
			author = TwitterUser{Username: "unknown", Name: "Unknown User"}
		}
		post := t.toPost("#"+hashtag, author)
		post.Impressions = t.PublicMetrics.ImpressionCount
		posts = append(posts, post)
	}
	return posts, nil
}

// UserByUsername 은 계정 이름으로 사용자 정보를 조회한다.
func (c *TwitterClient) UserByUsername(ctx context.Context, username string) (TwitterUser, error) {
	var resp struct {
		Data *TwitterUser `json:"data"`
	}
	if err := c.get(ctx, c.opts.APIURL+"/users/by/username/"+url.PathEscape(username), &resp); err != nil {
		return TwitterUser{}, fmt.Errorf("failed to get user @%s: %w", username, err)
	}
	if resp.Data == nil || resp.Data.ID == "" {
		return TwitterUser{}, fmt.Errorf("user @%s not found", username)
	}
	if resp.Data.Username == "" {
		resp.Data.Username = username
	}
	return *resp.Data, nil
}

// UserTweets 는 리트윗과 답글을 제외한 사용자의 최근 트윗을 조회한다.
func (c *TwitterClient) UserTweets(ctx context.Context, user TwitterUser) ([]Post, error) {
	q := url.Values{}
	q.Set("tweet.fields", "created_at,public_metrics")
	q.Set("max_results", strconv.Itoa(c.opts.TimelineLimit))
	q.Set("exclude", "retweets,replies")

	var resp tweetsResponse
	endpoint := fmt.Sprintf("%s/users/%s/tweets?%s", c.opts.APIURL, url.PathEscape(user.ID), q.Encode())
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("failed to get tweets for @%s: %w", user.Username, err)
	}

	posts := make([]Post, 0, len(resp.Data))
	for _, t := range resp.Data {
		posts = append(posts, t.toPost("@"+user.Username, user))
	}
	return posts, nil
}

func (t tweet) toPost(source string, author TwitterUser) Post {
	return Post{
		ID:         "twitter_" + t.ID,
		Platform:   models.PlatformTwitter,
		Source:     source,
		Title:      TweetTitle(t.Text),
		Body:       t.Text,
		RawText:    t.Text,
		Author:     "@" + author.Username,
		AuthorName: author.Name,
		URL:        fmt.Sprintf("%s/%s/status/%s", TwitterWebURL, author.Username, t.ID),
		CreatedAt:  t.CreatedAt,
		Likes:      t.PublicMetrics.LikeCount,
		Retweets:   t.PublicMetrics.RetweetCount,
		Replies:    t.PublicMetrics.ReplyCount,
	}
}

// Collect 는 hashtags 검색 후 accounts 타임라인을 읽는다. 개별 실패는 로그만 남긴다.
func (c *TwitterClient) Collect(ctx context.Context, hashtags, accounts []string) ([]Post, error) {
	if c.bearerToken == "" {
		return nil, ErrMissingCredentials
	}

	var posts []Post
	for _, tag := range hashtags {
		if err := ctx.Err(); err != nil {
			return posts, err
		}
		items, err := c.SearchRecent(ctx, tag)
		if err != nil {
			logger.ErrorWithFields("twitter hashtag search failed", logger.Fields{
				"hashtag": tag,
				"error":   err.Error(),
			})
			continue
		}
		posts = append(posts, items...)
	}

	for _, username := range accounts {
		if err := ctx.Err(); err != nil {
			return posts, err
		}
		user, err := c.UserByUsername(ctx, username)
		if err != nil {
			logger.ErrorWithFields("twitter user lookup failed", logger.Fields{
				"account": username,
				"error":   err.Error(),
			})
			continue
		}
		items, err := c.UserTweets(ctx, user)
		if err != nil {
			logger.ErrorWithFields("twitter timeline fetch failed", logger.Fields{
				"account": username,
				"error":   err.Error(),
			})
			continue
		}
		posts = append(posts, items...)
	}
	return posts, nil
}
