package feeder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"idea-feed/internal/logger"
	"idea-feed/models"
	"idea-feed/parser"
)

// rssUserAgent 는 RSS 피드를 요청할 때 사용할 브라우저 유사 User-Agent 이다.
// 일부 사이트(특히 CDN/보안 프록시 뒤에 있는 경우)는 기본 Go HTTP 클라이언트 UA를 차단한다.
const rssUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

type RssFeedItem struct {
	Title       string
	Link        string
	Author      string
	Content     string
	PublishedAt time.Time
}

// RSSFeed 는 수집 대상 피드 하나다.
type RSSFeed struct {
	Name string
	URL  string
}

type RSSClient struct {
	http *httpDoer
}

func NewRSSClient(opts HTTPOptions) *RSSClient {
	if opts.Client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = FEEDER_TIMEOUT
		}
		opts.Client = &http.Client{
			Timeout: timeout,
			// 리다이렉트 시 이전 요청의 User-Agent를 유지
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				req.Header.Set("User-Agent", rssUserAgent)
				return nil
			},
		}
	}
	return &RSSClient{http: newHTTPDoer(opts)}
}

// FetchRssFeeds 는 rssUrl 의 항목을 읽는다. limit 가 0 보다 크면 앞의 limit 개만 반환한다.
func (c *RSSClient) FetchRssFeeds(ctx context.Context, rssUrl string, limit int) ([]RssFeedItem, error) {
	resp, err := c.http.do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rssUrl, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create RSS request: %w", err)
		}
		req.Header.Set("User-Agent", rssUserAgent)
		req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/html;q=0.8,*/*;q=0.7")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Cache-Control", "max-age=0")
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, drainStatusError(resp.Request, resp)
	}

	cleanedReader, err := cleanControlCharacters(resp.Body)
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().Parse(cleanedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	var items []RssFeedItem
	for _, item := range feed.Items {
		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		content := item.Content
		if content == "" {
			content = item.Description
		}

		var author string
		if item.Author != nil {
			author = item.Author.Name
		}

		items = append(items, RssFeedItem{
			Title:       strings.TrimSpace(item.Title),
			Link:        item.Link,
			Author:      author,
			Content:     content,
			PublishedAt: published,
		})
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	return items, nil
}

// Collect 는 feeds 를 순서대로 읽어 Post 로 바꾼다. 피드 하나의 실패는 로그만 남긴다.
func (c *RSSClient) Collect(ctx context.Context, feeds []RSSFeed, limit int) ([]Post, error) {
	var posts []Post
	for _, feed := range feeds {
		if err := ctx.Err(); err != nil {
			return posts, err
		}

		items, err := c.FetchRssFeeds(ctx, feed.URL, limit)
		if err != nil {
			logger.ErrorWithFields("rss feed fetch failed", logger.Fields{
				"feed":  feed.Name,
				"url":   feed.URL,
				"error": err.Error(),
			})
			continue
		}

		for _, item := range items {
			posts = append(posts, item.toPost(feed.Name))
		}
	}
	return posts, nil
}

func (item RssFeedItem) toPost(feedName string) Post {
	body, err := parser.ExtractText(item.Content)
	if err != nil {
		logger.DebugWithFields("rss item text extraction failed", logger.Fields{
			"link":  item.Link,
			"error": err.Error(),
		})
	}

	author := item.Author
	if author == "" {
		author = feedName
	}

	return Post{
		ID:        RSSPostID(item.Link, item.Title),
		Platform:  models.PlatformRSS,
		Source:    feedName,
		Title:     item.Title,
		Body:      body,
		Author:    author,
		URL:       item.Link,
		CreatedAt: item.PublishedAt,
	}
}

// RSSPostID 는 링크(없으면 제목)에서 결정적인 ID 를 만든다.
func RSSPostID(link, title string) string {
	key := link
	if key == "" {
		key = title
	}
	return "rss_" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

// XML에서 허용되지 않는 모든 제어 문자 범위입니다 (0x00부터 0x1F까지 중 탭, LF, CR 제외).
var invalidControlCharRegex = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)

func cleanControlCharacters(r io.Reader) (io.Reader, error) {
	bodyBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read body for cleaning: %w", err)
	}

	cleanedBytes := invalidControlCharRegex.ReplaceAll(bodyBytes, []byte(""))

	return bytes.NewReader(cleanedBytes), nil
}
