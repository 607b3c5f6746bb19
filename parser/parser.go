package parser

import (
	"errors"
	"strings"

	"github.com/advancedlogic/GoOse/pkg/goose"
	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// ErrNoText 는 어떤 추출기도 본문을 찾지 못했을 때 반환된다.
var ErrNoText = errors.New("no text content")

// extractor 는 HTML 문자열에서 본문 텍스트를 뽑아내는 함수다.
type extractor func(htmlStr string) (string, error)

// extractors 는 시도 순서대로 나열한다. 앞의 추출기가 빈 결과를 내면 다음으로 넘어간다.
var extractors = []extractor{
	ParseHtmlWithReadability,
	ParseHtmlWithTrafilatura,
	ParseHtmlWithGoose,
	ParseHtmlText,
}

// ExtractText 는 RSS 항목 본문 같은 HTML 조각을 평문으로 바꾼다.
// '<' 가 없는 입력은 이미 평문으로 보고 그대로 돌려준다.
func ExtractText(htmlStr string) (string, error) {
	htmlStr = strings.TrimSpace(htmlStr)
	if htmlStr == "" {
		return "", nil
	}
	if !strings.Contains(htmlStr, "<") {
		return htmlStr, nil
	}

	var errs []error
	for _, extract := range extractors {
		text, err := extract(htmlStr)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text, nil
		}
	}
	errs = append(errs, ErrNoText)
	return "", errors.Join(errs...)
}

func ParseHtmlWithReadability(htmlStr string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return "", err
	}

	article, err := readability.FromDocument(doc, nil)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}

func ParseHtmlWithTrafilatura(htmlStr string) (string, error) {
	article, err := trafilatura.Extract(strings.NewReader(htmlStr), trafilatura.Options{})
	if err != nil {
		return "", err
	}
	if article == nil {
		return "", nil
	}
	return article.ContentText, nil
}

func ParseHtmlWithGoose(htmlStr string) (string, error) {
	g := goose.New()
	article, err := g.ExtractFromRawHTML(htmlStr, "")
	if err != nil {
		return "", err
	}
	if article == nil {
		return "", nil
	}
	return article.CleanedText, nil
}

// ParseHtmlText 는 모든 텍스트 노드를 줄 단위로 이어 붙인다. script/style 은 건너뛴다.
func ParseHtmlText(htmlStr string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if b.Len() > 0 {
					b.WriteString("\n")
				}
				b.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}

	f(doc)
	return b.String(), nil
}
