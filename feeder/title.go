package feeder

import (
	"regexp"
	"strings"
)

const maxTitleRunes = 80

var (
	urlPattern      = regexp.MustCompile(`https?://\S+`)
	sentencePattern = regexp.MustCompile(`[.!?]`)
)

// TweetTitle derives a display title from tweet text: URLs are removed, the
// first sentence is kept and anything past 80 runes is cut with "...".
func TweetTitle(text string) string {
	clean := strings.TrimSpace(urlPattern.ReplaceAllString(text, ""))
	first := strings.TrimSpace(sentencePattern.Split(clean, 2)[0])

	if first == "" {
		return truncateRunes(clean, maxTitleRunes) + "..."
	}
	if len([]rune(first)) > maxTitleRunes {
		return truncateRunes(first, maxTitleRunes) + "..."
	}
	return first
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
