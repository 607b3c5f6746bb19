package services

import (
	"sort"
	"strings"

	"idea-feed/models"
	"idea-feed/repositories"
)

// FilterAll disables the platform or category filter.
const FilterAll = "all"

// FeedQuery 는 피드 화면의 필터와 정렬 조건이다. 빈 값은 필터하지 않는다.
type FeedQuery struct {
	Platform string `form:"platform" json:"platform,omitempty"`
	Category string `form:"category" json:"category,omitempty"`
	Search   string `form:"search" json:"search,omitempty"`
	Sort     string `form:"sort" json:"sort,omitempty"`
}

// FilterAndSort returns the ideas matching q in q.Sort order. Sorting is
// stable; an unknown sort key keeps the input order. ideas is not modified.
func FilterAndSort(ideas []models.Idea, q FeedQuery) []models.Idea {
	search := strings.ToLower(q.Search)
	out := make([]models.Idea, 0, len(ideas))
	for _, idea := range ideas {
		if !matchesFilter(string(idea.Platform), q.Platform) {
			continue
		}
		if !matchesFilter(string(idea.Category), q.Category) {
			continue
		}
		if search != "" && !matchesSearch(idea, search) {
			continue
		}
		out = append(out, idea)
	}

	switch q.Sort {
	case repositories.SortTrending:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Engagement > out[j].Engagement })
	case repositories.SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	case repositories.SortPopular:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Score() > out[j].Score() })
	}
	return out
}

func matchesFilter(value, filter string) bool {
	return filter == "" || filter == FilterAll || value == filter
}

// matchesSearch expects a lower-cased term.
func matchesSearch(idea models.Idea, term string) bool {
	if strings.Contains(strings.ToLower(idea.Title), term) ||
		strings.Contains(strings.ToLower(idea.Description), term) {
		return true
	}
	for _, tag := range idea.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// DedupeByTitle keeps the first idea of each exact title.
func DedupeByTitle(ideas []models.Idea) ([]models.Idea, int) {
	seen := make(map[string]struct{}, len(ideas))
	out := make([]models.Idea, 0, len(ideas))
	for _, idea := range ideas {
		if _, ok := seen[idea.Title]; ok {
			continue
		}
		seen[idea.Title] = struct{}{}
		out = append(out, idea)
	}
	return out, len(ideas) - len(out)
}
