// Package classifier implements the keyword heuristics that decide whether a
// post is an "idea" post and annotate it with a category, technology tags,
// a complexity level and a market-potential level.
//
// All keywords of a Config are compiled into a single Aho-Corasick automaton,
// so classifying a post is one pass over its text. A Classifier is immutable
// after New and safe for concurrent use.
package classifier

import (
	"regexp"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Category is the single-label domain of an idea.
type Category string

const (
	CategoryAppIdeas       Category = "app-ideas"
	CategorySaaS           Category = "saas-ideas"
	CategoryMobile         Category = "mobile-apps"
	CategoryDeveloperTools Category = "developer-tools"
	CategoryProductivity   Category = "productivity"
	CategoryNoCode         Category = "no-code"
	CategoryAccessibility  Category = "accessibility"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryAppIdeas,
	CategorySaaS,
	CategoryDeveloperTools,
	CategoryProductivity,
	CategoryNoCode,
	CategoryMobile,
	CategoryAccessibility,
}

// Level is a three-step heuristic score.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// RawPost is the text-bearing part of a post.
type RawPost struct {
	Title string
	Body  string
}

// Classification is the annotation derived from a RawPost.
type Classification struct {
	IsIdea          bool     `json:"isIdea"`
	Category        Category `json:"category"`
	Tags            []string `json:"tags"`
	Complexity      Level    `json:"complexity"`
	MarketPotential Level    `json:"marketPotential"`
}

type Option func(*options)

type options struct {
	hashtags bool
}

// WithHashtags additionally accepts allowed #hashtag tokens of the raw text
// as tags. Used for twitter-origin posts.
func WithHashtags() Option {
	return func(o *options) { o.hashtags = true }
}

var hashtagPattern = regexp.MustCompile(`#\w+`)

type Classifier struct {
	vocab   []string
	matcher *ahocorasick.Matcher

	idea            compiledRule
	categories      []compiledCategory
	defaultCategory Category
	tags            []compiledTag
	maxTags         int
	hashtags        map[string]struct{}
	complexity      compiledTier
	market          compiledTier
}

type compiledRule struct {
	any []int
	all [][]int
}

type compiledCategory struct {
	category Category
	terms    []int
}

type compiledTag struct {
	tag   string
	terms []int
}

type compiledTier struct {
	high   []int
	medium []int
}

// New compiles cfg. Zero MaxTags falls back to DefaultMaxTags and an empty
// DefaultCategory to CategoryAppIdeas.
func New(cfg Config) *Classifier {
	v := newVocabulary()
	c := &Classifier{
		defaultCategory: cfg.DefaultCategory,
		maxTags:         cfg.MaxTags,
		hashtags:        make(map[string]struct{}, len(cfg.Hashtags)),
	}
	if c.defaultCategory == "" {
		c.defaultCategory = CategoryAppIdeas
	}
	if c.maxTags <= 0 {
		c.maxTags = DefaultMaxTags
	}

	c.idea.any = v.addAll(cfg.Idea.Any)
	for _, group := range cfg.Idea.All {
		if terms := v.addAll(group); len(terms) > 0 {
			c.idea.all = append(c.idea.all, terms)
		}
	}
	for _, rule := range cfg.Categories {
		c.categories = append(c.categories, compiledCategory{category: rule.Category, terms: v.addAll(rule.Keywords)})
	}
	for _, rule := range cfg.Tags {
		c.tags = append(c.tags, compiledTag{tag: rule.Tag, terms: v.addAll(rule.Triggers)})
	}
	for _, h := range cfg.Hashtags {
		c.hashtags[strings.ToLower(strings.TrimPrefix(h, "#"))] = struct{}{}
	}
	c.complexity = compiledTier{high: v.addAll(cfg.Complexity.High), medium: v.addAll(cfg.Complexity.Medium)}
	c.market = compiledTier{high: v.addAll(cfg.MarketPotential.High), medium: v.addAll(cfg.MarketPotential.Medium)}

	c.vocab = v.terms
	if len(c.vocab) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(c.vocab)
	}
	return c
}

var defaultClassifier = New(DefaultConfig())

// Default returns the classifier compiled from DefaultConfig.
func Default() *Classifier { return defaultClassifier }

// Classify runs the default classifier.
func Classify(title, body string) Classification {
	return defaultClassifier.Classify(title, body)
}

// Normalize returns the text every keyword rule is matched against.
func Normalize(title, body string) string {
	return strings.ToLower(title + " " + body)
}

func (c *Classifier) Classify(title, body string) Classification {
	return c.ClassifyPost(RawPost{Title: title, Body: body})
}

func (c *Classifier) ClassifyPost(post RawPost, opts ...Option) Classification {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	hits := c.scan(Normalize(post.Title, post.Body))

	var hashtagTags []string
	if o.hashtags {
		hashtagTags = c.matchHashtags(post.Title + " " + post.Body)
	}

	return Classification{
		IsIdea:          c.idea.holds(hits),
		Category:        c.categorize(hits),
		Tags:            c.extractTags(hits, hashtagTags),
		Complexity:      c.complexity.assess(hits),
		MarketPotential: c.market.assess(hits),
	}
}

// scan reports, per vocabulary term, whether the term occurs in text.
func (c *Classifier) scan(text string) []bool {
	hits := make([]bool, len(c.vocab))
	if c.matcher == nil || text == "" {
		return hits
	}
	for _, idx := range c.matcher.MatchThreadSafe([]byte(text)) {
		if idx >= 0 && idx < len(hits) {
			hits[idx] = true
		}
	}
	return hits
}

func (c *Classifier) categorize(hits []bool) Category {
	for _, rule := range c.categories {
		if anyHit(hits, rule.terms) {
			return rule.category
		}
	}
	return c.defaultCategory
}

// extractTags puts hashtag tags first, then vocabulary tags in declaration
// order. Duplicates are dropped case-insensitively, first spelling wins.
func (c *Classifier) extractTags(hits []bool, hashtagTags []string) []string {
	tags := make([]string, 0, c.maxTags)
	seen := make(map[string]struct{}, c.maxTags)
	push := func(tag string) bool {
		key := strings.ToLower(tag)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			tags = append(tags, tag)
		}
		return len(tags) < c.maxTags
	}

	for _, tag := range hashtagTags {
		if !push(tag) {
			return tags
		}
	}
	for _, rule := range c.tags {
		if anyHit(hits, rule.terms) && !push(rule.tag) {
			return tags
		}
	}
	return tags
}

func (c *Classifier) matchHashtags(raw string) []string {
	if len(c.hashtags) == 0 {
		return nil
	}
	var out []string
	for _, token := range hashtagPattern.FindAllString(raw, -1) {
		name := strings.TrimPrefix(token, "#")
		if _, ok := c.hashtags[strings.ToLower(name)]; ok {
			out = append(out, name)
		}
	}
	return out
}

func (r compiledRule) holds(hits []bool) bool {
	if anyHit(hits, r.any) {
		return true
	}
	for _, group := range r.all {
		if allHit(hits, group) {
			return true
		}
	}
	return false
}

func (t compiledTier) assess(hits []bool) Level {
	if anyHit(hits, t.high) {
		return LevelHigh
	}
	if anyHit(hits, t.medium) {
		return LevelMedium
	}
	return LevelLow
}

func anyHit(hits []bool, terms []int) bool {
	for _, idx := range terms {
		if hits[idx] {
			return true
		}
	}
	return false
}

func allHit(hits []bool, terms []int) bool {
	for _, idx := range terms {
		if !hits[idx] {
			return false
		}
	}
	return len(terms) > 0
}

// vocabulary assigns one automaton index per distinct lower-cased term.
type vocabulary struct {
	terms []string
	index map[string]int
}

func newVocabulary() *vocabulary {
	return &vocabulary{index: make(map[string]int)}
}

func (v *vocabulary) addAll(terms []string) []int {
	out := make([]int, 0, len(terms))
	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" {
			continue
		}
		idx, ok := v.index[t]
		if !ok {
			idx = len(v.terms)
			v.terms = append(v.terms, t)
			v.index[t] = idx
		}
		out = append(out, idx)
	}
	return out
}
