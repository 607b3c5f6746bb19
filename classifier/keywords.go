package classifier

// Rule holds when any term of Any is present, or when every term of one of
// the All groups is present.
type Rule struct {
	Any []string
	All [][]string
}

// CategoryRule assigns Category when any of its keywords is present.
type CategoryRule struct {
	Category Category
	Keywords []string
}

// TagRule adds Tag when any trigger is present.
type TagRule struct {
	Tag      string
	Triggers []string
}

// TierRule scores High when any High term is present, else Medium when any
// Medium term is present, else Low.
type TierRule struct {
	High   []string
	Medium []string
}

// Config is the keyword data a Classifier is compiled from.
// Categories and Tags are evaluated in declaration order.
type Config struct {
	Idea            Rule
	Categories      []CategoryRule
	DefaultCategory Category
	Tags            []TagRule
	MaxTags         int
	// Hashtags is the set of #hashtag names accepted as tags when the
	// hashtag variant is enabled. Compared case-insensitively.
	Hashtags        []string
	Complexity      TierRule
	MarketPotential TierRule
}

const DefaultMaxTags = 4

var redditIdeaPhrases = []string{
	"app idea", "startup idea", "build", "create", "develop", "tool for",
	"somebody make", "looking for", "need an app", "feature request",
	"would pay for", "market for", "solution for", "problem with",
	"api for", "saas for", "platform for", "service that",
	"app that", "website that", "bot that", "extension for",
	"i wish there was", "why doesn't exist", "business idea",
}

var twitterIdeaPhrases = []string{
	"app idea", "startup idea", "build", "create", "develop", "tool for",
	"looking for", "need an app", "feature request", "would pay for",
	"market for", "solution for", "problem with", "api for", "saas for",
	"platform for", "service that", "app that", "website that",
	"bot that", "extension for", "i wish there was", "why doesn't exist",
	"business idea", "mvp", "minimum viable product", "prototype",
	"side project", "weekend project", "coding challenge",
}

// DefaultConfig is the canonical rule set: the union of the reddit and
// twitter keyword lists.
func DefaultConfig() Config {
	idea := union(redditIdeaPhrases, twitterIdeaPhrases)
	// "need" alone qualifies, which subsumes the twitter need+app pair.
	idea = append(idea, "idea", "need", "make", "building", "should exist")
	return Config{
		Idea: Rule{Any: idea},
		Categories: []CategoryRule{
			{Category: CategorySaaS, Keywords: []string{"saas", "subscription", "platform", "b2b"}},
			{Category: CategoryMobile, Keywords: []string{"mobile", "ios", "android"}},
			{Category: CategoryDeveloperTools, Keywords: []string{"api", "dev", "code", "github"}},
			{Category: CategoryProductivity, Keywords: []string{"productivity", "workflow", "automation"}},
			{Category: CategoryNoCode, Keywords: []string{"no-code", "nocode", "drag and drop", "low-code"}},
			{Category: CategoryAccessibility, Keywords: []string{"accessibility", "disabled", "inclusive"}},
		},
		DefaultCategory: CategoryAppIdeas,
		Tags:            techTags(),
		MaxTags:         DefaultMaxTags,
		Hashtags:        []string{"react", "nodejs", "python", "ai", "ml", "saas", "nocode", "webdev"},
		Complexity: TierRule{
			High:   []string{"ai", "machine learning", "blockchain", "distributed", "real-time", "scalable", "enterprise", "infrastructure"},
			Medium: []string{"api", "database", "authentication", "payment", "integration", "mobile", "backend"},
		},
		MarketPotential: TierRule{
			High:   []string{"billion", "market", "enterprise", "b2b", "saas", "subscription", "platform", "scale", "unicorn"},
			Medium: []string{"startup", "business", "monetize", "revenue", "customers", "users", "growth"},
		},
	}
}

// RedditConfig is the keyword set the reddit ingestion path used before the
// lists were unified. Like every rule here, "idea", "need" and "make" are
// matched against title and body; the reddit path only checked them in the
// title, so a body-only "need" now counts as an idea.
func RedditConfig() Config {
	idea := append([]string{}, redditIdeaPhrases...)
	idea = append(idea, "idea", "need", "make")
	return Config{
		Idea: Rule{Any: idea},
		Categories: []CategoryRule{
			{Category: CategorySaaS, Keywords: []string{"saas", "subscription", "platform"}},
			{Category: CategoryMobile, Keywords: []string{"mobile", "ios", "android"}},
			{Category: CategoryDeveloperTools, Keywords: []string{"api", "dev", "code", "github"}},
			{Category: CategoryProductivity, Keywords: []string{"productivity", "workflow", "automation"}},
			{Category: CategoryNoCode, Keywords: []string{"no-code", "nocode", "drag and drop"}},
			{Category: CategoryAccessibility, Keywords: []string{"accessibility", "disabled", "inclusive"}},
		},
		DefaultCategory: CategoryAppIdeas,
		Tags:            techTags(),
		MaxTags:         DefaultMaxTags,
		Complexity: TierRule{
			High:   []string{"ai", "machine learning", "blockchain", "distributed", "real-time", "scalable", "enterprise", "infrastructure"},
			Medium: []string{"api", "database", "authentication", "payment", "integration", "mobile", "backend"},
		},
		MarketPotential: TierRule{
			High:   []string{"billion", "market", "enterprise", "b2b", "saas", "subscription", "platform", "scale", "unicorn"},
			Medium: []string{"startup", "business", "monetize", "revenue", "customers", "users", "growth"},
		},
	}
}

// TwitterConfig reproduces the rule set the twitter ingestion path used
// before the lists were unified. "need" only counts together with "app".
func TwitterConfig() Config {
	idea := append([]string{}, twitterIdeaPhrases...)
	idea = append(idea, "idea", "building", "should exist")
	return Config{
		Idea: Rule{
			Any: idea,
			All: [][]string{{"need", "app"}},
		},
		Categories: []CategoryRule{
			{Category: CategorySaaS, Keywords: []string{"saas", "subscription", "b2b"}},
			{Category: CategoryMobile, Keywords: []string{"mobile", "ios", "android"}},
			{Category: CategoryDeveloperTools, Keywords: []string{"api", "dev", "code", "github"}},
			{Category: CategoryProductivity, Keywords: []string{"productivity", "workflow", "automation"}},
			{Category: CategoryNoCode, Keywords: []string{"no-code", "nocode", "low-code"}},
			{Category: CategoryAccessibility, Keywords: []string{"accessibility", "disabled", "inclusive"}},
		},
		DefaultCategory: CategoryAppIdeas,
		Tags: []TagRule{
			{Tag: "React", Triggers: []string{"react"}},
			{Tag: "AI", Triggers: []string{"ai", "artificial intelligence"}},
			{Tag: "Mobile", Triggers: []string{"mobile"}},
			{Tag: "API", Triggers: []string{"api"}},
		},
		MaxTags:  DefaultMaxTags,
		Hashtags: []string{"react", "nodejs", "python", "ai", "ml", "saas", "nocode", "webdev"},
		Complexity: TierRule{
			High:   []string{"ai", "machine learning", "blockchain", "distributed", "real-time", "scalable", "enterprise"},
			Medium: []string{"api", "database", "authentication", "payment", "integration", "mobile"},
		},
		MarketPotential: TierRule{
			High:   []string{"billion", "market", "enterprise", "b2b", "saas", "subscription", "platform"},
			Medium: []string{"startup", "business", "monetize", "revenue", "customers"},
		},
	}
}

func techTags() []TagRule {
	return []TagRule{
		{Tag: "React", Triggers: []string{"react", "jsx", "next.js", "nextjs"}},
		{Tag: "AI", Triggers: []string{"ai", "artificial intelligence", "machine learning", "ml", "gpt", "openai", "chatgpt"}},
		{Tag: "Mobile", Triggers: []string{"mobile", "ios", "android", "react native", "flutter"}},
		{Tag: "API", Triggers: []string{"api", "rest", "graphql", "webhook"}},
		{Tag: "Blockchain", Triggers: []string{"blockchain", "crypto", "web3", "nft", "ethereum"}},
		{Tag: "SaaS", Triggers: []string{"saas", "subscription", "b2b", "enterprise"}},
		{Tag: "No-Code", Triggers: []string{"no-code", "nocode", "low-code", "zapier", "airtable"}},
		{Tag: "DevTools", Triggers: []string{"devtools", "developer", "github", "vscode", "debugging"}},
		{Tag: "E-commerce", Triggers: []string{"ecommerce", "e-commerce", "shopify", "store", "marketplace"}},
		{Tag: "Social", Triggers: []string{"social", "community", "messaging", "chat", "network"}},
	}
}

// union keeps first-seen order.
func union(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, term := range list {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			out = append(out, term)
		}
	}
	return out
}
