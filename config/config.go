package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Server     ServerConfig     `yaml:"server"`
	Mongo      MongoConfig      `yaml:"mongo"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	HTTP       HTTPConfig       `yaml:"http"`
	Reddit     RedditConfig     `yaml:"reddit"`
	Twitter    TwitterConfig    `yaml:"twitter"`
	RSS        RSSConfig        `yaml:"rss"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Aggregate  AggregateConfig  `yaml:"aggregate"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	// AllowedOrigins 가 비어 있으면 모든 Origin 을 허용한다.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type KafkaConfig struct {
	BootstrapServers string `yaml:"bootstrap_servers"`
	GroupID          string `yaml:"group_id"`
	Partitions       int    `yaml:"partitions"`
	// EmbeddedRetry 가 true 면 processor 가 재시도 재주입기를 직접 실행한다.
	// 별도 retryworker 를 띄우는 경우 false 로 둔다.
	EmbeddedRetry    bool   `yaml:"embedded_retry"`
}

// HTTPConfig 는 외부 API 호출에 공통으로 적용되는 타임아웃/재시도 설정이다.
type HTTPConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	MaxRetries  int           `yaml:"max_retries"`
	BackoffBase time.Duration `yaml:"backoff_base"`
	BackoffMax  time.Duration `yaml:"backoff_max"`
}

type RedditConfig struct {
	Enabled      bool     `yaml:"enabled"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	UserAgent    string   `yaml:"user_agent"`
	Subreddits   []string `yaml:"subreddits"`
	Limit        int      `yaml:"limit"`
	// RequestsPerSecond 가 0 이하면 제한 없음으로 간주한다.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

type TwitterConfig struct {
	Enabled           bool     `yaml:"enabled"`
	BearerToken       string   `yaml:"bearer_token"`
	Hashtags          []string `yaml:"hashtags"`
	Accounts          []string `yaml:"accounts"`
	SearchLimit       int      `yaml:"search_limit"`
	TimelineLimit     int      `yaml:"timeline_limit"`
	RequestsPerSecond float64  `yaml:"requests_per_second"`
}

type RSSConfig struct {
	Enabled bool         `yaml:"enabled"`
	Feeds   []FeedSource `yaml:"feeds"`
}

// FeedSource is a single rss feed configuration item
type FeedSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

const (
	PresetUnion       = "union"
	PresetPerPlatform = "per_platform"
)

type ClassifierConfig struct {
	// Preset 은 union(기본) 또는 per_platform 이다.
	Preset string `yaml:"preset"`
}

const (
	SinkMongo = "mongo"
	SinkKafka = "kafka"
	SinkNone  = "none"
)

type AggregateConfig struct {
	Schedule   string `yaml:"schedule"`
	Sink       string `yaml:"sink"`
	RunOnStart bool   `yaml:"run_on_start"`
}

var (
	DefaultSubreddits = []string{
		"SomebodyMakeThis", "AppIdeas", "Entrepreneur", "startups",
		"IndieDev", "webdev", "programming", "SaaS", "nocode",
	}
	DefaultHashtags = []string{
		"buildinpublic", "indiehacker", "startup", "appidea",
		"saas", "nocode", "webdev", "devtools",
	}
	DefaultAccounts = []string{
		"IndieHackers", "ProductHunt", "StartupGrind", "ycombinator", "buildinpublic",
	}
)

const (
	DefaultPort           = "8080"
	DefaultMongoURI       = "mongodb://localhost:27017"
	DefaultMongoDatabase  = "idea_feed"
	DefaultSchedule       = "0 */6 * * *"
	DefaultRedditLimit    = 15
	DefaultSearchLimit    = 50
	DefaultTimelineLimit  = 25
	DefaultUserAgent      = "AppIdeasAggregator/1.0"
	DefaultKafkaPartition = 3
)

// Default 는 config.yaml 이 비어 있어도 동작 가능한 기본 설정을 반환한다.
func Default() AppConfig {
	return AppConfig{
		Logging: LoggingConfig{Level: "info"},
		Server:  ServerConfig{Port: DefaultPort},
		Mongo:   MongoConfig{URI: DefaultMongoURI, Database: DefaultMongoDatabase},
		Kafka:   KafkaConfig{Partitions: DefaultKafkaPartition, EmbeddedRetry: true},
		HTTP: HTTPConfig{
			Timeout:     15 * time.Second,
			MaxRetries:  3,
			BackoffBase: 500 * time.Millisecond,
			BackoffMax:  10 * time.Second,
		},
		Reddit: RedditConfig{
			Enabled:           true,
			UserAgent:         DefaultUserAgent,
			Subreddits:        DefaultSubreddits,
			Limit:             DefaultRedditLimit,
			RequestsPerSecond: 1,
		},
		Twitter: TwitterConfig{
			Enabled:           true,
			Hashtags:          DefaultHashtags,
			Accounts:          DefaultAccounts,
			SearchLimit:       DefaultSearchLimit,
			TimelineLimit:     DefaultTimelineLimit,
			RequestsPerSecond: 1,
		},
		Classifier: ClassifierConfig{Preset: PresetUnion},
		Aggregate: AggregateConfig{
			Schedule:   DefaultSchedule,
			Sink:       SinkMongo,
			RunOnStart: true,
		},
	}
}

var config *AppConfig

func InitApp() {
	basePath := GetBasePath()

	// load environment variables
	godotenv.Load(filepath.Join(basePath, ENV_FILE))

	c, err := Load(filepath.Join(basePath, CONFIG_FILE))
	if err != nil {
		panic(err)
	}
	config = &c
}

// Load 는 path 의 yaml 을 기본값 위에 덮어쓴 뒤 환경변수 오버라이드를 적용한다.
// 파일이 없으면 기본값과 환경변수만으로 구성한다.
func Load(path string) (AppConfig, error) {
	c := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return AppConfig{}, fmt.Errorf("config 파싱 실패 (%s): %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return AppConfig{}, fmt.Errorf("config 읽기 실패 (%s): %w", path, err)
	}

	applyEnv(&c)
	if err := c.Validate(); err != nil {
		return AppConfig{}, err
	}
	return c, nil
}

// Validate 는 값의 범위를 검사하고 비어 있는 필수 값을 기본값으로 보정한다.
func (c *AppConfig) Validate() error {
	switch c.Classifier.Preset {
	case "":
		c.Classifier.Preset = PresetUnion
	case PresetUnion, PresetPerPlatform:
	default:
		return fmt.Errorf("알 수 없는 classifier.preset: %q", c.Classifier.Preset)
	}

	switch c.Aggregate.Sink {
	case "":
		c.Aggregate.Sink = SinkMongo
	case SinkMongo, SinkKafka, SinkNone:
	default:
		return fmt.Errorf("알 수 없는 aggregate.sink: %q", c.Aggregate.Sink)
	}

	if c.Aggregate.Schedule == "" {
		c.Aggregate.Schedule = DefaultSchedule
	}
	if c.Reddit.Limit <= 0 {
		c.Reddit.Limit = DefaultRedditLimit
	}
	if c.Reddit.UserAgent == "" {
		c.Reddit.UserAgent = DefaultUserAgent
	}
	if c.Twitter.SearchLimit <= 0 {
		c.Twitter.SearchLimit = DefaultSearchLimit
	}
	if c.Twitter.TimelineLimit <= 0 {
		c.Twitter.TimelineLimit = DefaultTimelineLimit
	}
	if c.Kafka.Partitions <= 0 {
		c.Kafka.Partitions = DefaultKafkaPartition
	}
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	return nil
}

func applyEnv(c *AppConfig) {
	setFromEnv(&c.Logging.Level, "LOG_LEVEL")
	setFromEnv(&c.Server.Port, "PORT")
	setFromEnv(&c.Mongo.URI, "MONGO_URI")
	setFromEnv(&c.Mongo.Database, "MONGO_DB_NAME")
	setFromEnv(&c.Kafka.BootstrapServers, "KAFKA_BOOTSTRAP_SERVERS")
	setFromEnv(&c.Kafka.GroupID, "KAFKA_GROUP_ID")
	setFromEnv(&c.Reddit.ClientID, "REDDIT_CLIENT_ID")
	setFromEnv(&c.Reddit.ClientSecret, "REDDIT_CLIENT_SECRET")
	setFromEnv(&c.Twitter.BearerToken, "TWITTER_BEARER_TOKEN")
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
}

func setFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// SetConfig 는 테스트나 CLI 에서 전역 설정을 직접 주입할 때 사용한다.
func SetConfig(c AppConfig) {
	config = &c
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
