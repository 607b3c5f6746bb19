package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"idea-feed/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.CONFIG_FILE)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultSubreddits, c.Reddit.Subreddits)
	assert.Equal(t, config.DefaultRedditLimit, c.Reddit.Limit)
	assert.Equal(t, config.DefaultSchedule, c.Aggregate.Schedule)
	assert.Equal(t, config.PresetUnion, c.Classifier.Preset)
	assert.Equal(t, config.SinkMongo, c.Aggregate.Sink)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
http:
  timeout: 3s
reddit:
  subreddits: [AppIdeas]
  limit: 5
rss:
  enabled: true
  feeds:
    - name: Hacker News
      url: https://news.ycombinator.com/rss
classifier:
  preset: per_platform
aggregate:
  sink: kafka
`)

	c, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, 3*time.Second, c.HTTP.Timeout)
	assert.Equal(t, []string{"AppIdeas"}, c.Reddit.Subreddits)
	assert.Equal(t, 5, c.Reddit.Limit)
	require.Len(t, c.RSS.Feeds, 1)
	assert.Equal(t, "Hacker News", c.RSS.Feeds[0].Name)
	assert.Equal(t, config.PresetPerPlatform, c.Classifier.Preset)
	assert.Equal(t, config.SinkKafka, c.Aggregate.Sink)
	// untouched sections keep defaults
	assert.Equal(t, config.DefaultHashtags, c.Twitter.Hashtags)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("REDDIT_CLIENT_ID", "id-from-env")
	t.Setenv("TWITTER_BEARER_TOKEN", "token-from-env")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	path := writeConfig(t, "reddit:\n  client_id: id-from-file\n")
	c, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "id-from-env", c.Reddit.ClientID)
	assert.Equal(t, "token-from-env", c.Twitter.BearerToken)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.Server.AllowedOrigins)
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	_, err := config.Load(writeConfig(t, "classifier:\n  preset: fuzzy\n"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, "aggregate:\n  sink: s3\n"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, "reddit: [not, a, map]\n"))
	assert.Error(t, err)
}

func TestGetBasePathWalksUp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.CONFIG_FILE), []byte("{}"), 0o644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	t.Chdir(nested)

	got, err := filepath.EvalSymlinks(config.GetBasePath())
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
