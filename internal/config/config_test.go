// internal/config/config_test.go
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_FetchConfig(t *testing.T) {
	cfg := Default()
	cfg.Scrape.RetryAttempts = 3
	cfg.Scrape.RetryDelay = time.Second
	cfg.Scrape.RequestsPerSecond = -1

	fc := cfg.FetchConfig()
	assert.Equal(t, uint(3), fc.Attempts)
	assert.Equal(t, time.Second, fc.Delay)
	assert.Equal(t, 30*time.Second, fc.Timeout)
	assert.Equal(t, -1.0, fc.RequestsPerSecond)
	assert.Equal(t, 2, fc.Burst)
	assert.NotEmpty(t, fc.UserAgent)
}

func TestConfig_LimitsAndJobs(t *testing.T) {
	cfg := Default()
	cfg.Scrape.MaxPages = 2

	limits := cfg.Limits()
	assert.Equal(t, 2, limits.MaxPages)
	assert.Equal(t, 21, limits.MissThreshold)
	assert.Equal(t, 4, limits.ResolveWorkers)

	jc := cfg.Jobs()
	assert.Equal(t, 2, jc.Workers)
	assert.Equal(t, 10*time.Minute, jc.Timeout)
}

func TestConfig_Sites(t *testing.T) {
	cfg := Default()
	cfg.Sources = map[string]SourceConfig{
		"prowlarr": {Enabled: true, URL: "http://localhost:9696/", APIKey: "k"},
		"btdigg":   {Enabled: false},
	}

	sites := cfg.Sites()
	require.Len(t, sites, 2)
	assert.Equal(t, "http://localhost:9696", sites["prowlarr"].URL)
	assert.Equal(t, "k", sites["prowlarr"].APIKey)
	assert.False(t, sites["btdigg"].Enabled)
}

func TestConfig_Matcher_Embedded(t *testing.T) {
	m, err := Default().Matcher()
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestConfig_Matcher_Files(t *testing.T) {
	tmp := t.TempDir()
	english := filepath.Join(tmp, "english.txt")
	banned := filepath.Join(tmp, "banned.txt")
	require.NoError(t, os.WriteFile(english, []byte("# common words\nthe\nmovie\n"), 0644))
	require.NoError(t, os.WriteFile(banned, []byte("parody\n"), 0644))

	cfg := Default()
	cfg.Wordlists = WordlistsConfig{English: english, Banned: banned}

	m, err := cfg.Matcher()
	require.NoError(t, err)
	assert.Equal(t, []string{"zorblax"}, m.MustHaveTerms("the zorblax movie"))
	assert.True(t, m.Banned("Zorblax", "Zorblax.Parody.2021.1080p.WEB.x264-GRP"))
}

func TestConfig_Matcher_CompressedFile(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("the\nmovie\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	english := filepath.Join(t.TempDir(), "english.txt.gz")
	require.NoError(t, os.WriteFile(english, buf.Bytes(), 0644))

	cfg := Default()
	cfg.Wordlists.English = english

	m, err := cfg.Matcher()
	require.NoError(t, err)
	assert.Equal(t, []string{"zorblax"}, m.MustHaveTerms("the zorblax movie"))
}

func TestConfig_Matcher_MissingFile(t *testing.T) {
	cfg := Default()
	cfg.Wordlists.English = filepath.Join(t.TempDir(), "nope.txt")

	_, err := cfg.Matcher()
	assert.Error(t, err)
}
