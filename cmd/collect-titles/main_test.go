package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:torznab="http://torznab.com/schemas/2015/feed">
<channel>
%s
</channel>
</rss>`

const item = `<item>
  <title>%s</title>
  <guid>%s</guid>
  <link>https://tracker.example/dl/%s.torrent</link>
  <size>1073741824</size>
</item>`

func TestRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("apikey"))
		assert.Empty(t, r.URL.Query().Get("q"))

		var items []string
		if strings.HasPrefix(r.URL.Query().Get("cat"), "2000") {
			items = append(items,
				fmt.Sprintf(item, "The.Matrix.1999.1080p.BluRay.x264-GROUP", "1", "1"),
				fmt.Sprintf(item, "The.Matrix.1999.1080p.BluRay.x264-GROUP", "2", "2"),
			)
		} else {
			items = append(items, fmt.Sprintf(item, "Breaking.Bad.S01E02.720p.HDTV.x264-CTU", "3", "3"))
		}
		_, _ = fmt.Fprintf(w, feed, strings.Join(items, "\n"))
	}))
	defer server.Close()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
[scrape]
retry_attempts = 1
requests_per_second = -1

[sources.torznab]
enabled = true
url = %q
api_key = "secret"
`, server.URL)), 0644))
	output := filepath.Join(dir, "releases.csv")

	var log bytes.Buffer
	require.NoError(t, run(cfgPath, output, 3, 100, &log))
	assert.Contains(t, log.String(), "Total unique titles: 2")

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"title", "canonical", "size_mb", "category"}, rows[0])
	assert.Equal(t, []string{"The.Matrix.1999.1080p.BluRay.x264-GROUP", "matrix", "1024.0", "movie"}, rows[1])
	assert.Equal(t, "tv", rows[2][3])
}

func TestRun_NoTorznab(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[sources.btdigg]\nenabled = true\n"), 0644))

	err := run(cfgPath, filepath.Join(dir, "out.csv"), 1, 10, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no torznab source")
}
