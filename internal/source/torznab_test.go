package source_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/arrscout/internal/source"
)

const torznabFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:torznab="http://torznab.com/schemas/2015/feed">
  <channel>
    <item>
      <title>The.Matrix.1999.1080p.BluRay.x264-GROUP</title>
      <guid>1</guid>
      <enclosure url="%[1]s/dl/1.torrent" length="1610612736" type="application/x-bittorrent" />
      <torznab:attr name="infohash" value="%[2]s" />
    </item>
    <item>
      <title>The.Matrix.1999.720p.WEB-DL</title>
      <guid>2</guid>
      <torznab:attr name="size" value="943718400" />
      <torznab:attr name="magneturl" value="magnet:?xt=urn:btih:%[3]s" />
    </item>
    <item>
      <title>The.Matrix.1999.2160p.REMUX</title>
      <guid>3</guid>
      <link>%[1]s/dl/3.torrent</link>
    </item>
    <item>
      <title>Inception.2010.1080p</title>
      <guid>4</guid>
      <torznab:attr name="infohash" value="%[4]s" />
    </item>
  </channel>
</rss>`

func TestTorznab_Search(t *testing.T) {
	fixture := torrentFixture(t)
	var serverURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/api", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "search", q.Get("t"))
		assert.Equal(t, "secret", q.Get("apikey"))
		assert.Equal(t, `"the matrix" 1999`, q.Get("q"))
		assert.Equal(t, "2000", q.Get("cat"))
		assert.False(t, q.Has("offset"))
		_, _ = fmt.Fprintf(w, torznabFeed, serverURL, hashA, hashB, hashC)
	})
	mux.HandleFunc("/dl/3.torrent", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(fixture)
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	serverURL = server.URL

	s := source.NewTorznab(source.SiteConfig{URL: server.URL, APIKey: "secret"}, testDeps(source.DefaultLimits()))
	results := s.Search(context.Background(), matrixQuery())

	require.Len(t, results, 3)
	assert.Equal(t, []string{hashA, hashB, fixtureHash}, hashes(results))
	assert.InDelta(t, 1536.0, results[0].FileSize, 0.001)
	assert.InDelta(t, 900.0, results[1].FileSize, 0.001)
	assert.InDelta(t, 3.0, results[2].FileSize, 0.001)
}

func TestTorznab_TVSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "tvsearch", q.Get("t"))
		assert.Equal(t, "2", q.Get("season"))
		assert.Equal(t, "5000", q.Get("cat"))
		_, _ = fmt.Fprint(w, `<rss><channel></channel></rss>`)
	}))
	defer server.Close()

	s := source.NewTorznab(source.SiteConfig{URL: server.URL}, testDeps(source.DefaultLimits()))
	q := source.Query{Text: `"show" s02`, Title: "show", Qualifier: "s02", Season: 2, Years: []string{"2020"}}
	assert.Empty(t, s.Search(context.Background(), q))
}

func TestTorznab_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `<?xml version="1.0"?><error code="100" description="Invalid API Key"/>`)
	}))
	defer server.Close()

	s := source.NewTorznab(source.SiteConfig{URL: server.URL, APIKey: "bad"}, testDeps(source.DefaultLimits()))
	assert.Empty(t, s.Search(context.Background(), matrixQuery()))
}

func TestTorznab_NormalizesQuery(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("q")
		_, _ = fmt.Fprint(w, `<rss><channel></channel></rss>`)
	}))
	defer server.Close()

	s := source.NewTorznab(source.SiteConfig{URL: server.URL}, testDeps(source.DefaultLimits()))
	q := source.Query{Text: `"fast &  furious"  2001`, Title: "fast & furious", Qualifier: "2001", Years: []string{"2001"}}
	assert.Empty(t, s.Search(context.Background(), q))
	assert.Equal(t, `"fast and furious" 2001`, got)
}
