package source_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/arrscout/internal/source"
)

const ytsBody = `{
  "status": "ok",
  "status_message": "Query was successful",
  "data": {
    "movie_count": 2,
    "limit": 50,
    "page_number": 1,
    "movies": [
      {
        "title": "The Matrix",
        "year": 1999,
        "torrents": [
          {"hash": "%[1]s", "quality": "1080p", "type": "bluray", "video_codec": "x264", "size_bytes": 2254857830},
          {"hash": "%[2]s", "quality": "2160p", "type": "web", "video_codec": "x265", "size_bytes": 5798205849}
        ]
      },
      {
        "title": "The Matrix Resurrections",
        "year": 2021,
        "torrents": [
          {"hash": "%[3]s", "quality": "1080p", "type": "web", "video_codec": "x264", "size_bytes": 2147483648}
        ]
      }
    ]
  }
}`

func TestYTS_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/list_movies.json", r.URL.Path)
		assert.Equal(t, "the matrix", r.URL.Query().Get("query_term"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, ytsBody, strings.ToUpper(hashA), hashB, hashC)
	}))
	defer server.Close()

	s := source.NewYTS(source.SiteConfig{URL: server.URL}, testDeps(source.DefaultLimits()))
	q := source.Query{Text: `"the matrix"`, Title: "the matrix", Years: []string{"1999"}}
	results := s.Search(context.Background(), q)

	require.Len(t, results, 2)
	assert.Equal(t, "The Matrix 1999 1080p BluRay x264 YTS", results[0].Title)
	assert.Equal(t, hashA, results[0].Hash)
	assert.InDelta(t, 2150.4, results[0].FileSize, 0.1)
	assert.Equal(t, "The Matrix 1999 2160p WEBRip x265 YTS", results[1].Title)
	assert.Equal(t, "yts", results[1].Source)
}

func TestYTS_SkipsQualifiedAndTVQueries(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	s := source.NewYTS(source.SiteConfig{URL: server.URL}, testDeps(source.DefaultLimits()))
	assert.Empty(t, s.Search(context.Background(), matrixQuery()))
	assert.Empty(t, s.Search(context.Background(), source.Query{Text: `"show"`, Title: "show", Season: 1}))
	assert.Equal(t, int32(0), hits.Load())
}

func TestYTS_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"status": "error", "status_message": "rate limited"}`)
	}))
	defer server.Close()

	s := source.NewYTS(source.SiteConfig{URL: server.URL}, testDeps(source.DefaultLimits()))
	q := source.Query{Text: `"the matrix"`, Title: "the matrix", Years: []string{"1999"}}
	assert.Empty(t, s.Search(context.Background(), q))
}
