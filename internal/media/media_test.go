package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_Validate(t *testing.T) {
	tests := []struct {
		name    string
		id      Identity
		wantErr bool
	}{
		{"movie", Identity{IMDbID: "tt0133093", Kind: KindMovie}, false},
		{"eight digit id", Identity{IMDbID: "tt10872600", Kind: KindMovie}, false},
		{"tv season", Identity{IMDbID: "tt0903747", Kind: KindTV, Season: 2}, false},
		{"tv all seasons", Identity{IMDbID: "tt0903747", Kind: KindTV}, false},
		{"bad id", Identity{IMDbID: "0133093", Kind: KindMovie}, true},
		{"short id", Identity{IMDbID: "tt12345", Kind: KindMovie}, true},
		{"movie with season", Identity{IMDbID: "tt0133093", Kind: KindMovie, Season: 1}, true},
		{"negative season", Identity{IMDbID: "tt0903747", Kind: KindTV, Season: -1}, true},
		{"unknown kind", Identity{IMDbID: "tt0133093", Kind: "anime"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.id.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidIdentity)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIdentity_Key(t *testing.T) {
	assert.Equal(t, "movie:tt0133093", Identity{IMDbID: "tt0133093", Kind: KindMovie}.Key())
	assert.Equal(t, "tv:tt0903747:3", Identity{IMDbID: "tt0903747", Kind: KindTV, Season: 3}.Key())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("movie")
	require.NoError(t, err)
	assert.Equal(t, KindMovie, k)

	k, err = ParseKind("series")
	require.NoError(t, err)
	assert.Equal(t, KindTV, k)

	_, err = ParseKind("music")
	assert.Error(t, err)
}
