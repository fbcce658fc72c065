package source

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLinearDelay(t *testing.T) {
	delay := linearDelay(10 * time.Second)

	assert.Equal(t, 10*time.Second, delay(1, nil, nil))
	assert.Equal(t, 20*time.Second, delay(2, nil, nil))
	assert.Equal(t, 40*time.Second, delay(4, nil, nil))
}

func TestPagerIndex(t *testing.T) {
	tests := []struct {
		href string
		want int
	}{
		{"/torrents.php?search=matrix&page=1", 1},
		{"/torrents.php?search=matrix&page=10", 10},
		{"/torrents.php?search=matrix&per_page=1", -1},
		{"/torrents.php?search=page=1", -1},
		{"%zz", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pagerIndex(tt.href), tt.href)
	}
}
