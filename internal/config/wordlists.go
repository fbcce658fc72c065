// internal/config/wordlists.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/vmunix/arrscout/pkg/release"
)

// Matcher builds the title matcher, reading any configured wordlist files
// in place of the embedded ones. Files ending in .gz are decompressed.
func (c *Config) Matcher() (*release.Matcher, error) {
	english, err := readWordlist(c.Wordlists.English, release.DefaultEnglish)
	if err != nil {
		return nil, err
	}
	banned, err := readWordlist(c.Wordlists.Banned, release.DefaultBanned)
	if err != nil {
		return nil, err
	}
	return release.NewMatcher(english, banned), nil
}

func readWordlist(path string, fallback func() *release.Wordlist) (*release.Wordlist, error) {
	if path == "" {
		return fallback(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wordlist: %w", err)
	}
	defer func() { _ = f.Close() }()
	if strings.HasSuffix(path, ".gz") {
		return release.ParseCompressedWordlist(f)
	}
	return release.ParseWordlist(f)
}
