package release

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
)

// englishWords is the words_alpha list from github.com/dwyl/english-words.
//
//go:embed wordlists/english.txt.gz
var englishWords []byte

//go:embed wordlists/banned.txt
var bannedWords string

// Wordlist is an immutable set of lowercase words.
type Wordlist struct {
	words map[string]struct{}
}

// NewWordlist builds a wordlist from the given words.
func NewWordlist(words ...string) *Wordlist {
	w := &Wordlist{words: make(map[string]struct{}, len(words))}
	for _, word := range words {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" {
			w.words[word] = struct{}{}
		}
	}
	return w
}

// ParseWordlist reads one word per line. Blank lines and lines starting
// with '#' are skipped.
func ParseWordlist(r io.Reader) (*Wordlist, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read wordlist: %w", err)
	}
	return NewWordlist(words...), nil
}

// ParseCompressedWordlist reads a gzip-compressed wordlist.
func ParseCompressedWordlist(r io.Reader) (*Wordlist, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open compressed wordlist: %w", err)
	}
	defer func() { _ = zr.Close() }()
	return ParseWordlist(zr)
}

// Contains reports whether word is in the list. Nil lists contain nothing.
func (w *Wordlist) Contains(word string) bool {
	if w == nil {
		return false
	}
	_, ok := w.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of words.
func (w *Wordlist) Len() int {
	if w == nil {
		return 0
	}
	return len(w.words)
}

func must(w *Wordlist, err error) *Wordlist {
	if err != nil {
		panic(err)
	}
	return w
}

// DefaultEnglish returns the embedded English dictionary.
var DefaultEnglish = sync.OnceValue(func() *Wordlist {
	return must(ParseCompressedWordlist(bytes.NewReader(englishWords)))
})

// DefaultBanned returns the embedded banned-word list.
var DefaultBanned = sync.OnceValue(func() *Wordlist {
	return must(ParseWordlist(strings.NewReader(bannedWords)))
})
