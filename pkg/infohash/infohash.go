// Package infohash resolves magnet links and .torrent files into canonical
// BitTorrent info-hashes.
package infohash

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/anacrolix/torrent/bencode"
	"github.com/anacrolix/torrent/metainfo"
)

var (
	btihRegex = regexp.MustCompile(`(?i)btih:([0-9a-f]{40})`)
	hashRegex = regexp.MustCompile(`^[0-9a-f]{40}$`)
)

const bytesPerMB = 1024 * 1024

// Torrent is the hash and total payload size of a decoded .torrent file.
type Torrent struct {
	Hash  string
	Bytes int64
}

// SizeMB returns the payload size in megabytes.
func (t Torrent) SizeMB() float64 {
	return float64(t.Bytes) / bytesPerMB
}

// IsHash reports whether s is a 40 character lowercase hex info-hash.
func IsHash(s string) bool {
	return hashRegex.MatchString(s)
}

// IsMagnet reports whether s looks like a magnet URI.
func IsMagnet(s string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(s)), "magnet:")
}

// FromMagnet extracts the info-hash from a magnet URI.
// Hex btih values are used as-is; base32 values are decoded.
func FromMagnet(uri string) (string, bool) {
	if m := btihRegex.FindStringSubmatch(uri); m != nil {
		return strings.ToLower(m[1]), true
	}
	if !IsMagnet(uri) {
		return "", false
	}
	magnet, err := metainfo.ParseMagnetUri(uri)
	if err != nil || magnet.InfoHash == (metainfo.Hash{}) {
		return "", false
	}
	return magnet.InfoHash.HexString(), true
}

// FromTorrent computes the info-hash of a bencoded .torrent file: the info
// dictionary is decoded, re-encoded canonically and hashed with SHA-1.
func FromTorrent(data []byte) (Torrent, error) {
	mi, err := metainfo.Load(bytes.NewReader(data))
	if err != nil {
		return Torrent{}, fmt.Errorf("decode torrent: %w", err)
	}
	if len(mi.InfoBytes) == 0 {
		return Torrent{}, ErrNoInfo
	}

	var info any
	if err := bencode.Unmarshal(mi.InfoBytes, &info); err != nil {
		return Torrent{}, fmt.Errorf("decode info: %w", err)
	}
	if _, ok := info.(map[string]any); !ok {
		return Torrent{}, ErrNoInfo
	}
	canonical, err := bencode.Marshal(info)
	if err != nil {
		return Torrent{}, fmt.Errorf("encode info: %w", err)
	}

	parsed, err := mi.UnmarshalInfo()
	if err != nil {
		return Torrent{}, fmt.Errorf("parse info: %w", err)
	}

	return Torrent{
		Hash:  metainfo.HashBytes(canonical).HexString(),
		Bytes: parsed.TotalLength(),
	}, nil
}
