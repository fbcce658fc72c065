package source

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var sizeRegex = regexp.MustCompile(`(?i)([\d.,]+)\s*([KMGT]i?B|bytes?|B)\b`)

// ParseSize converts a value and unit such as ("1.4", "GB") to megabytes.
// Units are binary; the IEC spellings are accepted as synonyms.
func ParseSize(value, unit string) (float64, error) {
	n, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(value), ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: size %q", ErrParse, value)
	}

	switch strings.ToUpper(strings.TrimSpace(unit)) {
	case "B", "BYTE", "BYTES":
		return n / 1024 / 1024, nil
	case "KB", "KIB":
		return n / 1024, nil
	case "MB", "MIB":
		return n, nil
	case "GB", "GIB":
		return n * 1024, nil
	case "TB", "TIB":
		return n * 1024 * 1024, nil
	}
	return 0, fmt.Errorf("%w: size unit %q", ErrParse, unit)
}

// ParseSizeString converts text such as "1.4 GiB" to megabytes.
func ParseSizeString(s string) (float64, error) {
	m := sizeRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: size %q", ErrParse, s)
	}
	return ParseSize(m[1], m[2])
}

// bytesToMB converts a byte count to megabytes.
func bytesToMB(n int64) float64 {
	return float64(n) / 1024 / 1024
}
