package snapshots

import (
	"fmt"
	"strings"
	"time"
)

const (
	// Extension of all snapshot blobs: multimap wire format, gzipped.
	Extension = "mm.gz"

	timeFormat = "20060102-150405.000000000" // the '.' becomes a '-' in names
	dotIndex   = 15                          // position of the '.'
)

// Timestamp renders ts as the sortable sub-second timestamp used in
// snapshot names. The '.' of the fractional seconds is replaced by a '-'
// to keep names free of extra dots.
func Timestamp(ts time.Time) string {
	return strings.Replace(ts.UTC().Format(timeFormat), ".", "-", 1)
}

// Name returns the blob name for a snapshot taken at ts:
// "<prefix>__<timestamp>.mm.gz". Lexicographic order of names from the
// same prefix equals chronological order.
func Name(prefix string, ts time.Time) string {
	return fmt.Sprintf("%s__%s.%s", prefix, Timestamp(ts), Extension)
}

// NameInfo is a parsed snapshot blob name.
type NameInfo struct {
	FullName        string
	Prefix          string
	TimestampString string
	Timestamp       time.Time
}

// ParseName parses and validates a snapshot blob name produced by Name.
func ParseName(name string) (NameInfo, error) {
	var ni, empty NameInfo
	basename, ext, found := strings.Cut(name, ".")
	if !found {
		return empty, fmt.Errorf("invalid name: no dot: %s", name)
	}
	if ext != Extension {
		return empty, fmt.Errorf("unexpected extension: %s", name)
	}
	ni.FullName = name

	p := strings.Split(basename, "__")
	if len(p) != 2 {
		return empty, fmt.Errorf("expected 2 name parts: %s", name)
	}
	ni.Prefix = p[0]
	ni.TimestampString = p[1]

	tss := ni.TimestampString
	if len(tss) != len(timeFormat) || tss[dotIndex] != '-' {
		return empty, fmt.Errorf("invalid timestamp format: %s in %s", tss, name)
	}
	tss = tss[:dotIndex] + "." + tss[dotIndex+1:] // restore the '.' for parsing
	ts, err := time.Parse(timeFormat, tss)        // returns time in UTC
	if err != nil {
		return empty, fmt.Errorf("timestamp parse error: %s", err)
	}
	ni.Timestamp = ts
	return ni, nil
}
