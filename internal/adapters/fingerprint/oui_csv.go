package fingerprint

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ParseOUICSV reads a registry export with a header row followed by
// "Mac Prefix,Vendor Name,..." records. Prefixes are normalized to
// "XX:XX:XX"; malformed rows are skipped and counted.
func ParseOUICSV(r io.Reader, now time.Time) ([]OUIEntry, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}

	var entries []OUIEntry
	skipped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skipped++
				continue
			}
			return nil, skipped, err
		}
		if len(record) < 2 {
			skipped++
			continue
		}

		prefix, ok := normalizePrefix(record[0])
		vendor := strings.TrimSpace(record[1])
		if !ok || vendor == "" {
			skipped++
			continue
		}
		entries = append(entries, OUIEntry{Prefix: prefix, Vendor: vendor, LastUpdated: now})
	}
	return entries, skipped, nil
}

// normalizePrefix accepts "00-1B-44", "00:1b:44" or "001B44".
func normalizePrefix(s string) (string, bool) {
	hex := strings.ToUpper(strings.NewReplacer("-", "", ":", "", ".", "").Replace(strings.TrimSpace(s)))
	if len(hex) != 6 {
		return "", false
	}
	for _, c := range hex {
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return "", false
		}
	}
	return hex[0:2] + ":" + hex[2:4] + ":" + hex[4:6], true
}
