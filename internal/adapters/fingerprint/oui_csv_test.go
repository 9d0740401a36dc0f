package fingerprint

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Mac Prefix,Vendor Name,Private,Block Type,Last Update
00-1B-44,SanDisk Corporation,false,MA-L,2015/11/17
f4:f5:d8,Google Inc.,false,MA-L,2016/05/02
ABCDEF,Example Labs,false,MA-L,2020/01/01
zz:zz:zz,Broken,false,MA-L,2020/01/01
11:22:33,,false,MA-L,2020/01/01
`

func TestParseOUICSV(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	entries, skipped, err := ParseOUICSV(strings.NewReader(sampleCSV), now)
	require.NoError(t, err)

	assert.Equal(t, 2, skipped)
	require.Len(t, entries, 3)
	assert.Equal(t, OUIEntry{Prefix: "00:1B:44", Vendor: "SanDisk Corporation", LastUpdated: now}, entries[0])
	assert.Equal(t, "F4:F5:D8", entries[1].Prefix)
	assert.Equal(t, "AB:CD:EF", entries[2].Prefix)
}

func TestParseOUICSV_EmptyInput(t *testing.T) {
	_, _, err := ParseOUICSV(strings.NewReader(""), time.Now())
	assert.Error(t, err)
}

func TestParseOUICSV_ImportedPrefixesResolve(t *testing.T) {
	entries, _, err := ParseOUICSV(strings.NewReader(sampleCSV), time.Now())
	require.NoError(t, err)

	db, err := NewOUIDatabase(":memory:", 10, nil)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.BulkInsertOUIs(context.Background(), entries))

	mac, err := ParseMAC("ab:cd:ef:00:11:22")
	require.NoError(t, err)
	vendor, err := db.LookupVendor(context.Background(), mac)
	require.NoError(t, err)
	assert.Equal(t, "Example Labs", vendor)
}
