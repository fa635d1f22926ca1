package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/wesleyorama2/pagelat/internal/history"
)

func sampleEntries() []history.Entry {
	return []history.Entry{
		{
			ID:        "cs0vq3ttsk8gf2nsv7ag",
			StartTime: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
			SizeBytes: 1 << 30,
			Repeats:   3,
			Order:     "random",
			Seed:      42,
			Policy:    "overwrite",
			ColdMean:  2345.5,
			HotMean:   45.25,
		},
		{
			ID:             "cs0vq3ttsk8gf2nsv7b0",
			StartTime:      time.Date(2026, 3, 3, 5, 6, 7, 0, time.UTC),
			SizeBytes:      64 << 20,
			Repeats:        1,
			Order:          "sequential",
			Policy:         "pool",
			ColdMean:       900,
			ResidencyHints: 2,
		},
	}
}

func TestWriteHistory_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, FormatText, sampleEntries(), Options{NoColor: true}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "run "))
	assert.Contains(t, lines[1], "cs0vq3ttsk8gf2nsv7ag")
	assert.Contains(t, lines[1], "1.0 GiB")
	assert.Contains(t, lines[1], "2345.50")
	assert.Contains(t, lines[1], "51.8x")
	assert.Contains(t, lines[2], "64 MiB")
	assert.True(t, strings.HasSuffix(lines[2], "-"), "no slowdown without hot samples")
}

func TestWriteHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, FormatText, nil, Options{NoColor: true}))
	assert.Equal(t, "No runs recorded.\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteHistory(&buf, FormatJSON, nil, Options{}))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteHistory_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, FormatJSON, sampleEntries(), Options{}))

	doc := buf.String()
	assert.Equal(t, int64(2), gjson.Get(doc, "#").Int())
	assert.Equal(t, "cs0vq3ttsk8gf2nsv7ag", gjson.Get(doc, "0.id").String())
	assert.Equal(t, int64(2), gjson.Get(doc, "1.residencyHints").Int())
	assert.False(t, gjson.Get(doc, "0.result").Exists())

	assert.Error(t, WriteHistory(&buf, FormatHTML, sampleEntries(), Options{}))
}
