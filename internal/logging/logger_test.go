package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, FormatJSON, slog.LevelInfo).WithRun("abc")

	l.LogResidencyHint("cold", errors.New("EAGAIN"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "abc", rec["run"])
	assert.Equal(t, "cold", rec["phase"])
	assert.Equal(t, "EAGAIN", rec["error"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, FormatText, slog.LevelInfo)

	l.LogPhase("hot", 3, time.Millisecond, 0)
	assert.Empty(t, buf.String(), "debug records are dropped at info level")

	l = New(&buf, FormatText, slog.LevelDebug)
	l.LogPhase("hot", 3, time.Millisecond, 0)
	assert.Contains(t, buf.String(), "phase=hot")
	assert.Contains(t, buf.String(), "repeats=3")
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Warn("nothing")
	l.LogResidencyHint("cold", errors.New("x"))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
