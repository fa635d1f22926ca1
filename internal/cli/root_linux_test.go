//go:build linux

package cli

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestRunRecordAndShow(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "run.json")
	db := filepath.Join(dir, "runs.db")

	code, stdout, stderr := execute(t,
		"--mb", "1", "--repeats", "2", "--random", "--seed", "7", "--pool", "--no-verify",
		"--format", "json", "--output", out, "--record", db)
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	doc := string(data)
	pages := int64((1 << 20) / os.Getpagesize())
	runID := gjson.Get(doc, "result.runId").String()
	require.NotEmpty(t, runID)
	assert.Equal(t, pages, gjson.Get(doc, "result.pages").Int())
	assert.Equal(t, "random", gjson.Get(doc, "result.order").String())
	assert.Equal(t, int64(7), gjson.Get(doc, "result.seed").Int())
	assert.Equal(t, "pool", gjson.Get(doc, "result.policy").String())
	assert.Equal(t, 2*pages, gjson.Get(doc, "result.cold.summary.count").Int())
	assert.True(t, gjson.Get(doc, "host.cpus").Exists())

	code, stdout, stderr = execute(t, "history", "--db", db, "--format", "json")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, runID, gjson.Get(stdout, "0.id").String())

	code, stdout, stderr = execute(t, "history", "show", runID, "--db", db, "--path", "$.pages")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, strconv.FormatInt(pages, 10), strings.TrimSpace(stdout))

	code, stdout, stderr = execute(t, "history", "show", runID, "--db", db)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, runID, gjson.Get(stdout, "runId").String())
}

func TestRunTextOutput(t *testing.T) {
	code, stdout, stderr := execute(t, "--mb", "1", "--repeats", "1", "--no-verify", "--no-color")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "cold_first_touch")
	assert.Contains(t, stdout, "hot_resident")
	assert.Contains(t, stdout, "Summary: region=1.0 MiB, repeats=1, order=sequential")
}

func TestProbe(t *testing.T) {
	code, stdout, stderr := execute(t, "probe", "--format", "json")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, int64(os.Getpagesize()), gjson.Get(stdout, "pageSize").Int())
	assert.Equal(t, int64(4), gjson.Get(stdout, "access.#").Int())
}
