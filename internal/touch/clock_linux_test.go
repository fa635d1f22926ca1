//go:build linux

package touch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolution(t *testing.T) {
	res, err := Resolution()
	require.NoError(t, err)
	assert.Greater(t, res, time.Duration(0))
	assert.LessOrEqual(t, res, time.Millisecond)
}
