package debug

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	require.NoError(t, EnableFile(path))
	defer Disable()

	Log("effect", "switched to %s", "Rainbow Plane")
	Error("transmit", errors.New("connection refused"))
	for i := 0; i < 4; i++ {
		LogEvery(2, "tick", "frame")
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "category=effect")
	assert.Contains(t, out, "switched to Rainbow Plane")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "every 2, count=4")
}

func TestLogDisabledIsSilent(t *testing.T) {
	Disable()
	assert.False(t, Enabled())
	Log("x", "nothing %d", 1) // must not panic
}
