package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	require.NoError(t, err)

	_, ok := s.Value(General, KeyBrightness)
	assert.False(t, ok)
}

func TestSaveMergesIntoExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("[General]\nbrightness = 0.4\n\n[Other]\nkeep = yes\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	// another writer adds a section after we loaded
	require.NoError(t, os.WriteFile(path, []byte("[General]\nbrightness = 0.4\n\n[Other]\nkeep = yes\n\n[Late]\nx = 1\n"), 0644))

	SetInt(s, General, KeyCurrentEffect, 3)
	require.NoError(t, s.Save())

	reloaded, err := Load(path)
	require.NoError(t, err)

	v, ok := reloaded.Value(General, KeyCurrentEffect)
	require.True(t, ok)
	assert.Equal(t, "3", v)

	v, _ = reloaded.Value(General, KeyBrightness)
	assert.Equal(t, "0.4", v)
	v, _ = reloaded.Value("Other", "keep")
	assert.Equal(t, "yes", v)
	v, _ = reloaded.Value("Late", "x")
	assert.Equal(t, "1", v)
}

func TestFloat(t *testing.T) {
	s := NewMemory()
	s.SetValue("E", "good", "12.5")
	s.SetValue("E", "bad", "twelve")
	s.SetValue("E", "high", "5000")

	v := 1.0
	require.NoError(t, Float(s, "E", "missing", &v, 0, 100))
	assert.Equal(t, 1.0, v)

	require.NoError(t, Float(s, "E", "good", &v, 0, 100))
	assert.Equal(t, 12.5, v)

	err := Float(s, "E", "bad", &v, 0, 100)
	var invalid *InvalidError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "bad", invalid.Key)
	assert.Equal(t, 12.5, v, "malformed value keeps the previous one")

	err = Float(s, "E", "high", &v, 0, 100)
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 12.5, v)
}

func TestInt(t *testing.T) {
	s := NewMemory()
	SetInt(s, General, KeyCurrentEffect, 4)
	s.SetValue(General, "junk", "4.5")

	n := 0
	require.NoError(t, Int(s, General, KeyCurrentEffect, &n, 0, 6))
	assert.Equal(t, 4, n)
	assert.Error(t, Int(s, General, "junk", &n, 0, 6))
	assert.Equal(t, 4, n)
}
