package pixel

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ledfield/geom"
)

const sampleLayout = `0: 0 0 0
1: 0 10 0

2: -12.5 20 3.25
not a record
3: 1 2
`

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout(strings.NewReader(sampleLayout))
	require.NoError(t, err)

	require.Len(t, l.Entries, 3)
	assert.Equal(t, 2, l.Skipped)
	assert.Equal(t, Entry{Index: 2, Position: geom.V(-12.5, 20, 3.25)}, l.Entries[2])
}

func TestApplyLayout(t *testing.T) {
	l, err := ParseLayout(strings.NewReader(sampleLayout))
	require.NoError(t, err)

	pixels := NewBuffer(4)
	require.NoError(t, l.Apply(pixels))

	assert.Equal(t, geom.V(0, 10, 0), pixels[1].Position)
	assert.Equal(t, geom.V(-12.5, 20, 3.25), pixels[2].Position)
	assert.Equal(t, geom.Vec3{}, pixels[3].Position, "unlisted pixels stay at the origin")
}

func TestApplyLayoutIndexOutOfRange(t *testing.T) {
	l, err := ParseLayout(strings.NewReader("0: 1 1 1\n5: 0 0 0\n"))
	require.NoError(t, err)

	pixels := NewBuffer(3)
	err = l.Apply(pixels)

	var idxErr *IndexError
	require.True(t, errors.As(err, &idxErr))
	assert.Equal(t, 5, idxErr.Index)
	assert.Equal(t, 3, idxErr.Count)
	assert.Equal(t, geom.Vec3{}, pixels[0].Position, "buffer untouched on error")
}

func TestLayoutBounds(t *testing.T) {
	l, err := ParseLayout(strings.NewReader(sampleLayout))
	require.NoError(t, err)

	b := l.Bounds()
	assert.Equal(t, geom.V(-12.5, 0, 0), b.Min)
	assert.Equal(t, geom.V(0, 20, 3.25), b.Max)
	assert.True(t, Layout{}.Bounds().IsZero())
}
