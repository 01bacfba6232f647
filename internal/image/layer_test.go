package image

import (
	goimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"plot-digitizer/pkg/colorutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPNG(t *testing.T) {
	img := goimage.NewNRGBA(goimage.Rect(0, 0, 4, 3))
	img.Set(1, 2, color.NRGBA{R: 255, A: 255})

	path := filepath.Join(t.TempDir(), "graph.png")
	out, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(out, img))
	require.NoError(t, out.Close())

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, l.Path)
	assert.Equal(t, 4, l.Width())
	assert.Equal(t, 3, l.Height())

	c, ok := l.RGBAt(1, 2)
	require.True(t, ok)
	assert.InDelta(t, 1.0, c.R, 1e-3)
	assert.InDelta(t, 0.0, c.G, 1e-3)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	// Present but not an image.
	path := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestRGBAtBounds(t *testing.T) {
	l := FromImage(goimage.NewRGBA(goimage.Rect(0, 0, 2, 2)))

	_, ok := l.RGBAt(-1, 0)
	assert.False(t, ok)
	_, ok = l.RGBAt(2, 0)
	assert.False(t, ok)
	_, ok = l.RGBAt(0, 2)
	assert.False(t, ok)

	c, ok := l.RGBAt(1, 1)
	assert.True(t, ok)
	assert.Equal(t, colorutil.RGB{}, c) // zero-value RGBA is black

	var nilLayer *Layer
	_, ok = nilLayer.RGBAt(0, 0)
	assert.False(t, ok)
}

func TestIsSupportedFormat(t *testing.T) {
	assert.True(t, IsSupportedFormat("scan.PNG"))
	assert.True(t, IsSupportedFormat("/tmp/a/b/plot.jpeg"))
	assert.True(t, IsSupportedFormat("old.tif"))
	assert.False(t, IsSupportedFormat("plot.gif"))
	assert.False(t, IsSupportedFormat("plot"))
}
