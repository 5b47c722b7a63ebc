package icon

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const square = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
<rect x="0" y="0" width="10" height="10" fill="#ff0000"/>
</svg>`

func TestRasterizeFillsTarget(t *testing.T) {
	img, err := Rasterize(square, 16, 16)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
	r, _, _, a := img.At(8, 8).RGBA()
	assert.NotZero(t, a)
	assert.NotZero(t, r)
}

func TestRasterizeRejectsBadInput(t *testing.T) {
	_, err := Rasterize("  ", 16, 16)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Rasterize(square, 0, 16)
	assert.Error(t, err)
}

func TestCacheReusesAndEvicts(t *testing.T) {
	c := NewCacheWithSize(2)

	first, err := c.Rasterize("home", square, 8)
	require.NoError(t, err)
	again, err := c.Rasterize("home", square, 8)
	require.NoError(t, err)
	assert.Same(t, first, again)

	_, _ = c.Rasterize("home", square, 16)
	_, _ = c.Rasterize("settings", square, 8)

	assert.Equal(t, 2, c.Len())
	assert.Nil(t, c.Get("home@8"))
	assert.NotNil(t, c.Get("settings@8"))

	c.Purge()
	assert.Zero(t, c.Len())
}
