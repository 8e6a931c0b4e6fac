package capture

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestFromImage_LumaExtremes(t *testing.T) {
	white, err := FromImage(uniformRGBA(4, 4, color.RGBA{255, 255, 255, 255}), ConvertOptions{})
	require.NoError(t, err)
	defer white.Release()
	for _, v := range white.Planes[0].Data {
		require.Equal(t, uint8(255), v)
	}

	black, err := FromImage(uniformRGBA(4, 4, color.RGBA{0, 0, 0, 255}), ConvertOptions{})
	require.NoError(t, err)
	defer black.Release()
	for _, v := range black.Planes[0].Data {
		require.Equal(t, uint8(0), v)
	}
	// Neutral grey has no chroma.
	for _, v := range black.Planes[1].Data {
		require.Equal(t, uint8(128), v)
	}
}

func TestFromImage_LayoutWithPadding(t *testing.T) {
	ts := time.Unix(100, 0)
	f, err := FromImage(uniformRGBA(5, 3, color.RGBA{100, 100, 100, 255}), ConvertOptions{RowPadding: 3, Timestamp: ts, Sequence: 7})
	require.NoError(t, err)
	defer f.Release()

	assert.Equal(t, FormatYUV420, f.Format)
	assert.Equal(t, 5, f.Width)
	assert.Equal(t, 3, f.Height)
	assert.Equal(t, ts, f.Timestamp)
	assert.Equal(t, uint64(7), f.Sequence)
	require.Len(t, f.Planes, 3)

	y := f.Planes[0]
	assert.Equal(t, 8, y.RowStride)
	assert.Len(t, y.Data, 24)
	for row := 0; row < 3; row++ {
		for x := 0; x < 5; x++ {
			assert.Equal(t, uint8(100), y.Data[row*8+x])
		}
		for x := 5; x < 8; x++ {
			assert.Equal(t, uint8(0), y.Data[row*8+x], "padding must be zeroed")
		}
	}
	// Chroma planes are 2x2 subsampled with rounding up.
	assert.Equal(t, 3, f.Planes[1].RowStride)
	assert.Len(t, f.Planes[1].Data, 6)
	assert.Len(t, f.Planes[2].Data, 6)
}

func TestFromImage_GrayAndGenericImages(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 2, 2))
	g.Pix = []byte{10, 20, 30, 40}
	f, err := FromImage(g, ConvertOptions{})
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 20, 30, 40}, f.Planes[0].Data)
	f.Release()

	// Paletted images take the generic At() path.
	p := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{color.White})
	f, err = FromImage(p, ConvertOptions{})
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 255}, f.Planes[0].Data)
	f.Release()
}

func TestFromImage_Empty(t *testing.T) {
	_, err := FromImage(nil, ConvertOptions{})
	assert.ErrorIs(t, err, ErrEmptyImage)
	_, err = FromImage(image.NewRGBA(image.Rect(0, 0, 0, 4)), ConvertOptions{})
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestFrameRelease_Idempotent(t *testing.T) {
	calls := 0
	f := NewGrayFrame(1, 1, 1, []byte{1}, time.Now())
	f.release = func() { calls++ }
	assert.False(t, f.Released())
	f.Release()
	f.Release()
	assert.True(t, f.Released())
	assert.Equal(t, 1, calls)

	var nilFrame *Frame
	nilFrame.Release()
	assert.True(t, nilFrame.Released())
}

func TestFrameRelease_DropsPlaneData(t *testing.T) {
	f, err := FromImage(uniformRGBA(2, 2, color.RGBA{1, 2, 3, 255}), ConvertOptions{})
	require.NoError(t, err)
	f.Release()
	for _, p := range f.Planes {
		assert.Nil(t, p.Data)
	}
}

func TestLuma(t *testing.T) {
	f := NewGrayFrame(2, 1, 2, []byte{5, 6}, time.Now())
	p, ok := f.Luma()
	require.True(t, ok)
	assert.Equal(t, []byte{5, 6}, p.Data)

	_, ok = (&Frame{}).Luma()
	assert.False(t, ok)
}
