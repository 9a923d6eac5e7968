package ai

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 200, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(w, h)))
	return buf.Bytes()
}

func TestNormalizeImage_Decoded(t *testing.T) {
	src := testImage(3, 2)
	img, err := NormalizeImage(DecodedImage{Image: src})
	require.NoError(t, err)
	assert.Same(t, src, img)

	img, err = NormalizeImage(&DecodedImage{Image: src})
	require.NoError(t, err)
	assert.Same(t, src, img)
}

func TestNormalizeImage_EncodedPNG(t *testing.T) {
	img, err := NormalizeImage(EncodedBytes{Data: pngBytes(t, 4, 5), MIMEType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 5), img.Bounds())
}

func TestNormalizeImage_EncodedJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(8, 8), nil))

	img, err := NormalizeImage(&EncodedBytes{Data: buf.Bytes()})
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
}

func TestNormalizeImage_Invalid(t *testing.T) {
	_, err := NormalizeImage(EncodedBytes{Data: []byte("not an image"), MIMEType: "image/png"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image/png")

	_, err = NormalizeImage(EncodedBytes{})
	assert.ErrorIs(t, err, ErrNoImage)

	_, err = NormalizeImage(DecodedImage{})
	assert.ErrorIs(t, err, ErrNoImage)

	_, err = NormalizeImage(nil)
	assert.ErrorIs(t, err, ErrNoImage)
}
