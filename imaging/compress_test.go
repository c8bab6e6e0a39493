package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noisyImage(w, h int) *image.RGBA {
	r := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(r.Intn(256)), uint8(r.Intn(256)), uint8(r.Intn(256)), 255})
		}
	}
	return img
}

func TestCompress_PNGBecomesJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, noisyImage(64, 64)))

	out, err := Compress(buf.Bytes(), 300)
	require.NoError(t, err)

	_, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestCompress_ShrinksTowardsBudget(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, noisyImage(400, 400), &jpeg.Options{Quality: 100}))

	atStart, err := encode(noisyImage(400, 400), startQuality)
	require.NoError(t, err)

	out, err := Compress(buf.Bytes(), 1)
	require.NoError(t, err)
	assert.Less(t, len(out), len(atStart))
}

func TestCompress_RejectsNonImage(t *testing.T) {
	_, err := Compress([]byte("not an image"), 300)
	assert.Error(t, err)
}
