// Package imaging re-encodes uploaded photos as size-bounded JPEGs.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	_ "image/png"
)

const (
	startQuality = 85
	minQuality   = 40
	qualityStep  = 5
)

// Compressor lowers JPEG quality until the encoded image fits MaxKB or the
// quality floor is reached.
type Compressor struct {
	MaxKB int
}

func NewCompressor(maxKB int) *Compressor {
	return &Compressor{MaxKB: maxKB}
}

func (c *Compressor) Compress(data []byte) ([]byte, error) {
	return Compress(data, c.MaxKB)
}

// Compress decodes a JPEG or PNG and re-encodes it as JPEG.
func Compress(data []byte, maxKB int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	img := toRGBA(src)

	quality := startQuality
	out, err := encode(img, quality)
	if err != nil {
		return nil, err
	}
	for len(out) > maxKB*1024 && quality > minQuality {
		quality -= qualityStep
		if out, err = encode(img, quality); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// toRGBA flattens alpha and palette images.
func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.White, image.Point{}, draw.Src)
	draw.Draw(dst, b, src, b.Min, draw.Over)
	return dst
}

func encode(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
