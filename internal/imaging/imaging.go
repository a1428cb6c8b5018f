// Package imaging turns an uploaded leaf photo into the float tensor the
// disease model expects. JPEG, PNG and GIF uploads are accepted.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"agroadvisor-backend/internal/apperr"
)

// ValidateContent sniffs the payload and rejects anything that is not an
// image. The declared Content-Type of the upload is not trusted.
func ValidateContent(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty upload: %w", apperr.ErrInvalidImage)
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("unsupported content type %s: %w", contentType, apperr.ErrInvalidImage)
	}
	return nil
}

// Decode parses the payload into an image, mapping decode failures to
// ErrInvalidImage so they surface as a 400 rather than a server fault.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %v: %w", err, apperr.ErrInvalidImage)
	}
	return img, nil
}

// Preprocess decodes, resizes to size x size and normalizes RGB channels to
// [0,1], returning row-major pixels ready for the model.
func Preprocess(data []byte, size int) ([]float32, error) {
	if err := ValidateContent(data); err != nil {
		return nil, err
	}
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("invalid target size %d", size)
	}
	return normalize(resizeBilinear(img, size, size)), nil
}

// resizeBilinear scales the image with bilinear interpolation. The corners of
// the source and destination grids are aligned.
func resizeBilinear(src image.Image, width, height int) *image.NRGBA {
	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))

	xRatio := float64(srcW-1) / float64(max(width-1, 1))
	yRatio := float64(srcH-1) / float64(max(height-1, 1))

	for y := 0; y < height; y++ {
		sy := float64(y) * yRatio
		y0 := int(sy)
		y1 := min(y0+1, srcH-1)
		fy := sy - float64(y0)

		for x := 0; x < width; x++ {
			sx := float64(x) * xRatio
			x0 := int(sx)
			x1 := min(x0+1, srcW-1)
			fx := sx - float64(x0)

			c00 := colorAt(src, bounds.Min.X+x0, bounds.Min.Y+y0)
			c10 := colorAt(src, bounds.Min.X+x1, bounds.Min.Y+y0)
			c01 := colorAt(src, bounds.Min.X+x0, bounds.Min.Y+y1)
			c11 := colorAt(src, bounds.Min.X+x1, bounds.Min.Y+y1)

			idx := dst.PixOffset(x, y)
			for ch := 0; ch < 3; ch++ {
				top := c00[ch] + (c10[ch]-c00[ch])*fx
				bottom := c01[ch] + (c11[ch]-c01[ch])*fx
				dst.Pix[idx+ch] = uint8(top + (bottom-top)*fy + 0.5)
			}
			dst.Pix[idx+3] = 0xff
		}
	}
	return dst
}

func colorAt(img image.Image, x, y int) [3]float64 {
	r, g, b, _ := img.At(x, y).RGBA()
	return [3]float64{float64(r >> 8), float64(g >> 8), float64(b >> 8)}
}

// normalize flattens RGB bytes to row-major floats in [0,1].
func normalize(img *image.NRGBA) []float32 {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	out := make([]float32, 0, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := img.PixOffset(x, y)
			out = append(out,
				float32(img.Pix[idx])/255,
				float32(img.Pix[idx+1])/255,
				float32(img.Pix[idx+2])/255,
			)
		}
	}
	return out
}
