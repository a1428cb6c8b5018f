package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestValidateContentRejectsNonImage(t *testing.T) {
	if err := ValidateContent([]byte("not an image at all, just text")); err == nil {
		t.Fatalf("expected error for text payload")
	}
	if err := ValidateContent(nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestPreprocessShapeAndRange(t *testing.T) {
	data := encodePNG(t, solidImage(10, 6, color.NRGBA{R: 255, G: 0, B: 128, A: 255}))

	pixels, err := Preprocess(data, 4)
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if len(pixels) != 4*4*3 {
		t.Fatalf("expected %d floats, got %d", 4*4*3, len(pixels))
	}
	for i, v := range pixels {
		if v < 0 || v > 1 {
			t.Fatalf("pixel %d out of range: %f", i, v)
		}
	}
	// A solid image stays solid after resizing.
	if pixels[0] != 1 || pixels[1] != 0 {
		t.Fatalf("unexpected first pixel: %v", pixels[:3])
	}
}

func TestPreprocessRejectsGarbage(t *testing.T) {
	// PNG signature with a truncated body decodes as invalid image, not a
	// server fault.
	garbage := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0x00}, 64)...)
	if _, err := Preprocess(garbage, 4); err == nil {
		t.Fatalf("expected error for truncated png")
	}
}

func TestPreprocessAcceptsGIF(t *testing.T) {
	var buf bytes.Buffer
	if err := gif.Encode(&buf, solidImage(6, 6, color.NRGBA{R: 30, G: 160, B: 40, A: 255}), nil); err != nil {
		t.Fatalf("encode gif: %v", err)
	}

	pixels, err := Preprocess(buf.Bytes(), 4)
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if len(pixels) != 4*4*3 {
		t.Fatalf("expected %d floats, got %d", 4*4*3, len(pixels))
	}
	// Palettization may shift the exact shade but green stays dominant.
	if pixels[1] <= pixels[0] || pixels[1] <= pixels[2] {
		t.Fatalf("expected green-dominant pixel, got %v", pixels[:3])
	}
}

func TestResizeUpscaleKeepsColor(t *testing.T) {
	data := encodePNG(t, solidImage(2, 2, color.NRGBA{R: 0, G: 200, B: 0, A: 255}))

	pixels, err := Preprocess(data, 8)
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if len(pixels) != 8*8*3 {
		t.Fatalf("expected %d floats, got %d", 8*8*3, len(pixels))
	}
	last := pixels[len(pixels)-3:]
	if last[1] < 0.7 {
		t.Fatalf("expected green channel preserved, got %v", last)
	}
}
