package image

import (
	"bytes"
	"fmt"
	stdimage "image"
	"image/jpeg"
	"math"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"

	"openshelf/core/apperr"
)

// Normalizer decodes, bounds-resizes, and re-encodes image bytes. The work
// is CPU-bound and single-pass (decode, resize, encode); the input size
// ceiling keeps any single call from consuming unbounded memory or time.
type Normalizer struct {
	maxBytes int64
}

// NewNormalizer creates a normalizer with the given input ceiling in bytes.
func NewNormalizer(maxBytes int64) *Normalizer {
	if maxBytes <= 0 {
		maxBytes = 5 * 1024 * 1024
	}
	return &Normalizer{maxBytes: maxBytes}
}

// Normalize scales data down to fit within maxWidth x maxHeight, preserving
// aspect ratio and never upscaling, then re-encodes as JPEG at the given
// quality. The same routine serves both the content bounds (storage) and
// the transfer bounds (client upload compression); the two call sites
// differ only by configuration.
func (n *Normalizer) Normalize(data []byte, maxWidth, maxHeight, quality int) ([]byte, error) {
	if len(data) == 0 {
		return nil, apperr.Validation("empty image input")
	}
	if int64(len(data)) > n.maxBytes {
		return nil, apperr.Validation(fmt.Sprintf("image exceeds %d byte ceiling", n.maxBytes))
	}

	src, _, err := stdimage.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Decode("unparseable image input", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	targetW, targetH := width, height

	// Landscape (and square) keys on the width bound, portrait on the
	// height bound. Scale down only; the other side follows the ratio.
	if width >= height {
		if width > maxWidth {
			targetW = maxWidth
			targetH = int(math.Round(float64(height) * float64(maxWidth) / float64(width)))
		}
	} else {
		if height > maxHeight {
			targetH = maxHeight
			targetW = int(math.Round(float64(width) * float64(maxHeight) / float64(height)))
		}
	}
	if targetW < 1 {
		targetW = 1
	}
	if targetH < 1 {
		targetH = 1
	}

	out := src
	if targetW != width || targetH != height {
		dst := stdimage.NewRGBA(stdimage.Rect(0, 0, targetW, targetH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: quality}); err != nil {
		return nil, apperr.Internal("jpeg encode failed", err)
	}
	return buf.Bytes(), nil
}
