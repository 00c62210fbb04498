// Package imaging prepares uploaded photos for the vision model: decode,
// bound the pixel dimensions, and re-encode as JPEG at a requested quality.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxDimension is the longest side allowed after compression, in pixels.
const MaxDimension = 800

// DefaultQuality is the JPEG quality factor for the first compression pass.
const DefaultQuality = 0.5

// RetryQuality is the lower quality factor used when the first pass still
// exceeds the caller's transport budget.
const RetryQuality = 0.3

// ErrDecode means the input bytes are not a decodable raster image.
var ErrDecode = errors.New("image not decodable")

// Compress decodes data, scales it down so the longer side is at most
// MaxDimension (preserving aspect ratio), and re-encodes it as JPEG at the
// given quality factor in [0,1]. Images already within bounds keep their
// dimensions. Decoding is attempted exactly once; undecodable input fails
// with ErrDecode.
func Compress(data []byte, quality float64) ([]byte, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	newWidth, newHeight := fitWithin(width, height, MaxDimension)

	out := src
	if newWidth != width || newHeight != height {
		dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
		draw.BiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: int(quality * 100)}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	slog.Debug("image compressed",
		"format", format,
		"from", fmt.Sprintf("%dx%d", width, height),
		"to", fmt.Sprintf("%dx%d", newWidth, newHeight),
		"bytes_in", len(data),
		"bytes_out", buf.Len(),
		"quality", quality,
	)
	return buf.Bytes(), nil
}

// fitWithin returns dimensions scaled uniformly so the longer side equals
// limit, or the original dimensions when both already fit.
func fitWithin(width, height, limit int) (int, int) {
	if width <= limit && height <= limit {
		return width, height
	}
	scale := min(float64(limit)/float64(width), float64(limit)/float64(height))
	return int(float64(width) * scale), int(float64(height) * scale)
}
