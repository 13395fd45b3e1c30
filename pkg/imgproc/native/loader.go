package native

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"

	// Register BMP and WebP decoders; PNG, JPEG, and GIF come with
	// the imaging package.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// MaxDetectDimension caps the raster handed to detection. Phone photos
// run to several thousand pixels per side; contour quality does not
// improve past this size, but tracing cost does.
const MaxDetectDimension = 2048

// DecodeImage decodes a photograph from r, applying any EXIF
// orientation so detected coordinates match what the user sees, and
// downscaling so neither side exceeds MaxDetectDimension.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("native: decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > MaxDetectDimension || b.Dy() > MaxDetectDimension {
		if b.Dx() >= b.Dy() {
			img = imaging.Resize(img, MaxDetectDimension, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, MaxDetectDimension, imaging.Lanczos)
		}
	}
	return img, nil
}
