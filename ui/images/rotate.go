package images

import (
	"image"

	"github.com/disintegration/imaging"
)

// RotateForDisplay counter-rotates img by the display rotation in degrees so
// the preview stays upright on a rotated display. Only multiples of 90 are
// supported; anything else returns img unchanged.
func RotateForDisplay(img image.Image, degrees int) image.Image {
	if img == nil {
		return nil
	}
	switch ((degrees % 360) + 360) % 360 {
	case 90:
		return imaging.Rotate90(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate270(img)
	default:
		return img
	}
}
