package capture

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/soocke/lumacam-go/config"
)

// FitTarget crops and scales img to the configured use case geometry. A
// non-zero resolution wins and is filled from the centre; otherwise the image
// is centre-cropped to the aspect ratio at its native scale. The source image
// is returned untouched when it already matches.
func FitTarget(img image.Image, aspect config.Ratio, res config.Size) image.Image {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return img
	}
	if res.Width > 0 && res.Height > 0 {
		if w == res.Width && h == res.Height {
			return img
		}
		return imaging.Fill(img, res.Width, res.Height, imaging.Center, imaging.Linear)
	}
	ratio := aspect.Float()
	if ratio <= 0 {
		return img
	}
	cw, ch := w, int(float64(w)/ratio+0.5)
	if ch > h {
		cw, ch = int(float64(h)*ratio+0.5), h
	}
	if cw < 1 {
		cw = 1
	}
	if ch < 1 {
		ch = 1
	}
	if cw == w && ch == h {
		return img
	}
	return imaging.CropCenter(img, cw, ch)
}
