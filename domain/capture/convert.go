package capture

import (
	"errors"
	"image"
	"time"
)

// ErrEmptyImage is returned when converting an image with no pixels.
var ErrEmptyImage = errors.New("capture: empty image")

// ConvertOptions tunes FromImage.
type ConvertOptions struct {
	// RowPadding appends zero bytes to every luma row, emulating camera
	// buffers whose row stride exceeds the image width.
	RowPadding int
	Timestamp  time.Time
	Sequence   uint64
}

// FromImage converts img into a pooled YUV420 frame. Luma uses full-range
// weights (77R + 150G + 29B) >> 8 so pure white maps to 255 and black to 0.
// The caller owns the returned frame and must Release it.
func FromImage(img image.Image, opts ConvertOptions) (*Frame, error) {
	if img == nil {
		return nil, ErrEmptyImage
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}
	pad := opts.RowPadding
	if pad < 0 {
		pad = 0
	}
	yStride := w + pad
	cw, ch := (w+1)/2, (h+1)/2

	f := &Frame{
		Width:     w,
		Height:    h,
		Format:    FormatYUV420,
		Timestamp: opts.Timestamp,
		Sequence:  opts.Sequence,
		Planes: []Plane{
			{Data: acquirePlane(yStride * h), RowStride: yStride, PixelStride: 1},
			{Data: acquirePlane(cw * ch), RowStride: cw, PixelStride: 1},
			{Data: acquirePlane(cw * ch), RowStride: cw, PixelStride: 1},
		},
	}
	f.release = recyclePlanes(f)
	if f.Timestamp.IsZero() {
		f.Timestamp = time.Now()
	}

	px := rgbAccessor(img)
	yPlane := f.Planes[0].Data
	for y := 0; y < h; y++ {
		row := yPlane[y*yStride : (y+1)*yStride]
		for x := 0; x < w; x++ {
			r, g, bl := px(b.Min.X+x, b.Min.Y+y)
			row[x] = luma(r, g, bl)
		}
		for x := w; x < yStride; x++ {
			row[x] = 0
		}
	}

	uPlane, vPlane := f.Planes[1].Data, f.Planes[2].Data
	for cy := 0; cy < ch; cy++ {
		for cx := 0; cx < cw; cx++ {
			var sr, sg, sb, n int32
			for dy := 0; dy < 2; dy++ {
				yy := cy*2 + dy
				if yy >= h {
					continue
				}
				for dx := 0; dx < 2; dx++ {
					xx := cx*2 + dx
					if xx >= w {
						continue
					}
					r, g, bl := px(b.Min.X+xx, b.Min.Y+yy)
					sr += int32(r)
					sg += int32(g)
					sb += int32(bl)
					n++
				}
			}
			sr, sg, sb = sr/n, sg/n, sb/n
			off := cy*cw + cx
			uPlane[off] = clamp8(128 + ((-43*sr - 85*sg + 128*sb) >> 8))
			vPlane[off] = clamp8(128 + ((128*sr - 107*sg - 21*sb) >> 8))
		}
	}
	return f, nil
}

func luma(r, g, b uint8) uint8 {
	return uint8((77*uint32(r) + 150*uint32(g) + 29*uint32(b)) >> 8)
}

func clamp8(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// rgbAccessor returns a fast 8-bit pixel reader for the common RGBA layouts
// and falls back to image.Image.At otherwise. Alpha is ignored.
func rgbAccessor(img image.Image) func(x, y int) (uint8, uint8, uint8) {
	switch src := img.(type) {
	case *image.RGBA:
		return func(x, y int) (uint8, uint8, uint8) {
			i := src.PixOffset(x, y)
			return src.Pix[i], src.Pix[i+1], src.Pix[i+2]
		}
	case *image.NRGBA:
		return func(x, y int) (uint8, uint8, uint8) {
			i := src.PixOffset(x, y)
			return src.Pix[i], src.Pix[i+1], src.Pix[i+2]
		}
	case *image.Gray:
		return func(x, y int) (uint8, uint8, uint8) {
			v := src.Pix[src.PixOffset(x, y)]
			return v, v, v
		}
	default:
		return func(x, y int) (uint8, uint8, uint8) {
			r, g, b, _ := img.At(x, y).RGBA()
			return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
		}
	}
}
