package view

import (
	"image"

	"github.com/soocke/lumacam-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Preview shows the live camera feed in a single label.
type Preview interface {
	Update(img image.Image)
	Reset()
}

type preview struct {
	label     *LabelWidget
	prevPhoto *Img // disposed before each replacement
}

const (
	maxPreviewW = 480
	maxPreviewH = 360
)

// NewPreview creates the preview label on the given grid row.
func NewPreview(row int) Preview {
	photo := placeholderPhoto()
	label := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(label, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	return &preview{label: label, prevPhoto: photo}
}

func placeholderPhoto() *Img {
	return NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 240, 180)))))
}

func (v *preview) Update(img image.Image) {
	if v.label == nil || img == nil {
		return
	}
	scaled := images.ScaleToFit(img, maxPreviewW, maxPreviewH)
	v.replace(NewPhoto(Data(images.EncodePNG(scaled))))
}

func (v *preview) Reset() {
	if v.label == nil {
		return
	}
	v.replace(placeholderPhoto())
}

func (v *preview) replace(photo *Img) {
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = photo
	v.label.Configure(Image(photo))
}
