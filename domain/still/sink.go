package still

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
)

// ErrNoImage is returned when there is nothing to save yet.
var ErrNoImage = errors.New("still: no image to save")

// OnImageSaved receives the outcome of an asynchronous capture.
type OnImageSaved interface {
	Saved(path string)
	Error(err error)
}

// Sink writes still photos as JPEG files named after the capture time in
// milliseconds.
type Sink struct {
	dir     string
	quality int
	logger  *slog.Logger
	now     func() time.Time
}

// NewSink returns a sink writing into dir with the given JPEG quality.
func NewSink(dir string, quality int, logger *slog.Logger) *Sink {
	if quality <= 0 || quality > 100 {
		quality = 75
	}
	return &Sink{dir: dir, quality: quality, logger: logger, now: time.Now}
}

// Dir returns the output directory.
func (s *Sink) Dir() string { return s.dir }

// TakePicture encodes img and returns the written path.
func (s *Sink) TakePicture(img image.Image) (string, error) {
	if img == nil || img.Bounds().Empty() {
		return "", ErrNoImage
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("still: create output dir: %w", err)
	}
	name := strconv.FormatInt(s.now().UnixMilli(), 10) + ".jpg"
	path := filepath.Join(s.dir, name)
	if err := imaging.Save(img, path, imaging.JPEGQuality(s.quality)); err != nil {
		return "", fmt.Errorf("still: save %s: %w", name, err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if s.logger != nil {
		s.logger.Debug("photo saved", "path", path)
	}
	return path, nil
}

// TakePictureAsync runs TakePicture on its own goroutine and reports the
// outcome to cb. Returns immediately.
func (s *Sink) TakePictureAsync(img image.Image, cb OnImageSaved) {
	go func() {
		path, err := s.TakePicture(img)
		if cb == nil {
			return
		}
		if err != nil {
			if s.logger != nil {
				s.logger.Error("photo capture failed", "error", err)
			}
			cb.Error(err)
			return
		}
		cb.Saved(path)
	}()
}
