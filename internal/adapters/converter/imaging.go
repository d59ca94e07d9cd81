// Package converter adapts the imaging library to the Transformer and
// Encoder ports.
package converter

import (
	"bytes"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Imaging performs all pixel work in-process. Resampling always uses
// Lanczos, trading speed for output quality.
type Imaging struct{}

func NewImaging() *Imaging {
	return &Imaging{}
}

func (i *Imaging) Decode(data []byte) (image.Image, error) {
	return imaging.Decode(bytes.NewReader(data))
}

func (i *Imaging) Scale(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

func (i *Imaging) Crop(img image.Image, x, y, width, height int) image.Image {
	return imaging.Crop(img, image.Rect(x, y, x+width, y+height))
}

// Encode serialises img in the format matching filename's extension,
// falling back to JPEG for unknown extensions. Quality in (0, 1] maps
// onto the JPEG quality scale; formats without compression control
// ignore it.
func (i *Imaging) Encode(img image.Image, filename string, quality float64) ([]byte, error) {
	format, err := imaging.FormatFromFilename(filename)
	if err != nil {
		format = imaging.JPEG
	}

	var opts []imaging.EncodeOption
	if format == imaging.JPEG {
		opts = append(opts, imaging.JPEGQuality(jpegQuality(quality)))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, opts...); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func jpegQuality(quality float64) int {
	q := int(math.Round(quality * 100))
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}
