package port

import "image"

type Transformer interface {
	// Decode turns encoded image bytes into a pixel buffer.
	Decode(data []byte) (image.Image, error)
	// Scale resamples img to exactly width x height.
	Scale(img image.Image, width, height int) image.Image
	// Crop extracts the width x height region of img at (x, y) without
	// resampling.
	Crop(img image.Image, x, y, width, height int) image.Image
}

type Encoder interface {
	// Encode serialises img using the codec matching filename's
	// extension at the given quality in (0, 1]. Codecs without explicit
	// compression control ignore quality.
	Encode(img image.Image, filename string, quality float64) ([]byte, error)
}
