package domain

import "math"

// Plan is the deterministic sequence of steps satisfying a geometry
// request: a scale to ScaleWidth x ScaleHeight, optionally followed by
// a centered crop to CropWidth x CropHeight.
type Plan struct {
	ScaleWidth  int
	ScaleHeight int
	Crop        bool
	CropX       int
	CropY       int
	CropWidth   int
	CropHeight  int
}

// ResizePlan computes the plan for resizing a srcWidth x srcHeight
// image. With both dimensions and stretch off, the source is fitted on
// the axis with the smaller source/target ratio and center-cropped to
// the exact target. With stretch on, the source aspect ratio is
// ignored. With a single dimension, the other is derived preserving the
// source aspect ratio.
func ResizePlan(srcWidth, srcHeight int, width, height *int, stretch bool) (Plan, error) {
	switch {
	case width == nil && height == nil:
		return Plan{}, ErrInvalidSize
	case width != nil && height != nil && !stretch:
		w, h := *width, *height
		var scaleW, scaleH int
		if float64(srcHeight)/float64(h) < float64(srcWidth)/float64(w) {
			scaleH = h
			scaleW = derive(srcWidth, h, srcHeight)
		} else {
			scaleW = w
			scaleH = derive(srcHeight, w, srcWidth)
		}
		return Plan{
			ScaleWidth:  scaleW,
			ScaleHeight: scaleH,
			Crop:        true,
			CropX:       (scaleW - w) / 2,
			CropY:       (scaleH - h) / 2,
			CropWidth:   w,
			CropHeight:  h,
		}, nil
	case width != nil && height != nil:
		return Plan{ScaleWidth: *width, ScaleHeight: *height}, nil
	case height != nil:
		return Plan{ScaleWidth: derive(srcWidth, *height, srcHeight), ScaleHeight: *height}, nil
	default:
		return Plan{ScaleWidth: *width, ScaleHeight: derive(srcHeight, *width, srcWidth)}, nil
	}
}

// derive scales dim by target/other, rounding up so a later center-crop
// always has enough pixels on the derived axis.
func derive(dim, target, other int) int {
	d := int(math.Ceil(float64(dim) * float64(target) / float64(other)))
	if d < 1 {
		return 1
	}
	return d
}
