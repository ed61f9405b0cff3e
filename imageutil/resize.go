package imageutil

import (
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Interpolation specifies the filter used when downsampling a frame to
// the character grid. All offered filters are area-correct; nearest
// neighbor is deliberately absent because it aliases fine detail into
// noisy character choices.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom, the closest x/image
	// equivalent to OpenCV's INTER_AREA.
	InterpolationArea Interpolation = iota

	// InterpolationLanczos uses Lanczos3 resampling, matching PIL's
	// Resampling.LANCZOS.
	InterpolationLanczos

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear
)

// ResizeGray resizes a grayscale image to exactly the specified
// dimensions using the given filter.
func ResizeGray(img *GrayImage, width, height int, interp Interpolation) *GrayImage {
	if interp == InterpolationLanczos {
		out := resize.Resize(uint(width), uint(height), img.Gray, resize.Lanczos3)
		if gray, ok := out.(*image.Gray); ok {
			return &GrayImage{Gray: gray}
		}
		return GrayFromImage(out)
	}

	dst := NewGrayImage(width, height)
	dstRect := image.Rect(0, 0, width, height)

	var scaler draw.Scaler
	switch interp {
	case InterpolationLinear:
		scaler = draw.BiLinear
	default:
		scaler = draw.CatmullRom
	}

	scaler.Scale(dst.Gray, dstRect, img.Gray, img.Bounds(), draw.Src, nil)
	return dst
}
