// Package frames supplies ordered raster frame sources and sinks for the
// conversion engine. A Source yields a lazy, finite sequence of raw
// frames in temporal order; a Sink consumes rendered frames in the same
// order. Image directories, video files, and browser captures are all
// interchangeable behind these two interfaces.
package frames

import "image"

// FramePattern names output frames with a fixed-width zero-padded index
// so lexicographic filename order equals temporal order. Downstream
// encoders depend on that ordering. The pattern doubles as an ffmpeg
// input pattern.
const FramePattern = "frame_%06d.png"

// Source yields raw frames in temporal order. Next returns io.EOF after
// the final frame.
type Source interface {
	Next() (image.Image, error)
	Close() error
}

// Sink consumes rendered frames in the order written.
type Sink interface {
	Write(img image.Image) error
	Close() error
}
