package frames

import (
	"errors"
	"fmt"
	"image"
	"io"

	log "github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// VideoSource decodes a video file frame by frame through OpenCV.
type VideoSource struct {
	cap   *gocv.VideoCapture
	mat   gocv.Mat
	fps   float64
	total int
	limit int
	pos   int
}

// NewVideoSource opens a video file for sequential decoding.
func NewVideoSource(path string) (*VideoSource, error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", path, err)
	}

	s := &VideoSource{
		cap:   cap,
		mat:   gocv.NewMat(),
		fps:   cap.Get(gocv.VideoCaptureFPS),
		total: int(cap.Get(gocv.VideoCaptureFrameCount)),
	}
	log.WithFields(log.Fields{
		"path":   path,
		"fps":    s.fps,
		"frames": s.total,
	}).Debug("opened video source")

	return s, nil
}

// FPS returns the source frame rate as reported by the container.
func (s *VideoSource) FPS() float64 { return s.fps }

// Len returns the container's frame count, which may be approximate for
// some codecs.
func (s *VideoSource) Len() int { return s.total }

// Limit caps the number of frames the source yields. Zero means all.
func (s *VideoSource) Limit(n int) { s.limit = n }

// Next decodes the next frame.
func (s *VideoSource) Next() (image.Image, error) {
	if s.limit > 0 && s.pos >= s.limit {
		return nil, io.EOF
	}

	if ok := s.cap.Read(&s.mat); !ok || s.mat.Empty() {
		return nil, io.EOF
	}

	img, err := s.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("decode frame %d: %w", s.pos, err)
	}
	s.pos++
	return img, nil
}

// Close releases the decoder. Both the frame buffer and the capture
// handle are closed even if one of them fails.
func (s *VideoSource) Close() error {
	return errors.Join(s.mat.Close(), s.cap.Close())
}
