package frames

import (
	"image"
	"io"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"
)

// writeTestVideo encodes a short MJPG clip and returns its path, or
// skips when the codec is unavailable in this OpenCV build.
func writeTestVideo(t *testing.T, frames int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.avi")

	w, err := gocv.VideoWriterFile(path, "MJPG", 10, 32, 24, true)
	if err != nil || !w.IsOpened() {
		t.Skipf("MJPG writer unavailable: %v", err)
	}
	defer w.Close()

	mat := gocv.NewMatWithSize(24, 32, gocv.MatTypeCV8UC3)
	defer mat.Close()
	for i := 0; i < frames; i++ {
		if err := w.Write(mat); err != nil {
			t.Fatalf("write frame %d: %v", i, err)
		}
	}
	return path
}

func TestVideoSourceReadsFrames(t *testing.T) {
	path := writeTestVideo(t, 3)

	src, err := NewVideoSource(path)
	if err != nil {
		t.Fatal(err)
	}

	n := 0
	for {
		img, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
			t.Errorf("frame %d: expected 32x24, got %v", n, b)
		}
		n++
	}
	if n != 3 {
		t.Errorf("Expected 3 frames, got %d", n)
	}

	if err := src.Close(); err != nil {
		t.Errorf("Close after EOF should succeed, got %v", err)
	}
}

func TestVideoSourceLimit(t *testing.T) {
	path := writeTestVideo(t, 5)

	src, err := NewVideoSource(path)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	src.Limit(2)

	var imgs []image.Image
	for {
		img, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		imgs = append(imgs, img)
	}
	if len(imgs) != 2 {
		t.Errorf("Expected limit of 2 frames, got %d", len(imgs))
	}
}

func TestVideoSourceMissingFile(t *testing.T) {
	if _, err := NewVideoSource(filepath.Join(t.TempDir(), "nope.mp4")); err == nil {
		t.Error("Expected error for missing video file")
	}
}
