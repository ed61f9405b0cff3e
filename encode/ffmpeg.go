// Package encode assembles rendered frame directories into video files
// by shelling out to ffmpeg. The encoder is an external collaborator: it
// only assumes frames are named so lexicographic order is temporal
// order, which frames.FramePattern guarantees.
package encode

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/halfabluebanana/ASCII-dome/frames"
)

// Available reports whether ffmpeg is on PATH.
func Available() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// ManualCommand returns the equivalent shell command, for diagnostics
// when ffmpeg is missing or fails.
func ManualCommand(framesDir, output string, fps int) string {
	return strings.Join(args(framesDir, output, fps), " ")
}

func args(framesDir, output string, fps int) []string {
	return []string{
		"ffmpeg",
		"-y",
		"-framerate", strconv.Itoa(fps),
		"-i", filepath.Join(framesDir, frames.FramePattern),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		output,
	}
}

// FramesToVideo encodes the frame_%06d.png sequence in framesDir into an
// H.264 MP4 at the given frame rate.
func FramesToVideo(ctx context.Context, framesDir, output string, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("encode: fps %d", fps)
	}
	if !Available() {
		return fmt.Errorf("ffmpeg not found in PATH; encode manually with: %s",
			ManualCommand(framesDir, output, fps))
	}

	argv := args(framesDir, output, fps)
	log.WithField("cmd", strings.Join(argv, " ")).Debug("encoding video")

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
