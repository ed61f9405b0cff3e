package main

import (
	"context"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	asciidome "github.com/halfabluebanana/ASCII-dome"
	"github.com/halfabluebanana/ASCII-dome/capture"
	"github.com/halfabluebanana/ASCII-dome/frames"
)

var captureFlags struct {
	chars       string
	font        string
	fontSize    float64
	output      string
	rawOutput   string
	videoOutput string
	skipVideo   bool
	skipASCII   bool
	numFrames   int
	fps         int
	wait        time.Duration
}

var captureCmd = &cobra.Command{
	Use:   "capture [sketch dir or html]",
	Short: "Record a p5.js sketch in a headless browser and convert it to ASCII frames",
	Long: `Serves the sketch locally, drives a headless browser through the
sketch's own recorder (r to start, s to stop), extracts the recorded
frame archive, then converts the frames like any image sequence.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		// Validate the conversion inputs before spending a capture
		// session on them.
		var engine *asciidome.Engine
		if !captureFlags.skipASCII {
			var err error
			engine, err = loadEngine(captureFlags.chars, captureFlags.font, captureFlags.fontSize)
			if err != nil {
				return err
			}
		}

		rawDir, err := capture.Run(ctx, capture.Options{
			SketchDir:  input,
			OutputDir:  captureFlags.rawOutput,
			Frames:     captureFlags.numFrames,
			FPS:        float64(captureFlags.fps),
			StartDelay: captureFlags.wait,
		})
		if err != nil {
			return err
		}
		color.Green("Captured frames in %s", rawDir)

		if captureFlags.skipASCII {
			return nil
		}

		src, err := frames.NewDirSource(rawDir)
		if err != nil {
			return err
		}
		defer src.Close()

		sink, err := frames.NewDirSink(captureFlags.output)
		if err != nil {
			return err
		}
		defer sink.Close()

		n, err := engine.ConvertAll(src, sink)
		if err != nil {
			return err
		}
		color.Green("Done. %d frames saved to %s", n, captureFlags.output)

		if captureFlags.skipVideo {
			return nil
		}
		return encodeFrames(captureFlags.output, captureFlags.videoOutput, input, captureFlags.fps)
	},
}

func init() {
	captureCmd.Flags().StringVar(&captureFlags.chars, "chars", "",
		"sorted alphabet asset (required unless --skip-ascii)")
	captureCmd.Flags().StringVar(&captureFlags.font, "font", "menlo",
		"font alias or path")
	captureCmd.Flags().Float64Var(&captureFlags.fontSize, "font-size",
		asciidome.DefaultFontSize, "point size for rendering")
	captureCmd.Flags().StringVar(&captureFlags.output, "output",
		"ascii_frames/p5", "output directory for ASCII frames")
	captureCmd.Flags().StringVar(&captureFlags.rawOutput, "raw-output",
		"captured_frames", "directory for raw captured frames")
	captureCmd.Flags().StringVar(&captureFlags.videoOutput, "video-output", "",
		"output video path (default derived from input)")
	captureCmd.Flags().BoolVar(&captureFlags.skipVideo, "skip-video", false,
		"only write PNG frames")
	captureCmd.Flags().BoolVar(&captureFlags.skipASCII, "skip-ascii", false,
		"only capture raw frames, skip conversion")
	captureCmd.Flags().IntVar(&captureFlags.numFrames, "frames", 300,
		"number of frames to record")
	captureCmd.Flags().IntVar(&captureFlags.fps, "fps", 30,
		"sketch frame rate")
	captureCmd.Flags().DurationVar(&captureFlags.wait, "wait", 3*time.Second,
		"settle time after the sketch canvas appears")
	rootCmd.AddCommand(captureCmd)
}
