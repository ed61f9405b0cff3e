package main

import (
	"math"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	asciidome "github.com/halfabluebanana/ASCII-dome"
	"github.com/halfabluebanana/ASCII-dome/frames"
)

var videoFlags struct {
	chars       string
	font        string
	fontSize    float64
	output      string
	videoOutput string
	skipVideo   bool
	fps         int
	preview     bool
}

var videoCmd = &cobra.Command{
	Use:   "video [input video]",
	Short: "Convert a video file to ASCII frames",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]

		engine, err := loadEngine(videoFlags.chars, videoFlags.font, videoFlags.fontSize)
		if err != nil {
			return err
		}

		src, err := frames.NewVideoSource(input)
		if err != nil {
			return err
		}
		defer src.Close()

		if videoFlags.preview {
			src.Limit(previewFrames)
		}
		color.Cyan("Video: %d frames @ %.2f fps", src.Len(), src.FPS())

		sink, err := frames.NewDirSink(videoFlags.output)
		if err != nil {
			return err
		}
		defer sink.Close()

		n, err := engine.ConvertAll(src, sink)
		if err != nil {
			return err
		}
		color.Green("Done. %d frames saved to %s", n, videoFlags.output)

		if videoFlags.skipVideo {
			return nil
		}

		fps := videoFlags.fps
		if fps <= 0 {
			// Carry the source frame rate through to the output.
			fps = int(math.Round(src.FPS()))
			if fps <= 0 {
				fps = 30
			}
		}
		return encodeFrames(videoFlags.output, videoFlags.videoOutput, input, fps)
	},
}

func init() {
	videoCmd.Flags().StringVar(&videoFlags.chars, "chars", "",
		"sorted alphabet asset (required)")
	videoCmd.MarkFlagRequired("chars")
	videoCmd.Flags().StringVar(&videoFlags.font, "font", "menlo",
		"font alias or path")
	videoCmd.Flags().Float64Var(&videoFlags.fontSize, "font-size",
		asciidome.DefaultFontSize, "point size for rendering")
	videoCmd.Flags().StringVar(&videoFlags.output, "output",
		"ascii_frames/video", "output directory for ASCII frames")
	videoCmd.Flags().StringVar(&videoFlags.videoOutput, "video-output", "",
		"output video path (default derived from input)")
	videoCmd.Flags().BoolVar(&videoFlags.skipVideo, "skip-video", false,
		"only write PNG frames")
	videoCmd.Flags().IntVar(&videoFlags.fps, "fps", 0,
		"frame rate for the output video (default: source rate)")
	videoCmd.Flags().BoolVar(&videoFlags.preview, "preview", false,
		"process only the first 30 frames")
	rootCmd.AddCommand(videoCmd)
}
