package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	asciidome "github.com/halfabluebanana/ASCII-dome"
	"github.com/halfabluebanana/ASCII-dome/frames"
)

var convertFlags struct {
	chars       string
	font        string
	fontSize    float64
	output      string
	videoOutput string
	skipVideo   bool
	fps         int
	preview     bool
}

var convertCmd = &cobra.Command{
	Use:   "convert [input dir or image]",
	Short: "Convert a PNG/JPEG frame sequence to ASCII frames",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]

		engine, err := loadEngine(convertFlags.chars, convertFlags.font, convertFlags.fontSize)
		if err != nil {
			return err
		}

		src, err := frames.NewDirSource(input)
		if err != nil {
			return err
		}
		defer src.Close()

		total := src.Len()
		if convertFlags.preview {
			src.Limit(previewFrames)
		}
		color.Cyan("Found %d frames", total)

		sink, err := frames.NewDirSink(convertFlags.output)
		if err != nil {
			return err
		}
		defer sink.Close()

		n, err := engine.ConvertAll(src, sink)
		if err != nil {
			return err
		}
		color.Green("Done. %d frames saved to %s", n, convertFlags.output)

		if convertFlags.skipVideo {
			return nil
		}
		return encodeFrames(convertFlags.output, convertFlags.videoOutput, input, convertFlags.fps)
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertFlags.chars, "chars", "",
		"sorted alphabet asset (required)")
	convertCmd.MarkFlagRequired("chars")
	convertCmd.Flags().StringVar(&convertFlags.font, "font", "menlo",
		"font alias or path")
	convertCmd.Flags().Float64Var(&convertFlags.fontSize, "font-size",
		asciidome.DefaultFontSize, "point size for rendering")
	convertCmd.Flags().StringVar(&convertFlags.output, "output",
		"ascii_frames/png", "output directory for ASCII frames")
	convertCmd.Flags().StringVar(&convertFlags.videoOutput, "video-output", "",
		"output video path (default derived from input)")
	convertCmd.Flags().BoolVar(&convertFlags.skipVideo, "skip-video", false,
		"only write PNG frames")
	convertCmd.Flags().IntVar(&convertFlags.fps, "fps", 30,
		"frame rate for the output video")
	convertCmd.Flags().BoolVar(&convertFlags.preview, "preview", false,
		"process only the first 30 frames")
	rootCmd.AddCommand(convertCmd)
}
