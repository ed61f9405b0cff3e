package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	asciidome "github.com/halfabluebanana/ASCII-dome"
	"github.com/halfabluebanana/ASCII-dome/encode"
)

// previewFrames caps a --preview run, enough to judge the look of a
// sequence without converting all of it.
const previewFrames = 30

// fontConfig is the deployment's font registry, passed into the engine
// explicitly. Aliases resolve into the repo's fonts directory; anything
// unrecognized is treated as a font file path.
func fontConfig(size float64) asciidome.FontConfig {
	return asciidome.FontConfig{
		Size: size,
		Aliases: map[string]string{
			"menlo":   "fonts/Menlo-Regular.ttf",
			"monaco":  "fonts/Monaco.ttf",
			"courier": "fonts/Courier-Regular.ttf",
		},
	}
}

// loadEngine builds a conversion engine from a persisted alphabet asset
// and a font name or path.
func loadEngine(charsPath, fontName string, fontSize float64) (*asciidome.Engine, error) {
	alphabet, err := asciidome.LoadAlphabet(charsPath)
	if err != nil {
		return nil, err
	}
	color.Cyan("Loaded %d characters: %s", alphabet.Len(), truncate(alphabet.String(), 20))

	cfg := fontConfig(fontSize)
	fontPath := cfg.Resolve(fontName)
	f, err := asciidome.LoadFont(fontPath)
	if err != nil {
		return nil, err
	}
	color.Cyan("Font: %s", fontPath)

	engine, err := asciidome.NewEngine(alphabet, f, asciidome.WithFontSize(cfg.Size))
	if err != nil {
		return nil, err
	}

	cols, rows := engine.GridDims()
	color.Cyan("Grid: %dx%d characters", cols, rows)
	return engine, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// encodeFrames assembles the rendered frames into an MP4. An empty
// videoOutput derives the name from the input, next to the frames.
func encodeFrames(framesDir, videoOutput, input string, fps int) error {
	if videoOutput == "" {
		base := filepath.Base(filepath.Clean(input))
		base = strings.TrimSuffix(base, filepath.Ext(base))
		videoOutput = filepath.Join(framesDir, base+"_ascii.mp4")
	}

	color.Cyan("Creating video: %s", videoOutput)
	if err := encode.FramesToVideo(context.Background(), framesDir, videoOutput, fps); err != nil {
		return fmt.Errorf("create video: %w", err)
	}
	color.Green("Video created: %s", videoOutput)
	return nil
}
