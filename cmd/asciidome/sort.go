package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/golang/freetype/truetype"
	"github.com/spf13/cobra"

	asciidome "github.com/halfabluebanana/ASCII-dome"
)

var sortFlags struct {
	font string
	size float64
}

var sortCmd = &cobra.Command{
	Use:   "sort [input chars file or dir] [output json or dir]",
	Short: "Build a brightness-sorted alphabet asset from a character set",
	Long: `Measures the rendered brightness of every candidate character and
writes an alphabet asset ordered darkest to lightest. The input may be a
JSON character set or a raw text file; duplicates are dropped. A
directory input sorts every character file in it, writing one
<name>_sorted.json per input into the output directory.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, output := args[0], args[1]

		cfg := fontConfig(sortFlags.size)
		fontPath := cfg.Resolve(sortFlags.font)
		f, err := asciidome.LoadFont(fontPath)
		if err != nil {
			return err
		}
		color.Cyan("Font: %s", fontPath)

		info, err := os.Stat(input)
		if err != nil {
			return err
		}
		if info.IsDir() {
			return sortCharDir(f, cfg.Size, input, output)
		}
		return sortCharFile(f, cfg.Size, input, output)
	},
}

func sortCharFile(f *truetype.Font, size float64, input, output string) error {
	chars, err := asciidome.LoadCharSet(input)
	if err != nil {
		return err
	}
	color.Cyan("Found %d characters in %s", len(chars), input)

	alphabet, err := asciidome.SortChars(chars, f, size)
	if err != nil {
		return err
	}
	if err := alphabet.Save(output); err != nil {
		return err
	}

	color.Green("Sorted characters (dark to light):")
	color.Green("  %s", alphabet.String())
	color.Green("Saved %d characters to %s", alphabet.Len(), output)
	return nil
}

// sortCharDir sorts every character file in a directory in one run,
// skipping assets produced by earlier runs.
func sortCharDir(f *truetype.Font, size float64, inputDir, outputDir string) error {
	inputs, err := listCharFiles(inputDir)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no character files in %s", inputDir)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	for _, input := range inputs {
		stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		output := filepath.Join(outputDir, stem+"_sorted.json")
		if err := sortCharFile(f, size, input, output); err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
	}
	color.Green("Sorted %d character sets into %s", len(inputs), outputDir)
	return nil
}

func listCharFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch strings.ToLower(filepath.Ext(name)) {
		case ".txt", ".json":
		default:
			continue
		}
		if strings.HasSuffix(name, "_sorted.json") {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}
	sort.Strings(out)
	return out, nil
}

func init() {
	sortCmd.Flags().StringVar(&sortFlags.font, "font", "menlo",
		"font alias (menlo/monaco/courier) or path")
	sortCmd.Flags().Float64Var(&sortFlags.size, "size", asciidome.DefaultMeasureSize,
		"point size for brightness measurement")
	rootCmd.AddCommand(sortCmd)
}
