package asciidome

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
)

// SpaceChar is the sentinel always pinned to index 0 of an alphabet. A
// rendered space is indistinguishable from no ink, so it takes brightness
// 0 by convention instead of being measured.
const SpaceChar = ' '

var (
	// ErrEmptyAlphabet reports an alphabet with no characters; no
	// brightness can be quantized against it.
	ErrEmptyAlphabet = errors.New("alphabet is empty")

	// ErrMalformedAsset reports a persisted alphabet file whose JSON
	// shape is not one of the accepted forms.
	ErrMalformedAsset = errors.New("malformed alphabet asset")
)

// Alphabet is an ordered character set, darkest at index 0 to lightest at
// the last index, with a precomputed 256-entry pixel-to-character table.
// Alphabets are built once by SortChars or loaded from a persisted asset
// and are read-only afterwards; brightness values are font-dependent, so
// an alphabet is only meaningful with the font and size it was built for.
type Alphabet struct {
	chars  []rune
	lookup [256]rune
}

// NewAlphabet wraps an already-ordered character sequence.
func NewAlphabet(chars []rune) (*Alphabet, error) {
	if len(chars) == 0 {
		return nil, ErrEmptyAlphabet
	}

	a := &Alphabet{chars: append([]rune(nil), chars...)}
	n := len(a.chars)
	for p := 0; p < 256; p++ {
		idx := p * n / 256
		// Clamping to n-1 is an invariant of the quantization, not a
		// rounding guard: index n is reachable in the p/256*n formula.
		if idx > n-1 {
			idx = n - 1
		}
		a.lookup[p] = a.chars[idx]
	}
	return a, nil
}

// Len returns the number of characters.
func (a *Alphabet) Len() int { return len(a.chars) }

// Chars returns a copy of the ordered characters.
func (a *Alphabet) Chars() []rune { return append([]rune(nil), a.chars...) }

// String returns the ordered characters as a string, darkest first.
func (a *Alphabet) String() string { return string(a.chars) }

// CharFor quantizes a pixel value into the alphabet. O(1) per pixel; this
// is the hot path of frame conversion.
func (a *Alphabet) CharFor(p uint8) rune { return a.lookup[p] }

// charWeight pairs a character with its measured brightness.
type charWeight struct {
	r      rune
	weight float64
}

// orderByWeight stable-sorts weights ascending and pins the space
// sentinel to index 0. Characters with equal brightness keep their
// relative input order so candidate sets with ties sort predictably.
func orderByWeight(weights []charWeight) []rune {
	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].weight < weights[j].weight
	})

	out := make([]rune, 0, len(weights)+1)
	out = append(out, SpaceChar)
	for _, w := range weights {
		if w.r == SpaceChar {
			continue
		}
		out = append(out, w.r)
	}
	return out
}

// SortChars measures every candidate character and builds an alphabet
// ordered darkest to lightest. The space sentinel is always present at
// index 0, so even an empty candidate set yields a usable one-character
// alphabet. A character the font cannot render scores as pure black
// rather than aborting the batch; the fallback is logged per character.
func SortChars(chars []rune, f *truetype.Font, size float64) (*Alphabet, error) {
	return SortCharsCanvas(chars, f, size, DefaultMeasureCanvas)
}

// SortCharsCanvas is SortChars with an explicit measurement canvas size.
func SortCharsCanvas(chars []rune, f *truetype.Font, size float64, canvas int) (*Alphabet, error) {
	if f == nil {
		return nil, errors.New("sort characters: nil font")
	}
	if canvas <= 0 {
		return nil, fmt.Errorf("sort characters: canvas size %d", canvas)
	}

	weights := make([]charWeight, 0, len(chars))
	for _, r := range chars {
		if r == SpaceChar {
			continue
		}
		b, err := GlyphBrightness(f, size, r, canvas)
		if err != nil {
			log.WithField("char", string(r)).
				Warn("unrenderable character scored as darkest")
			b = 0
		}
		weights = append(weights, charWeight{r: r, weight: b})
	}

	return NewAlphabet(orderByWeight(weights))
}

// alphabetAsset is the persisted alphabet file format, stable across all
// tooling in this system.
type alphabetAsset struct {
	Characters string `json:"characters"`
	Count      int    `json:"count"`
}

// Save writes the alphabet asset as JSON.
func (a *Alphabet) Save(path string) error {
	asset := alphabetAsset{Characters: string(a.chars), Count: len(a.chars)}
	data, err := json.MarshalIndent(asset, "", "  ")
	if err != nil {
		return fmt.Errorf("encode alphabet: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write alphabet %s: %w", path, err)
	}
	return nil
}

// LoadAlphabet reads a persisted alphabet asset. Accepted forms, in
// order of preference: an object with a "characters" key, an object with
// a "chars" key, a bare array of single-character strings, or a bare
// string. Anything else is a hard error at load time.
func LoadAlphabet(path string) (*Alphabet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alphabet %s: %w", path, err)
	}

	chars, err := decodeAlphabet(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewAlphabet(chars)
}

func decodeAlphabet(data []byte) ([]rune, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		for _, key := range []string{"characters", "chars"} {
			raw, ok := obj[key]
			if !ok {
				continue
			}
			var s string
			if err := json.Unmarshal(raw, &s); err == nil {
				return checkAssetCount(obj, []rune(s))
			}
			var list []string
			if err := json.Unmarshal(raw, &list); err == nil {
				return checkAssetCount(obj, runesFromList(list))
			}
			return nil, fmt.Errorf("%w: %q key is neither string nor array",
				ErrMalformedAsset, key)
		}
		return nil, fmt.Errorf("%w: object has no characters key",
			ErrMalformedAsset)
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		return runesFromList(list), nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return []rune(s), nil
	}

	return nil, ErrMalformedAsset
}

// checkAssetCount cross-checks an asset's count field, when present,
// against the decoded characters. A mismatch means the asset was
// truncated or hand-edited; loading it silently would hide the damage.
func checkAssetCount(obj map[string]json.RawMessage, chars []rune) ([]rune, error) {
	raw, ok := obj["count"]
	if !ok {
		return chars, nil
	}
	var count int
	if err := json.Unmarshal(raw, &count); err != nil {
		return nil, fmt.Errorf("%w: count is not a number", ErrMalformedAsset)
	}
	if count != len(chars) {
		return nil, fmt.Errorf("%w: count %d does not match %d characters",
			ErrMalformedAsset, count, len(chars))
	}
	return chars, nil
}

func runesFromList(list []string) []rune {
	out := make([]rune, 0, len(list))
	for _, s := range list {
		out = append(out, []rune(s)...)
	}
	return out
}

// LoadCharSet reads candidate characters for an alphabet build. JSON
// files use the same forms as persisted assets; anything else is treated
// as raw text with newlines stripped. Duplicates are removed preserving
// first occurrence, so repeated builds see the same input order.
func LoadCharSet(path string) ([]rune, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read character set %s: %w", path, err)
	}

	var chars []rune
	if strings.EqualFold(filepath.Ext(path), ".json") {
		chars, err = decodeAlphabet(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	} else {
		text := strings.NewReplacer("\n", "", "\r", "").Replace(string(data))
		chars = []rune(text)
	}

	seen := make(map[rune]bool, len(chars))
	uniq := chars[:0]
	for _, r := range chars {
		if seen[r] {
			continue
		}
		seen[r] = true
		uniq = append(uniq, r)
	}
	return uniq, nil
}
