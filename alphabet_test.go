package asciidome

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewAlphabetEmpty(t *testing.T) {
	if _, err := NewAlphabet(nil); !errors.Is(err, ErrEmptyAlphabet) {
		t.Errorf("Expected ErrEmptyAlphabet, got %v", err)
	}
}

func TestAlphabetLookupBoundaries(t *testing.T) {
	// Pixel 0 maps to the darkest character, pixel 255 to the lightest,
	// for every alphabet size.
	for n := 1; n <= 12; n++ {
		chars := make([]rune, n)
		for i := range chars {
			chars[i] = rune('a' + i)
		}
		a, err := NewAlphabet(chars)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}

		if got := a.CharFor(0); got != chars[0] {
			t.Errorf("n=%d: pixel 0 mapped to %q, want %q", n, got, chars[0])
		}
		if got := a.CharFor(255); got != chars[n-1] {
			t.Errorf("n=%d: pixel 255 mapped to %q, want %q", n, got, chars[n-1])
		}
	}
}

func TestAlphabetLookupQuantization(t *testing.T) {
	// The bucket index is floor(p*n/256). On the canonical 10-character
	// alphabet, mid-gray sits just past the 4/5 edge: 127 is the last
	// pixel that maps to '=' and 128 is the first that maps to '+'.
	a, err := NewAlphabet([]rune(" .:-=+*#%@"))
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		p    uint8
		want rune
	}{
		{0, ' '},
		{25, ' '},
		{26, '.'},
		{127, '='},
		{128, '+'},
		{255, '@'},
	}
	for _, c := range cases {
		if got := a.CharFor(c.p); got != c.want {
			t.Errorf("pixel %d mapped to %q, want %q", c.p, got, c.want)
		}
	}
}

func TestAlphabetLookupMonotonic(t *testing.T) {
	// Darker pixels never map to a lighter character than brighter ones.
	for _, n := range []int{1, 2, 3, 7, 10, 16, 255, 256} {
		chars := make([]rune, n)
		for i := range chars {
			chars[i] = rune(0x100 + i)
		}
		a, err := NewAlphabet(chars)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}

		prev := a.CharFor(0)
		for p := 1; p < 256; p++ {
			cur := a.CharFor(uint8(p))
			if cur < prev {
				t.Fatalf("n=%d: index decreased at pixel %d", n, p)
			}
			prev = cur
		}
	}
}

func TestAlphabetSingleCharClampsWhite(t *testing.T) {
	// Pixel 255 with a one-character alphabet must clamp to index 0.
	a, err := NewAlphabet([]rune{'#'})
	if err != nil {
		t.Fatal(err)
	}
	if got := a.CharFor(255); got != '#' {
		t.Errorf("Expected '#', got %q", got)
	}
}

func TestOrderByWeightStable(t *testing.T) {
	// Equal brightness keeps input order; space is pinned to index 0.
	weights := []charWeight{
		{r: 'x', weight: 5},
		{r: 'a', weight: 2},
		{r: 'b', weight: 2},
		{r: 'c', weight: 1},
	}
	got := string(orderByWeight(weights))
	want := " cabx"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestOrderByWeightSpaceNotDuplicated(t *testing.T) {
	weights := []charWeight{
		{r: SpaceChar, weight: 3},
		{r: 'a', weight: 1},
	}
	got := string(orderByWeight(weights))
	if got != " a" {
		t.Errorf("Expected \" a\", got %q", got)
	}
}

func TestOrderByWeightEmpty(t *testing.T) {
	// An empty candidate set still yields the space sentinel.
	got := orderByWeight(nil)
	if len(got) != 1 || got[0] != SpaceChar {
		t.Errorf("Expected single space sentinel, got %q", string(got))
	}
}

func TestAlphabetSaveLoadRoundTrip(t *testing.T) {
	a, err := NewAlphabet([]rune(" .:-=+*#%@"))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "alphabet.json")
	if err := a.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadAlphabet(path)
	if err != nil {
		t.Fatalf("LoadAlphabet: %v", err)
	}
	if loaded.String() != a.String() {
		t.Errorf("Expected %q, got %q", a.String(), loaded.String())
	}
	if loaded.Len() != a.Len() {
		t.Errorf("Expected count %d, got %d", a.Len(), loaded.Len())
	}
}

func TestDecodeAlphabetForms(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"characters key", `{"characters": " .@", "count": 3}`, " .@"},
		{"chars key", `{"chars": " .@"}`, " .@"},
		{"characters preferred over chars", `{"characters": "ab", "chars": "cd"}`, "ab"},
		{"bare array", `[" ", ".", "@"]`, " .@"},
		{"bare string", `" .@"`, " .@"},
	}
	for _, tt := range tests {
		got, err := decodeAlphabet([]byte(tt.data))
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, string(got))
		}
	}
}

func TestDecodeAlphabetMalformed(t *testing.T) {
	for _, data := range []string{
		`{"glyphs": "abc"}`,
		`{"characters": 42}`,
		`12345`,
		`not json at all`,
	} {
		if _, err := decodeAlphabet([]byte(data)); !errors.Is(err, ErrMalformedAsset) {
			t.Errorf("%s: expected ErrMalformedAsset, got %v", data, err)
		}
	}
}

func TestDecodeAlphabetCountMismatch(t *testing.T) {
	// A truncated asset keeps its original count; the disagreement is
	// detected at decode time instead of loading a short alphabet.
	for _, data := range []string{
		`{"characters": " .@", "count": 10}`,
		`{"chars": [" ", "."], "count": 3}`,
		`{"characters": "ab", "count": "2"}`,
	} {
		if _, err := decodeAlphabet([]byte(data)); !errors.Is(err, ErrMalformedAsset) {
			t.Errorf("%s: expected ErrMalformedAsset, got %v", data, err)
		}
	}

	// A matching count still loads.
	got, err := decodeAlphabet([]byte(`{"characters": " .@", "count": 3}`))
	if err != nil {
		t.Fatalf("Matching count should decode: %v", err)
	}
	if string(got) != " .@" {
		t.Errorf("Expected %q, got %q", " .@", string(got))
	}
}

func TestLoadAlphabetEmptyAssetIsError(t *testing.T) {
	// An asset with no characters must fail at load time, not at first use.
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte(`{"characters": "", "count": 0}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAlphabet(path); !errors.Is(err, ErrEmptyAlphabet) {
		t.Errorf("Expected ErrEmptyAlphabet, got %v", err)
	}
}

func TestLoadCharSetText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chars.txt")
	if err := os.WriteFile(path, []byte("abc\r\ncab\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadCharSet(path)
	if err != nil {
		t.Fatal(err)
	}
	// Duplicates dropped, first occurrence order kept, newlines stripped.
	if string(got) != "abc" {
		t.Errorf("Expected \"abc\", got %q", string(got))
	}
}

func TestLoadCharSetJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chars.json")
	if err := os.WriteFile(path, []byte(`{"characters": "@@.."}`), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadCharSet(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "@." {
		t.Errorf("Expected \"@.\", got %q", string(got))
	}
}
