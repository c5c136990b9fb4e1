package ribbon

import (
	"regexp"
	"testing"
)

func TestColorDeterministic(t *testing.T) {
	first := Color("ctgA")
	for i := 0; i < 100; i++ {
		if got := Color("ctgA"); got != first {
			t.Fatalf("Color(ctgA) = %q on run %d, first call gave %q", got, i, first)
		}
	}
}

func TestColorIsPaletteEntry(t *testing.T) {
	hex := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	names := []string{"ctgA", "ctgB", "chr1", "chr22", "scaffold_17", ""}

	for _, name := range names {
		c := Color(name)
		if !hex.MatchString(c) {
			t.Errorf("Color(%q) = %q, not a lowercase hex color", name, c)
		}
		found := false
		for _, entry := range cmap {
			if entry == c {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Color(%q) = %q, not a palette entry", name, c)
		}
	}
}

func TestColorSpreadsNames(t *testing.T) {
	// Distinct names should not all collapse onto a single color.
	seen := make(map[string]bool)
	for _, name := range []string{"ctgA", "ctgB", "ctgC", "ctgD", "ctgE", "ctgF"} {
		seen[Color(name)] = true
	}
	if len(seen) < 2 {
		t.Errorf("6 names mapped to %d color(s)", len(seen))
	}
}
