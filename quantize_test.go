package txd

import "testing"

func TestBuildPaletteFourColorsPAL4(t *testing.T) {
	t.Parallel()

	// 4x4 image, 4 distinct solid-color quadrants.
	rgba := make([]byte, 4*4*4)
	quadrant := func(x, y int) (r, g, b byte) {
		switch {
		case x < 2 && y < 2:
			return 255, 0, 0
		case x >= 2 && y < 2:
			return 0, 255, 0
		case x < 2 && y >= 2:
			return 0, 0, 255
		default:
			return 255, 255, 0
		}
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			r, g, b := quadrant(x, y)
			off := (y*4 + x) * 4
			rgba[off], rgba[off+1], rgba[off+2], rgba[off+3] = r, g, b, 255
		}
	}

	palette, indices, err := BuildPalette(rgba, 4, 4, 16)
	if err != nil {
		t.Fatalf("BuildPalette: %v", err)
	}
	if len(palette) != 16*4 {
		t.Fatalf("palette length = %d, want %d", len(palette), 16*4)
	}
	if len(indices) != 16 {
		t.Fatalf("indices length = %d, want 16", len(indices))
	}

	distinct := map[byte]bool{}
	for _, idx := range indices {
		distinct[idx] = true
	}
	if len(distinct) > 4 {
		t.Fatalf("expected at most 4 distinct palette entries, got %d", len(distinct))
	}
}

func TestBuildPaletteRejectsBadColorCount(t *testing.T) {
	t.Parallel()

	_, _, err := BuildPalette(make([]byte, 4*4*4), 4, 4, 7)
	if err == nil {
		t.Fatalf("expected error for maxColors=7")
	}
}

func TestBuildPalettePaletteIsRGBAOrder(t *testing.T) {
	t.Parallel()

	// A single solid-red image: the sole populated palette entry must come
	// back as R,G,B,A (255,0,0,255), not disk-order BGRA.
	rgba := make([]byte, 4*4*4)
	for i := 0; i < 16; i++ {
		rgba[i*4+0] = 255
		rgba[i*4+3] = 255
	}
	palette, indices, err := BuildPalette(rgba, 4, 4, 16)
	if err != nil {
		t.Fatalf("BuildPalette: %v", err)
	}
	entry := palette[indices[0]*4 : indices[0]*4+4]
	if entry[0] != 255 || entry[1] != 0 || entry[2] != 0 || entry[3] != 255 {
		t.Fatalf("palette entry = %v, want [255 0 0 255] (R,G,B,A)", entry)
	}
}
