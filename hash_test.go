package txd

import "testing"

func TestContentHashDeterministic(t *testing.T) {
	t.Parallel()

	data := []byte("texture payload bytes")
	if ContentHash(data) != ContentHash(data) {
		t.Fatalf("ContentHash is not deterministic for identical input")
	}
}

func TestContentHashDiffersOnDifferentInput(t *testing.T) {
	t.Parallel()

	a := ContentHash([]byte{1, 2, 3})
	b := ContentHash([]byte{1, 2, 4})
	if a == b {
		t.Fatalf("expected different hashes for different inputs")
	}
}

func TestDuplicateGroupsFindsIdenticalTextures(t *testing.T) {
	t.Parallel()

	d := NewTextureDictionary()
	payload := make([]byte, 48)
	for i := range payload {
		payload[i] = byte(i)
	}

	mustAdd := func(name string, bytesCopy []byte) {
		if err := d.Add(Texture{
			Platform:     PlatformD3D9,
			Name:         name,
			RasterFormat: RasterB8G8R8,
			Mipmaps:      []MipmapLevel{{Width: 4, Height: 4, Bytes: bytesCopy}},
		}); err != nil {
			t.Fatalf("Add(%q): %v", name, err)
		}
	}

	dup1 := append([]byte(nil), payload...)
	dup2 := append([]byte(nil), payload...)
	unique := make([]byte, 48)

	mustAdd("a", dup1)
	mustAdd("b", dup2)
	mustAdd("c", unique)

	groups := d.DuplicateGroups()
	if len(groups) != 1 {
		t.Fatalf("expected 1 duplicate group, got %d", len(groups))
	}
	if len(groups[0]) != 2 {
		t.Fatalf("expected 2 names in duplicate group, got %d", len(groups[0]))
	}
}

func TestDuplicateGroupsMatchesAcrossRasterFormats(t *testing.T) {
	t.Parallel()

	// Pure 0/255 channel values are exact fixed points of 565 quantization,
	// so the direct and DXT1-compressed encodings decode back to identical
	// RGBA bytes.
	rgba := solidRGBA(4, 4, 0, 255, 0, 255)
	direct, err := EncodeFromRGBA(RasterB8G8R8, 4, 4, rgba)
	if err != nil {
		t.Fatalf("EncodeFromRGBA: %v", err)
	}
	compressed, err := EncodeDXT1(rgba, 4, 4, 1.0)
	if err != nil {
		t.Fatalf("EncodeDXT1: %v", err)
	}

	d := NewTextureDictionary()
	if err := d.Add(Texture{
		Platform: PlatformD3D9, Name: "direct", RasterFormat: RasterB8G8R8,
		Mipmaps: []MipmapLevel{{Width: 4, Height: 4, Bytes: direct}},
	}); err != nil {
		t.Fatalf("Add(direct): %v", err)
	}
	if err := d.Add(Texture{
		Platform: PlatformD3D9, Name: "compressed", RasterFormat: RasterB8G8R8,
		Compression: CompressionDXT1,
		Mipmaps:     []MipmapLevel{{Width: 4, Height: 4, Bytes: compressed}},
	}); err != nil {
		t.Fatalf("Add(compressed): %v", err)
	}

	groups := d.DuplicateGroups()
	if len(groups) != 1 || len(groups[0]) != 2 {
		t.Fatalf("expected one group of 2 visually-identical textures, got %v", groups)
	}
}
