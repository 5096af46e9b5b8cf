package txd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDictionaryOpaqueTextureRoundTrip covers the opaque-texture end-to-end
// case: version 0x1803FFFF, one 8x8 texture named "red", not compressed.
func TestDictionaryOpaqueTextureRoundTrip(t *testing.T) {
	t.Parallel()

	d := NewTextureDictionary()
	d.LibraryVersion = 0x1803FFFF
	require.NoError(t, d.Add(Texture{
		Platform:     PlatformD3D9,
		Name:         "red",
		RasterFormat: RasterB8G8R8,
		Depth:        24,
		Compression:  CompressionNone,
		Mipmaps:      []MipmapLevel{{Width: 8, Height: 8, Bytes: make([]byte, 8*8*3)}},
	}))

	var buf bytes.Buffer
	require.NoError(t, SaveTextureDictionary(&buf, d))

	reloaded, err := LoadTextureDictionary(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, 1, reloaded.Len())
	tex, ok := reloaded.Find("red")
	require.True(t, ok)
	assert.Equal(t, "red", tex.Name)
	assert.Equal(t, uint32(8), tex.Mipmaps[0].Width)
	assert.Equal(t, uint32(8), tex.Mipmaps[0].Height)
	assert.False(t, tex.HasAlpha)
	assert.Equal(t, CompressionNone, tex.Compression)
	assert.Equal(t, RasterB8G8R8, tex.RasterFormat)
	assert.Equal(t, uint32(24), tex.Depth)
	assert.Equal(t, GameSanAndreas, reloaded.GameVersion)
}

// TestDictionaryDXT3AlphaTextureRoundTrip covers the DXT3-with-alpha
// end-to-end case.
func TestDictionaryDXT3AlphaTextureRoundTrip(t *testing.T) {
	t.Parallel()

	rgba := solidRGBA(64, 64, 200, 100, 50, 255)
	compressed, err := EncodeDXT3(rgba, 64, 64, 1.0)
	require.NoError(t, err)

	d := NewTextureDictionary()
	d.LibraryVersion = 0x1803FFFF
	require.NoError(t, d.Add(Texture{
		Platform:     PlatformD3D9,
		Name:         "glow",
		RasterFormat: RasterB8G8R8A8,
		Depth:        16,
		HasAlpha:     true,
		Compression:  CompressionDXT3,
		Mipmaps:      []MipmapLevel{{Width: 64, Height: 64, Bytes: compressed}},
	}))

	var buf bytes.Buffer
	require.NoError(t, SaveTextureDictionary(&buf, d))

	reloaded, err := LoadTextureDictionary(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	tex, ok := reloaded.Find("glow")
	require.True(t, ok)
	assert.True(t, tex.HasAlpha)
	assert.Equal(t, CompressionDXT3, tex.Compression)

	decoded, err := DecodeDXT(CompressionDXT3, 64, 64, tex.Mipmaps[0].Bytes)
	require.NoError(t, err)
	for i := 0; i < 64*64; i++ {
		checkChannelTolerance(t, decoded[i*4+0], 200, 20)
		checkChannelTolerance(t, decoded[i*4+1], 100, 20)
		checkChannelTolerance(t, decoded[i*4+2], 50, 20)
		checkChannelTolerance(t, decoded[i*4+3], 255, 20)
	}
}

func TestDictionaryAddDuplicateNameIsRejected(t *testing.T) {
	t.Parallel()

	d := NewTextureDictionary()
	tex := Texture{
		Platform:     PlatformD3D9,
		Name:         "Sign",
		RasterFormat: RasterB8G8R8,
		Mipmaps:      []MipmapLevel{{Width: 4, Height: 4, Bytes: make([]byte, 48)}},
	}
	require.NoError(t, d.Add(tex))

	tex.Name = "sign" // case-insensitive collision
	err := d.Add(tex)
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestDictionaryFindIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	d := NewTextureDictionary()
	require.NoError(t, d.Add(Texture{
		Platform:     PlatformD3D9,
		Name:         "Wall_Brick",
		RasterFormat: RasterB8G8R8,
		Mipmaps:      []MipmapLevel{{Width: 4, Height: 4, Bytes: make([]byte, 48)}},
	}))

	_, ok := d.Find("wall_brick")
	assert.True(t, ok)
	_, ok = d.Find("WALL_BRICK")
	assert.True(t, ok)
	_, ok = d.Find("nope")
	assert.False(t, ok)
}

func TestDictionaryRemoveRebuildsIndex(t *testing.T) {
	t.Parallel()

	d := NewTextureDictionary()
	require.NoError(t, d.Add(Texture{Platform: PlatformD3D9, Name: "a", RasterFormat: RasterB8G8R8, Mipmaps: []MipmapLevel{{Width: 4, Height: 4, Bytes: make([]byte, 48)}}}))
	require.NoError(t, d.Add(Texture{Platform: PlatformD3D9, Name: "b", RasterFormat: RasterB8G8R8, Mipmaps: []MipmapLevel{{Width: 4, Height: 4, Bytes: make([]byte, 48)}}}))

	ok := d.RemoveName("a")
	assert.True(t, ok)
	assert.Equal(t, 1, d.Len())
	_, found := d.Find("a")
	assert.False(t, found)
	tex, found := d.Find("b")
	assert.True(t, found)
	assert.Equal(t, "b", tex.Name)
}

func TestLoadTextureDictionaryRejectsWrongOuterChunk(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, ChunkHeader{Type: ChunkExtension, Length: 0}))

	_, err := LoadTextureDictionary(bytes.NewReader(buf.Bytes()))
	assert.ErrorIs(t, err, ErrNotADictionary)
}

func TestDictionaryStructuralRoundTripMultipleTextures(t *testing.T) {
	t.Parallel()

	d := NewTextureDictionary()
	d.LibraryVersion = 0x0C02FFFF // Vice City PS2
	names := []string{"hud", "sky", "road", "wall"}
	for _, name := range names {
		require.NoError(t, d.Add(Texture{
			Platform:     PlatformD3D9,
			Name:         name,
			RasterFormat: RasterB8G8R8A8,
			Depth:        32,
			HasAlpha:     true,
			Compression:  CompressionNone,
			Mipmaps:      []MipmapLevel{{Width: 16, Height: 16, Bytes: make([]byte, 16*16*4)}},
		}))
	}

	var buf bytes.Buffer
	require.NoError(t, SaveTextureDictionary(&buf, d))
	reloaded, err := LoadTextureDictionary(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, len(names), reloaded.Len())
	for _, name := range names {
		tex, ok := reloaded.Find(name)
		require.True(t, ok, "missing texture %q", name)
		assert.Equal(t, PlatformD3D9, tex.Platform)
		assert.True(t, tex.HasAlpha)
	}
	assert.Equal(t, GameViceCityPS2, reloaded.GameVersion)
}
