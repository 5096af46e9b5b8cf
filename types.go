package txd

import "fmt"

// ChunkType identifies the kind of payload a ChunkHeader introduces.
type ChunkType uint32

// Known chunk types used by the codec. Unknown codes inside a parent are
// skipped by advancing past their payload; they never abort parsing.
const (
	ChunkStruct         ChunkType = 0x01
	ChunkString         ChunkType = 0x02
	ChunkExtension      ChunkType = 0x03
	ChunkTextureNative  ChunkType = 0x15
	ChunkTexDictionary  ChunkType = 0x16
)

func (c ChunkType) String() string {
	switch c {
	case ChunkStruct:
		return "STRUCT"
	case ChunkString:
		return "STRING"
	case ChunkExtension:
		return "EXTENSION"
	case ChunkTextureNative:
		return "TEXTURENATIVE"
	case ChunkTexDictionary:
		return "TEXDICTIONARY"
	default:
		return fmt.Sprintf("CHUNK(0x%08X)", uint32(c))
	}
}

// Platform identifies the runtime graphics platform a native texture was
// encoded for.
type Platform uint32

const (
	PlatformOGL  Platform = 2
	PlatformPS2  Platform = 4
	PlatformXbox Platform = 5
	PlatformD3D8 Platform = 8
	PlatformD3D9 Platform = 9
)

func (p Platform) String() string {
	switch p {
	case PlatformOGL:
		return "OGL"
	case PlatformPS2:
		return "PS2"
	case PlatformXbox:
		return "Xbox"
	case PlatformD3D8:
		return "D3D8"
	case PlatformD3D9:
		return "D3D9"
	default:
		return fmt.Sprintf("Platform(%d)", uint32(p))
	}
}

// RasterFormat is the 32-bit field whose low mask encodes pixel layout and
// whose upper bits flag PAL4/PAL8, mipmapping, and auto-mipmap.
type RasterFormat uint32

const (
	RasterDefault   RasterFormat = 0x0000
	RasterA1R5G5B5  RasterFormat = 0x0100
	RasterR5G6B5    RasterFormat = 0x0200
	RasterR4G4B4A4  RasterFormat = 0x0300
	RasterLUM8      RasterFormat = 0x0400
	RasterB8G8R8A8  RasterFormat = 0x0500
	RasterB8G8R8    RasterFormat = 0x0600
	RasterR5G5B5    RasterFormat = 0x0A00

	RasterAutoMipmap RasterFormat = 0x1000
	RasterPAL8       RasterFormat = 0x2000
	RasterPAL4       RasterFormat = 0x4000
	RasterMipmap     RasterFormat = 0x8000

	RasterMask RasterFormat = 0x0F00
)

// Base returns the low mask describing the pixel layout, stripping the
// PAL4/PAL8/mipmap/auto-mipmap flag bits.
func (f RasterFormat) Base() RasterFormat {
	return f & RasterMask
}

// HasPalette4 reports whether the PAL4 flag bit is set.
func (f RasterFormat) HasPalette4() bool {
	return f&RasterPAL4 != 0
}

// HasPalette8 reports whether the PAL8 flag bit is set.
func (f RasterFormat) HasPalette8() bool {
	return f&RasterPAL8 != 0
}

func (f RasterFormat) String() string {
	switch f.Base() {
	case RasterA1R5G5B5:
		return "A1R5G5B5"
	case RasterR5G6B5:
		return "R5G6B5"
	case RasterR4G4B4A4:
		return "R4G4B4A4"
	case RasterLUM8:
		return "LUM8"
	case RasterB8G8R8A8:
		return "B8G8R8A8"
	case RasterB8G8R8:
		return "B8G8R8"
	case RasterR5G5B5:
		return "R5G5B5"
	default:
		return fmt.Sprintf("RasterFormat(0x%04X)", uint32(f.Base()))
	}
}

// Compression identifies block-compression applied to a native texture's
// mipmap payloads.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionDXT1 Compression = 1
	CompressionDXT3 Compression = 3
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionDXT1:
		return "DXT1"
	case CompressionDXT3:
		return "DXT3"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// GameVersion is the game family detected from a dictionary's outer
// library_version word.
type GameVersion int

const (
	GameUnknown GameVersion = iota
	GameGTA3
	GameViceCityPS2
	GameViceCityPC
	GameSanAndreas
)

func (g GameVersion) String() string {
	switch g {
	case GameGTA3:
		return "GTA III"
	case GameViceCityPS2:
		return "Vice City (PS2)"
	case GameViceCityPC:
		return "Vice City (PC)"
	case GameSanAndreas:
		return "San Andreas"
	default:
		return "Unknown"
	}
}

// detectGameVersion maps a dictionary's outer library_version word to the
// game family that wrote it. Any value not in the table is GameUnknown;
// the writer still preserves the version word byte-for-byte in that case.
func detectGameVersion(version uint32) GameVersion {
	switch version {
	case 0x00000302, 0x00000304, 0x00000310, 0x0800FFFF:
		return GameGTA3
	case 0x0C02FFFF:
		return GameViceCityPS2
	case 0x1003FFFF:
		return GameViceCityPC
	case 0x1803FFFF:
		return GameSanAndreas
	default:
		return GameUnknown
	}
}

// defaultLibraryVersion is the version word the writer stamps into child
// TEXTURENATIVE chunks when the caller has not preserved one from a prior
// load.
const defaultLibraryVersion uint32 = 0x34000
