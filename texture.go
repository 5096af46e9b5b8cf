package txd

import (
	"bytes"
	"fmt"
	"io"
)

// D3D9 FOURCC-position values used when a D3D9 texture is uncompressed:
// the game stores the native D3DFORMAT enum value there instead of a
// block-compression tag.
const (
	d3dfmtA8R8G8B8 = 0x15
	d3dfmtX8R8G8B8 = 0x16
)

// Texture is one native texture: names, render-state flags, raster
// format/compression/depth, an ordered mipmap chain, and an optional
// palette. A Texture owns all of its bytes.
type Texture struct {
	Platform       Platform
	Name           string
	MaskName       string
	FilterFlags    uint32
	RasterFormat   RasterFormat
	Depth          uint32
	HasAlpha       bool
	Compression    Compression
	Mipmaps        []MipmapLevel
	Palette        []byte // raw on-disk bytes, BGRA per entry; nil if no palette
	LibraryVersion uint32 // version word this texture's chunk was stamped with

	// RawBody holds the verbatim TEXTURENATIVE section payload (after the
	// 12-byte chunk header) for platforms this codec recognizes but does
	// not decode pixels for (PS2, Xbox, OGL). Write re-emits it unchanged.
	// Empty for D3D8/D3D9 textures.
	RawBody []byte
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// ReadNativeTexture reads one TEXTURENATIVE chunk. D3D8 and D3D9 textures
// are fully decoded; PS2, Xbox, and OGL textures are recognized and kept
// as raw pass-through bytes. Any other platform code is
// ErrUnsupportedPlatform.
func ReadNativeTexture(r io.ReadSeeker) (*Texture, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	if header.Type != ChunkTextureNative {
		return nil, fmt.Errorf("%w: expected TEXTURENATIVE, got %v", ErrInvalidStructure, header.Type)
	}

	sectionStart, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	sectionEnd := sectionStart + int64(header.Length)

	structHeader, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	if structHeader.Type != ChunkStruct {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, ErrNotAStruct)
	}

	platformVal, err := ReadUint32LE(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	platform := Platform(platformVal)

	var tex *Texture
	switch platform {
	case PlatformD3D8, PlatformD3D9:
		tex, err = readD3DStruct(r, platform, structHeader)
		if err != nil {
			return nil, err
		}
		tex.LibraryVersion = header.LibraryVersion
	case PlatformPS2, PlatformXbox, PlatformOGL:
		if _, err := r.Seek(sectionStart, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
		raw := make([]byte, header.Length)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
		}
		tex = &Texture{Platform: platform, RawBody: raw, LibraryVersion: header.LibraryVersion}
	default:
		if _, serr := r.Seek(sectionEnd, io.SeekStart); serr != nil {
			return nil, fmt.Errorf("%w: %v", ErrIO, serr)
		}
		return nil, fmt.Errorf("%w: platform code %d", ErrUnsupportedPlatform, platformVal)
	}

	if _, err := r.Seek(sectionEnd, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return tex, nil
}

// readD3DStruct decodes the STRUCT payload of a D3D8 or D3D9 TEXTURENATIVE
// chunk. The stream must be positioned just after the platform word.
func readD3DStruct(r io.ReadSeeker, platform Platform, structHeader ChunkHeader) (*Texture, error) {
	tex := &Texture{Platform: platform}

	filterFlags, err := ReadUint32LE(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	tex.FilterFlags = filterFlags

	name, err := readFixedName(r, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	tex.Name = name

	maskName, err := readFixedName(r, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	tex.MaskName = maskName

	rasterVal, err := ReadUint32LE(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	tex.RasterFormat = RasterFormat(rasterVal)

	var fourcc [4]byte
	if platform == PlatformD3D9 {
		if _, err := io.ReadFull(r, fourcc[:]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
		}
	} else {
		alphaVal, err := ReadUint32LE(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
		}
		tex.HasAlpha = alphaVal == 1
	}

	width, err := ReadUint16LE(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	height, err := ReadUint16LE(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}

	var oneByte [1]byte
	if _, err := io.ReadFull(r, oneByte[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	tex.Depth = uint32(oneByte[0])

	if _, err := io.ReadFull(r, oneByte[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	mipmapCount := oneByte[0]
	if mipmapCount == 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, ErrMipmapCountZero)
	}

	// raster_type byte: always 4 on write, never validated on read.
	if _, err := io.ReadFull(r, oneByte[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}

	if _, err := io.ReadFull(r, oneByte[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	flags := oneByte[0]

	if platform == PlatformD3D9 {
		tex.HasAlpha = flags&0x1 != 0
		if flags&0x8 != 0 {
			switch string(fourcc[:]) {
			case "DXT1":
				tex.Compression = CompressionDXT1
			case "DXT3":
				tex.Compression = CompressionDXT3
			default:
				tex.Compression = CompressionNone
			}
		} else {
			tex.Compression = CompressionNone
		}
	} else {
		switch flags {
		case 1:
			tex.Compression = CompressionDXT1
		case 3:
			tex.Compression = CompressionDXT3
		default:
			tex.Compression = CompressionNone
		}
	}

	switch {
	case tex.RasterFormat.HasPalette8():
		pal := make([]byte, 256*4)
		if _, err := io.ReadFull(r, pal); err != nil {
			return nil, fmt.Errorf("%w: %v: %v", ErrInvalidStructure, ErrPaletteTooShort, err)
		}
		tex.Palette = pal
	case tex.RasterFormat.HasPalette4():
		pal := make([]byte, 16*4)
		if _, err := io.ReadFull(r, pal); err != nil {
			return nil, fmt.Errorf("%w: %v: %v", ErrInvalidStructure, ErrPaletteTooShort, err)
		}
		tex.Palette = pal
	}

	compressed := tex.Compression != CompressionNone
	mipmaps := make([]MipmapLevel, 0, mipmapCount)
	curW, curH := uint32(width), uint32(height)
	for i := 0; i < int(mipmapCount); i++ {
		if i > 0 {
			curW = nextMipDim(curW, compressed)
			curH = nextMipDim(curH, compressed)
		}

		size, err := ReadUint32LE(r)
		if err != nil {
			return nil, fmt.Errorf("%w: mipmap %d: %v", ErrInvalidStructure, i, err)
		}
		if size == 0 {
			curW, curH = 0, 0
		}

		var data []byte
		if size > 0 {
			data = make([]byte, size)
			if _, err := io.ReadFull(r, data); err != nil {
				return nil, fmt.Errorf("%w: mipmap %d: %v: %v", ErrInvalidStructure, i, ErrMipmapDataTooShort, err)
			}
		}

		mipmaps = append(mipmaps, MipmapLevel{Width: curW, Height: curH, Bytes: data})
	}
	tex.Mipmaps = mipmaps

	return tex, nil
}

// WriteNativeTexture writes tex as a complete TEXTURENATIVE chunk
// (STRUCT followed by an empty EXTENSION). The body is built in memory
// first so the 12-byte length prefixes never need a seek-and-patch.
func WriteNativeTexture(w io.Writer, tex *Texture) error {
	if tex.Platform != PlatformD3D8 && tex.Platform != PlatformD3D9 {
		if len(tex.RawBody) > 0 {
			version := tex.LibraryVersion
			if version == 0 {
				version = defaultLibraryVersion
			}
			header := ChunkHeader{Type: ChunkTextureNative, Length: uint32(len(tex.RawBody)), LibraryVersion: version}
			if err := WriteHeader(w, header); err != nil {
				return err
			}
			n, err := w.Write(tex.RawBody)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrIO, err)
			}
			if n != len(tex.RawBody) {
				return fmt.Errorf("%w: %v", ErrIO, ErrShortWrite)
			}
			return nil
		}
		return fmt.Errorf("%w: cannot write platform %v without a loaded raw body", ErrUnsupportedPlatform, tex.Platform)
	}

	if len(tex.Name) > 31 {
		return fmt.Errorf("%w: %v", ErrInvalidStructure, ErrNameTooLong)
	}
	if len(tex.MaskName) > 31 {
		return fmt.Errorf("%w: %v", ErrInvalidStructure, ErrNameTooLong)
	}
	if len(tex.Mipmaps) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidStructure, ErrMipmapCountZero)
	}
	if len(tex.Mipmaps) > maxMipmapLevels {
		return fmt.Errorf("%w: %v", ErrInvalidStructure, ErrTooManyMipmaps)
	}
	if tex.RasterFormat.HasPalette8() && len(tex.Palette) != 1024 {
		return fmt.Errorf("%w: palette: %v", ErrInvalidStructure, ErrWrongPayloadSize)
	}
	if tex.RasterFormat.HasPalette4() && len(tex.Palette) != 64 {
		return fmt.Errorf("%w: palette: %v", ErrInvalidStructure, ErrWrongPayloadSize)
	}

	version := tex.LibraryVersion
	if version == 0 {
		version = defaultLibraryVersion
	}

	var body bytes.Buffer
	if err := WriteUint32LE(&body, uint32(tex.Platform)); err != nil {
		return err
	}
	if err := WriteUint32LE(&body, tex.FilterFlags); err != nil {
		return err
	}
	if err := writeFixedName(&body, tex.Name, 32); err != nil {
		return err
	}
	if err := writeFixedName(&body, tex.MaskName, 32); err != nil {
		return err
	}
	if err := WriteUint32LE(&body, uint32(tex.RasterFormat)); err != nil {
		return err
	}

	if tex.Platform == PlatformD3D9 {
		if tex.Compression != CompressionNone {
			var fourcc string
			switch tex.Compression {
			case CompressionDXT1:
				fourcc = "DXT1"
			case CompressionDXT3:
				fourcc = "DXT3"
			}
			if _, err := body.WriteString(fourcc); err != nil {
				return fmt.Errorf("%w: %v", ErrIO, err)
			}
		} else {
			value := uint32(d3dfmtX8R8G8B8)
			if tex.HasAlpha {
				value = d3dfmtA8R8G8B8
			}
			if err := WriteUint32LE(&body, value); err != nil {
				return err
			}
		}
	} else {
		if err := WriteUint32LE(&body, boolToU32(tex.HasAlpha)); err != nil {
			return err
		}
	}

	if err := WriteUint16LE(&body, uint16(tex.Mipmaps[0].Width)); err != nil {
		return err
	}
	if err := WriteUint16LE(&body, uint16(tex.Mipmaps[0].Height)); err != nil {
		return err
	}

	if err := body.WriteByte(byte(tex.Depth)); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := body.WriteByte(byte(len(tex.Mipmaps))); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := body.WriteByte(4); err != nil { // raster_type, always 4
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	var flags byte
	if tex.Platform == PlatformD3D9 {
		if tex.HasAlpha {
			flags |= 0x1
		}
		if tex.Compression != CompressionNone {
			flags |= 0x8
		}
	} else {
		flags = byte(tex.Compression)
	}
	if err := body.WriteByte(flags); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	if len(tex.Palette) > 0 {
		if _, err := body.Write(tex.Palette); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
	}

	for i, m := range tex.Mipmaps {
		if err := WriteUint32LE(&body, uint32(len(m.Bytes))); err != nil {
			return fmt.Errorf("mipmap %d: %w", i, err)
		}
		if len(m.Bytes) > 0 {
			if _, err := body.Write(m.Bytes); err != nil {
				return fmt.Errorf("mipmap %d: %w", i, err)
			}
		}
	}

	structHeader := ChunkHeader{Type: ChunkStruct, Length: uint32(body.Len()), LibraryVersion: version}
	sectionLength := uint32(chunkHeaderSize) + structHeader.Length + uint32(chunkHeaderSize)
	sectionHeader := ChunkHeader{Type: ChunkTextureNative, Length: sectionLength, LibraryVersion: version}

	if err := WriteHeader(w, sectionHeader); err != nil {
		return err
	}
	if err := WriteHeader(w, structHeader); err != nil {
		return err
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	extHeader := ChunkHeader{Type: ChunkExtension, Length: 0, LibraryVersion: version}
	if err := WriteHeader(w, extHeader); err != nil {
		return err
	}

	return nil
}
