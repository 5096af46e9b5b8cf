package txd

import "fmt"

// PresentedTexture is the form a texture takes at the editor boundary: it
// decouples on-disk layout from UI state by carrying only canonical RGBA
// for level 0, leaving raster_format, depth, and compression to be
// re-derived on save.
type PresentedTexture struct {
	Name          string
	MaskName      string
	Width         uint32
	Height        uint32
	HasAlpha      bool
	MipmapCount   int
	FilterFlags   uint32
	RasterFormat  RasterFormat // informational only; not a contract
	CompressionOn bool
	Platform      Platform
	RGBA          []byte // canonical level-0 pixels
}

// ToPresented decodes tex's level-0 mipmap to canonical RGBA and packages
// it with the editor-facing fields. D3D8/D3D9 textures only; callers
// should not present PS2/Xbox/OGL pass-through textures.
func ToPresented(tex *Texture) (*PresentedTexture, error) {
	if len(tex.Mipmaps) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, ErrNoPixelData)
	}
	level0 := tex.Mipmaps[0]
	if level0.Width == 0 || level0.Height == 0 || len(level0.Bytes) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, ErrNoPixelData)
	}

	var rgba []byte
	var err error
	switch tex.Compression {
	case CompressionNone:
		rgba, err = DecodeToRGBA(tex.RasterFormat, level0.Width, level0.Height, level0.Bytes, tex.Palette)
	case CompressionDXT1, CompressionDXT3:
		rgba, err = DecodeDXT(tex.Compression, level0.Width, level0.Height, level0.Bytes)
	default:
		return nil, fmt.Errorf("%w: compression %v", ErrUnsupportedFormat, tex.Compression)
	}
	if err != nil {
		return nil, err
	}

	return &PresentedTexture{
		Name:          tex.Name,
		MaskName:      tex.MaskName,
		Width:         level0.Width,
		Height:        level0.Height,
		HasAlpha:      tex.HasAlpha,
		MipmapCount:   len(tex.Mipmaps),
		FilterFlags:   tex.FilterFlags,
		RasterFormat:  tex.RasterFormat,
		CompressionOn: tex.Compression != CompressionNone,
		Platform:      tex.Platform,
		RGBA:          rgba,
	}, nil
}

// FromPresented re-derives raster_format, depth, and compression from
// has_alpha and compression_on, and encodes a single-level
// (mipmap_count == 1) D3D9 texture from the presented RGBA. It never
// regenerates a mipmap chain from a top level; a caller that wants more
// levels must construct them itself before saving.
func FromPresented(p *PresentedTexture, quality float64) (*Texture, error) {
	if p.Width == 0 || p.Height == 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, ErrBadDimensions)
	}
	if len(p.RGBA) < int(p.Width)*int(p.Height)*4 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, ErrWrongPayloadSize)
	}

	tex := &Texture{
		Platform:    PlatformD3D9,
		Name:        p.Name,
		MaskName:    p.MaskName,
		FilterFlags: p.FilterFlags,
		HasAlpha:    p.HasAlpha,
	}

	var raster RasterFormat
	var depth uint32
	var data []byte
	var err error

	switch {
	case !p.HasAlpha && !p.CompressionOn:
		raster, depth = RasterB8G8R8, 24
		tex.Compression = CompressionNone
		data, err = EncodeFromRGBA(raster, p.Width, p.Height, p.RGBA)
	case p.HasAlpha && !p.CompressionOn:
		raster, depth = RasterB8G8R8A8, 32
		tex.Compression = CompressionNone
		data, err = EncodeFromRGBA(raster, p.Width, p.Height, p.RGBA)
	case !p.HasAlpha && p.CompressionOn:
		raster, depth = RasterB8G8R8, 16
		tex.Compression = CompressionDXT1
		data, err = EncodeDXT1(p.RGBA, p.Width, p.Height, quality)
	default: // has_alpha && compression_on
		raster, depth = RasterB8G8R8A8, 16
		tex.Compression = CompressionDXT3
		data, err = EncodeDXT3(p.RGBA, p.Width, p.Height, quality)
	}
	if err != nil {
		return nil, err
	}

	tex.RasterFormat = raster
	tex.Depth = depth
	tex.Mipmaps = []MipmapLevel{{Width: p.Width, Height: p.Height, Bytes: data}}

	return tex, nil
}
