package txd

import "errors"

// The seven error kinds from the codec's error handling design. Every
// error this package returns wraps exactly one of these via %w, so callers
// can dispatch on coarse failure class with errors.Is regardless of which
// specific site produced it.
var (
	// ErrIO indicates a stream read or write failed or was short.
	ErrIO = errors.New("io")
	// ErrNotADictionary indicates the outer chunk is not TEXDICTIONARY.
	ErrNotADictionary = errors.New("not a texture dictionary")
	// ErrInvalidStructure indicates a missing or mis-typed required child,
	// an impossible length window, or an unreadable fixed-size field.
	ErrInvalidStructure = errors.New("invalid structure")
	// ErrUnsupportedPlatform indicates a recognized but unimplemented
	// platform for the requested operation.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	// ErrUnsupportedFormat indicates a raster format or compression for
	// which no decoder exists.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrQuantizerFailed indicates the palette generator could not
	// produce a palette for the given image.
	ErrQuantizerFailed = errors.New("quantizer failed")
	// ErrCompressorFailed indicates the DXT encoder could not produce
	// output.
	ErrCompressorFailed = errors.New("compressor failed")
)

// ErrDuplicateName indicates an add would collide with an existing
// texture name under case-insensitive comparison. Not one of the seven
// codec Kinds: a name collision is a caller-facing editing concern, not a
// parse or encode failure.
var ErrDuplicateName = errors.New("duplicate texture name")

// Finer-grained sentinels. Each is returned wrapped by one of the seven
// Kind sentinels above at its call site, so errors.Is still matches the
// Kind even though the specific site is lost to %v at that point.
var (
	ErrShortChunkHeader   = errors.New("short read of chunk header")
	ErrShortWrite         = errors.New("incomplete write")
	ErrNotAStruct         = errors.New("first child is not a STRUCT chunk")
	ErrStructTooShort     = errors.New("STRUCT payload too short")
	ErrMipmapCountZero    = errors.New("mipmap count is zero")
	ErrPaletteTooShort    = errors.New("palette payload too short")
	ErrMipmapDataTooShort = errors.New("mipmap payload too short")
	ErrNameTooLong        = errors.New("name exceeds 31 bytes")
	ErrNoPixelData        = errors.New("texture has no pixel data to decode")
	ErrBadDimensions      = errors.New("width or height is zero")
	ErrWrongPayloadSize   = errors.New("payload size does not match format")
	ErrPaletteSize        = errors.New("palette target size must be 16 or 256")
	ErrTooManyMipmaps     = errors.New("mipmap count exceeds 16")
)
