package txd

import (
	"fmt"
	"math"

	mdxt "github.com/mauserzjeh/dxt"
)

// blockCounts returns the number of 4×4 blocks spanning width×height,
// rounding up on both axes.
func blockCounts(width, height uint32) (blocksX, blocksY uint32) {
	blocksX = (width + 3) / 4
	blocksY = (height + 3) / 4
	return
}

// CompressedSize returns the exact on-disk payload size for a width×height
// DXT1 or DXT3 mipmap level.
func CompressedSize(width, height uint32, compression Compression) (int, error) {
	blocksX, blocksY := blockCounts(width, height)
	switch compression {
	case CompressionDXT1:
		return int(blocksX) * int(blocksY) * 8, nil
	case CompressionDXT3:
		return int(blocksX) * int(blocksY) * 16, nil
	default:
		return 0, fmt.Errorf("%w: compression %v has no block size", ErrUnsupportedFormat, compression)
	}
}

// DecodeDXT decodes a DXT1 or DXT3 payload to canonical tightly-packed
// RGBA. Decoding is delegated entirely to github.com/mauserzjeh/dxt, which
// already produces row-major R,G,B,A bytes — no channel-order conversion
// is needed at this boundary.
func DecodeDXT(compression Compression, width, height uint32, data []byte) ([]byte, error) {
	want, err := CompressedSize(width, height, compression)
	if err != nil {
		return nil, err
	}
	if len(data) < want {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, ErrWrongPayloadSize)
	}
	var rgba []byte
	switch compression {
	case CompressionDXT1:
		rgba, err = mdxt.DecodeDXT1(data, uint(width), uint(height))
	case CompressionDXT3:
		rgba, err = mdxt.DecodeDXT3(data, uint(width), uint(height))
	default:
		return nil, fmt.Errorf("%w: compression %v is not block-compressed", ErrUnsupportedFormat, compression)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return rgba, nil
}

// rgbaBlock is the 16 texels of a 4×4 block, gathered with edge-clamping
// for textures whose dimensions are not multiples of 4.
type rgbaBlock [16][4]byte

func gatherBlock(rgba []byte, width, height, bx, by uint32) rgbaBlock {
	var block rgbaBlock
	i := 0
	for dy := uint32(0); dy < 4; dy++ {
		y := by + dy
		if y >= height {
			y = height - 1
		}
		for dx := uint32(0); dx < 4; dx++ {
			x := bx + dx
			if x >= width {
				x = width - 1
			}
			off := (y*width + x) * 4
			copy(block[i][:], rgba[off:off+4])
			i++
		}
	}
	return block
}

type vec3 [3]float64

func dot3(a, b vec3) float64      { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }
func add3(a, b vec3) vec3         { return vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func scale3(a vec3, s float64) vec3 { return vec3{a[0] * s, a[1] * s, a[2] * s} }

func normalize3(v vec3) vec3 {
	n := math.Sqrt(dot3(v, v))
	if n == 0 {
		return vec3{}
	}
	return vec3{v[0] / n, v[1] / n, v[2] / n}
}

// principalAxis estimates the dominant eigenvector of the block's 3×3
// color covariance matrix by power iteration, the same technique used to
// find cluster-fit endpoints for a DXT1 color block.
func principalAxis(block rgbaBlock) vec3 {
	var avg vec3
	for _, p := range block {
		avg[0] += float64(p[0])
		avg[1] += float64(p[1])
		avg[2] += float64(p[2])
	}
	avg = scale3(avg, 1.0/16.0)

	var s [3][3]float64
	for _, p := range block {
		r := float64(p[0]) - avg[0]
		g := float64(p[1]) - avg[1]
		b := float64(p[2]) - avg[2]
		s[0][0] += r * r
		s[0][1] += r * g
		s[0][2] += r * b
		s[1][1] += g * g
		s[1][2] += g * b
		s[2][2] += b * b
	}
	s[1][0], s[2][0], s[2][1] = s[0][1], s[0][2], s[1][2]

	v := normalize3(vec3{1, 1, 1})
	for i := 0; i < 8; i++ {
		var next vec3
		next[0] = s[0][0]*v[0] + s[0][1]*v[1] + s[0][2]*v[2]
		next[1] = s[1][0]*v[0] + s[1][1]*v[1] + s[1][2]*v[2]
		next[2] = s[2][0]*v[0] + s[2][1]*v[1] + s[2][2]*v[2]
		v = normalize3(next)
	}
	return v
}

func rgbTo565(r, g, b float64) uint16 {
	fr := math.Round(clamp(r, 0, 255))
	fg := math.Round(clamp(g, 0, 255))
	fb := math.Round(clamp(b, 0, 255))
	return uint16(uint32(fr)>>3<<11 | uint32(fg)>>2<<5 | uint32(fb)>>3)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func decode565(v uint16) [3]uint8 {
	return [3]uint8{
		uint8(expand5(uint16((v>>11)&0x1F))),
		uint8(expand6(uint16((v>>5)&0x3F))),
		uint8(expand5(uint16(v & 0x1F))),
	}
}

// clusterFitEndpoints projects the block onto its principal axis and uses
// the extreme projections as the 565 endpoint colors (cluster-fit, used
// when quality >= 0.5).
func clusterFitEndpoints(block rgbaBlock) (c0, c1 uint16) {
	var avg vec3
	for _, p := range block {
		avg[0] += float64(p[0])
		avg[1] += float64(p[1])
		avg[2] += float64(p[2])
	}
	avg = scale3(avg, 1.0/16.0)

	axis := principalAxis(block)
	minProj, maxProj := math.MaxFloat64, -math.MaxFloat64
	for _, p := range block {
		proj := dot3(vec3{float64(p[0]), float64(p[1]), float64(p[2])}, axis)
		if proj < minProj {
			minProj = proj
		}
		if proj > maxProj {
			maxProj = proj
		}
	}
	avgProj := dot3(avg, axis)
	end0 := add3(avg, scale3(axis, maxProj-avgProj))
	end1 := add3(avg, scale3(axis, minProj-avgProj))
	return rgbTo565(end0[0], end0[1], end0[2]), rgbTo565(end1[0], end1[1], end1[2])
}

// rangeFitEndpoints picks endpoints from the block's per-channel bounding
// box (range-fit, used when quality < 0.5 — cheaper than cluster-fit, at
// some cost to compressed quality).
func rangeFitEndpoints(block rgbaBlock) (c0, c1 uint16) {
	minC := [3]float64{255, 255, 255}
	maxC := [3]float64{0, 0, 0}
	for _, p := range block {
		for c := 0; c < 3; c++ {
			v := float64(p[c])
			if v < minC[c] {
				minC[c] = v
			}
			if v > maxC[c] {
				maxC[c] = v
			}
		}
	}
	return rgbTo565(maxC[0], maxC[1], maxC[2]), rgbTo565(minC[0], minC[1], minC[2])
}

// encodeColorBlock builds the 8-byte DXT1-style color portion shared by
// both DXT1 and DXT3. hasTransparent selects the 3-color-plus-transparent
// palette mode used by DXT1 when the block has any transparent texel.
func encodeColorBlock(block rgbaBlock, quality float64, hasTransparent bool) []byte {
	var c0, c1 uint16
	if quality >= 0.5 {
		c0, c1 = clusterFitEndpoints(block)
	} else {
		c0, c1 = rangeFitEndpoints(block)
	}

	if hasTransparent {
		if c0 > c1 {
			c0, c1 = c1, c0
		}
	} else if c0 < c1 {
		c0, c1 = c1, c0
	}

	col0 := decode565(c0)
	col1 := decode565(c1)

	var palette [4][3]uint16
	palette[0] = [3]uint16{uint16(col0[0]), uint16(col0[1]), uint16(col0[2])}
	palette[1] = [3]uint16{uint16(col1[0]), uint16(col1[1]), uint16(col1[2])}
	if hasTransparent {
		for i := 0; i < 3; i++ {
			palette[2][i] = (palette[0][i] + palette[1][i] + 1) / 2
		}
		// palette[3] is transparent; color bits are irrelevant.
	} else {
		for i := 0; i < 3; i++ {
			palette[2][i] = (2*palette[0][i] + palette[1][i] + 1) / 3
			palette[3][i] = (palette[0][i] + 2*palette[1][i] + 1) / 3
		}
	}

	var idx [16]uint8
	for i, p := range block {
		if hasTransparent && p[3] < 128 {
			idx[i] = 3
			continue
		}
		best := uint8(0)
		bestDist := uint32(1) << 31
		limit := 4
		if hasTransparent {
			limit = 3
		}
		for j := 0; j < limit; j++ {
			dr := int(p[0]) - int(palette[j][0])
			dg := int(p[1]) - int(palette[j][1])
			db := int(p[2]) - int(palette[j][2])
			d := uint32(dr*dr + dg*dg + db*db)
			if d < bestDist {
				bestDist = d
				best = uint8(j)
			}
		}
		idx[i] = best
	}

	var packed uint32
	for i := 0; i < 16; i++ {
		packed |= uint32(idx[i]&0x3) << uint(2*i)
	}

	out := make([]byte, 8)
	out[0], out[1] = byte(c0), byte(c0>>8)
	out[2], out[3] = byte(c1), byte(c1>>8)
	out[4] = byte(packed)
	out[5] = byte(packed >> 8)
	out[6] = byte(packed >> 16)
	out[7] = byte(packed >> 24)
	return out
}

// EncodeDXT1 compresses canonical RGBA into a DXT1 payload. Blocks with
// any texel whose alpha is below 128 use the 3-color-plus-transparent
// palette mode; all-opaque blocks use the full 4-color mode.
func EncodeDXT1(rgba []byte, width, height uint32, quality float64) ([]byte, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, ErrBadDimensions)
	}
	if len(rgba) < int(width)*int(height)*4 {
		return nil, fmt.Errorf("%w: %v", ErrCompressorFailed, ErrWrongPayloadSize)
	}
	blocksX, blocksY := blockCounts(width, height)
	out := make([]byte, 0, int(blocksX)*int(blocksY)*8)
	for by := uint32(0); by < blocksY*4; by += 4 {
		for bx := uint32(0); bx < blocksX*4; bx += 4 {
			block := gatherBlock(rgba, width, height, bx, by)
			hasTransparent := false
			for _, p := range block {
				if p[3] < 128 {
					hasTransparent = true
					break
				}
			}
			out = append(out, encodeColorBlock(block, quality, hasTransparent)...)
		}
	}
	return out, nil
}

// EncodeDXT3 compresses canonical RGBA into a DXT3 payload: one 8-byte
// explicit 4-bit alpha plane per block (each alpha truncated to its high
// nibble, then expanded back with a<<4|a on decode), followed by an
// always-opaque DXT1-style 8-byte color block.
func EncodeDXT3(rgba []byte, width, height uint32, quality float64) ([]byte, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, ErrBadDimensions)
	}
	if len(rgba) < int(width)*int(height)*4 {
		return nil, fmt.Errorf("%w: %v", ErrCompressorFailed, ErrWrongPayloadSize)
	}
	blocksX, blocksY := blockCounts(width, height)
	out := make([]byte, 0, int(blocksX)*int(blocksY)*16)
	for by := uint32(0); by < blocksY*4; by += 4 {
		for bx := uint32(0); bx < blocksX*4; bx += 4 {
			block := gatherBlock(rgba, width, height, bx, by)

			var alphaBytes [8]byte
			for i := 0; i < 16; i += 2 {
				lo := block[i][3] >> 4
				hi := block[i+1][3] >> 4
				alphaBytes[i/2] = lo | hi<<4
			}
			out = append(out, alphaBytes[:]...)
			out = append(out, encodeColorBlock(block, quality, false)...)
		}
	}
	return out, nil
}
