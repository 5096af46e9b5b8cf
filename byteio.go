package txd

import (
	"encoding/binary"
	"fmt"
	"io"
)

// SwapUint16 reverses the byte order of v.
func SwapUint16(v uint16) uint16 {
	return (v >> 8) | (v << 8)
}

// SwapUint32 reverses the byte order of v.
func SwapUint32(v uint32) uint32 {
	return ((v & 0xFF000000) >> 24) |
		((v & 0x00FF0000) >> 8) |
		((v & 0x0000FF00) << 8) |
		((v & 0x000000FF) << 24)
}

// ReadUint16LE reads a little-endian uint16 from r.
func ReadUint16LE(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// ReadUint32LE reads a little-endian uint32 from r.
func ReadUint32LE(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteUint16LE writes v to w in little-endian order.
func WriteUint16LE(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	n, err := w.Write(buf[:])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if n != len(buf) {
		return fmt.Errorf("%w: %v", ErrIO, ErrShortWrite)
	}
	return nil
}

// WriteUint32LE writes v to w in little-endian order.
func WriteUint32LE(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	n, err := w.Write(buf[:])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if n != len(buf) {
		return fmt.Errorf("%w: %v", ErrIO, ErrShortWrite)
	}
	return nil
}

// readFixedName reads a null-terminated, null-padded ASCII name from a
// fixed-size n-byte slot.
func readFixedName(r io.Reader, n int) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	end := 0
	for end < len(buf) && buf[end] != 0 {
		end++
	}
	return string(buf[:end]), nil
}

// writeFixedName writes name null-padded into a fixed n-byte slot. The
// name must already satisfy the ≤n-1 byte invariant; callers validate
// before calling this.
func writeFixedName(w io.Writer, name string, n int) error {
	buf := make([]byte, n)
	copy(buf, name)
	nn, err := w.Write(buf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if nn != n {
		return fmt.Errorf("%w: %v", ErrIO, ErrShortWrite)
	}
	return nil
}
