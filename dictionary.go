package txd

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// TextureDictionary is an ordered collection of named textures plus the
// outer library_version word their TEXDICTIONARY chunk was stamped with.
// Lookup by name is case-insensitive (ASCII fold), matching the game's own
// resource binding.
type TextureDictionary struct {
	LibraryVersion uint32
	GameVersion    GameVersion

	textures  []Texture
	nameIndex map[string]int // lowercased name -> index into textures
}

// NewTextureDictionary returns an empty dictionary stamped with the
// default library version.
func NewTextureDictionary() *TextureDictionary {
	return &TextureDictionary{
		LibraryVersion: defaultLibraryVersion,
		GameVersion:    GameUnknown,
		nameIndex:      make(map[string]int),
	}
}

func foldName(name string) string {
	b := []byte(name)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func (d *TextureDictionary) rebuildIndex() {
	d.nameIndex = make(map[string]int, len(d.textures))
	for i, t := range d.textures {
		d.nameIndex[foldName(t.Name)] = i
	}
}

// Len returns the number of textures in the dictionary.
func (d *TextureDictionary) Len() int {
	return len(d.textures)
}

// Textures returns the dictionary's textures in on-disk order. The
// returned slice aliases the dictionary's storage; renaming a texture
// through it leaves the name index stale.
func (d *TextureDictionary) Textures() []Texture {
	return d.textures
}

// At returns the texture at position i.
func (d *TextureDictionary) At(i int) *Texture {
	return &d.textures[i]
}

// Find returns the texture named name (case-insensitive) and true, or
// false if no texture has that name.
func (d *TextureDictionary) Find(name string) (*Texture, bool) {
	i, ok := d.nameIndex[foldName(name)]
	if !ok {
		return nil, false
	}
	return &d.textures[i], true
}

// Add appends t to the dictionary. It fails with ErrDuplicateName if a
// texture with the same name (case-insensitive) already exists.
func (d *TextureDictionary) Add(t Texture) error {
	key := foldName(t.Name)
	if _, exists := d.nameIndex[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, t.Name)
	}
	if d.nameIndex == nil {
		d.nameIndex = make(map[string]int)
	}
	d.nameIndex[key] = len(d.textures)
	d.textures = append(d.textures, t)
	return nil
}

// RemoveAt deletes the texture at position i and rebuilds the name index.
func (d *TextureDictionary) RemoveAt(i int) error {
	if i < 0 || i >= len(d.textures) {
		return fmt.Errorf("%w: index %d out of range", ErrInvalidStructure, i)
	}
	d.textures = append(d.textures[:i], d.textures[i+1:]...)
	d.rebuildIndex()
	return nil
}

// RemoveName deletes the texture named name (case-insensitive). It
// reports whether a texture was found and removed.
func (d *TextureDictionary) RemoveName(name string) bool {
	i, ok := d.nameIndex[foldName(name)]
	if !ok {
		return false
	}
	d.textures = append(d.textures[:i], d.textures[i+1:]...)
	d.rebuildIndex()
	return true
}

// Clear empties the dictionary, keeping its version stamps.
func (d *TextureDictionary) Clear() {
	d.textures = nil
	d.nameIndex = make(map[string]int)
}

// LoadTextureDictionary reads a TEXDICTIONARY chunk and every texture it
// contains. Unknown or unreadable children after the STRUCT are skipped
// best-effort rather than aborting the whole load, mirroring the original
// loader's tolerance for trailing junk.
func LoadTextureDictionary(r io.ReadSeeker) (*TextureDictionary, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	if header.Type != ChunkTexDictionary {
		return nil, fmt.Errorf("%w: outer chunk is %v, not TEXDICTIONARY", ErrNotADictionary, header.Type)
	}

	it, err := NewChildIterator(r, header.Length)
	if err != nil {
		return nil, err
	}

	d := &TextureDictionary{
		LibraryVersion: header.LibraryVersion,
		GameVersion:    detectGameVersion(header.LibraryVersion),
		nameIndex:      make(map[string]int),
	}

	structChild, ok, err := it.Next()
	if err != nil {
		return nil, err
	}
	if !ok || structChild.Type != ChunkStruct {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, ErrNotAStruct)
	}
	if structChild.Length < 4 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, ErrStructTooShort)
	}
	textureCount, err := ReadUint16LE(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	// device_id: not interpreted, kept only to advance the stream.
	if _, err := ReadUint16LE(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	d.textures = make([]Texture, 0, textureCount)
	if err := it.Skip(ChunkHeader{Length: structChild.Length - 4}); err != nil {
		return nil, err
	}

	for {
		child, ok, err := it.Next()
		if err != nil {
			// Best-effort: a corrupt trailing child doesn't invalidate
			// textures already parsed.
			break
		}
		if !ok {
			break
		}
		switch child.Type {
		case ChunkTextureNative:
			payloadStart, err := r.Seek(0, io.SeekCurrent)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrIO, err)
			}
			if _, err := r.Seek(payloadStart-int64(chunkHeaderSize), io.SeekStart); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrIO, err)
			}
			tex, err := ReadNativeTexture(r)
			if err != nil {
				if _, err := r.Seek(payloadStart+int64(child.Length), io.SeekStart); err != nil {
					return nil, fmt.Errorf("%w: %v", ErrIO, err)
				}
				continue
			}
			key := foldName(tex.Name)
			if _, exists := d.nameIndex[key]; exists {
				key = fmt.Sprintf("%s#%d", key, len(d.textures))
			}
			d.nameIndex[key] = len(d.textures)
			d.textures = append(d.textures, *tex)
		default:
			if err := it.Skip(child); err != nil {
				return nil, err
			}
		}
	}

	if err := it.SeekToEnd(); err != nil {
		return nil, err
	}
	return d, nil
}

// Load opens path and reads a single TEXDICTIONARY from it.
func Load(path string) (*TextureDictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close()
	return LoadTextureDictionary(f)
}

// SaveTextureDictionary writes d as a complete TEXDICTIONARY chunk.
func SaveTextureDictionary(w io.Writer, d *TextureDictionary) error {
	version := d.LibraryVersion
	if version == 0 {
		version = defaultLibraryVersion
	}

	var structBody bytes.Buffer
	if err := WriteUint16LE(&structBody, uint16(len(d.textures))); err != nil {
		return err
	}
	if err := WriteUint16LE(&structBody, 0); err != nil { // device id, unused
		return err
	}

	var body bytes.Buffer
	structHeader := ChunkHeader{Type: ChunkStruct, Length: uint32(structBody.Len()), LibraryVersion: version}
	if err := WriteHeader(&body, structHeader); err != nil {
		return err
	}
	if _, err := body.Write(structBody.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	for i := range d.textures {
		if err := WriteNativeTexture(&body, &d.textures[i]); err != nil {
			return fmt.Errorf("texture %d (%q): %w", i, d.textures[i].Name, err)
		}
	}

	extHeader := ChunkHeader{Type: ChunkExtension, Length: 0, LibraryVersion: version}
	if err := WriteHeader(&body, extHeader); err != nil {
		return err
	}

	outerHeader := ChunkHeader{Type: ChunkTexDictionary, Length: uint32(body.Len()), LibraryVersion: version}
	if err := WriteHeader(w, outerHeader); err != nil {
		return err
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// Save writes d to path as a complete TEXDICTIONARY chunk, creating or
// truncating the file.
func Save(path string, d *TextureDictionary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close()
	if err := SaveTextureDictionary(f, d); err != nil {
		return err
	}
	return f.Close()
}
