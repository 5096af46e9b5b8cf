package txd

import "github.com/cespare/xxhash/v2"

// ContentHash returns a fast, non-cryptographic fingerprint of data.
// DuplicateGroups applies it to each texture's decoded level-0 canonical
// RGBA, so textures with identical pixels hash alike.
func ContentHash(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// DuplicateGroups partitions the dictionary's textures into groups that
// decode to identical canonical RGBA at level 0, skipping textures with no
// level-0 data or that fail to decode. This catches visually identical
// textures stored under different raster formats or compression, not just
// byte-identical on-disk payloads. Groups of size 1 (no duplicate) are
// omitted. The order of groups and of names within a group follows first
// occurrence in the dictionary.
func (d *TextureDictionary) DuplicateGroups() [][]string {
	order := make([]uint64, 0)
	groups := make(map[uint64][]string)

	for i := range d.textures {
		t := &d.textures[i]
		if len(t.Mipmaps) == 0 || len(t.Mipmaps[0].Bytes) == 0 {
			continue
		}
		p, err := ToPresented(t)
		if err != nil {
			continue
		}
		h := ContentHash(p.RGBA)
		if _, seen := groups[h]; !seen {
			order = append(order, h)
		}
		groups[h] = append(groups[h], t.Name)
	}

	result := make([][]string, 0, len(order))
	for _, h := range order {
		if len(groups[h]) > 1 {
			result = append(result, groups[h])
		}
	}
	return result
}
