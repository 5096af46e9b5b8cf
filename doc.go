/*
Package txd reads, writes, and transcodes RenderWare texture dictionaries
(.txd), the chunked binary texture container used by GTA III, Vice City,
and San Andreas.

A dictionary packages named native textures, each with one or more mipmap
levels, in one of several pixel formats (16/24/32-bit direct, 4-bit or
8-bit palette-indexed, or DXT1/DXT3 block-compressed) targeted at a runtime
platform (D3D8, D3D9, PS2, Xbox, OpenGL). This package focuses on the D3D8
and D3D9 variants: structural round-trip for every platform, full pixel
decode/encode for D3D.

The package is single-threaded and synchronous: a Texture or
TextureDictionary is owned by exactly one caller at a time. Multiple
independent dictionaries may be used concurrently from different
goroutines without coordination.
*/
package txd
