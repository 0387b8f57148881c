package ase

import "fmt"

// From https://github.com/aseprite/aseprite/blob/main/docs/ase-file-specs.md#references

type (
	BYTE  = uint8  // An 8-bit unsigned integer value
	WORD  = uint16 // A 16-bit unsigned integer value
	SHORT = int16  // A 16-bit signed integer value
	DWORD = uint32 // A 32-bit unsigned integer value
	LONG  = int32  // A 32-bit signed integer value
)

// Constants
const (
	// Magic number (0xA5E0)
	MagicNumber = 0xA5E0

	// Magic number (0xF1FA)
	MagicNumberFrame = 0xF1FA

	// Color depth (bits per pixel)
	ColorDepthRGBA      WORD = 32
	ColorDepthGrayscale WORD = 16
	ColorDepthIndexed   WORD = 8
)

const (
	headerSize      = 128
	frameHeaderSize = 16
	chunkHeaderSize = 6
)

// Header is the fixed 128 byte ASE file header.
type Header struct {
	FileSize          DWORD    // File size (4 bytes)
	MagicNumberHeader WORD     // Magic number (0xA5E0) (2 bytes)
	FrameCount        WORD     // Number of frames (2 bytes)
	Width             WORD     // Width in pixels (2 bytes)
	Height            WORD     // Height in pixels (2 bytes)
	ColorDepth        WORD     // Color depth (32 bpp = RGBA, 16 bpp = Grayscale, 8 bpp = Indexed) (2 bytes)
	Flags             DWORD    // Flags: 1 = Layer opacity has valid value (4 bytes)
	Speed             WORD     // DEPRECATED: use the frame duration field from each frame header (2 bytes)
	Reserved1         DWORD    // Reserved (set to 0) (4 bytes)
	Reserved2         DWORD    // Reserved (set to 0) (4 bytes)
	TransparentIdx    BYTE     // Palette entry which represents transparent color (only for Indexed sprites) (1 byte)
	IgnoreBytes       [3]BYTE  // Ignore these bytes (3 bytes)
	NumColors         WORD     // Number of colors (0 means 256 for old sprites format) (2 bytes)
	PixelWidth        BYTE     // Pixel width (pixel ratio is "pixel width/pixel height") (1 byte)
	PixelHeight       BYTE     // Pixel height (1 byte)
	GridX             SHORT    // X position of the grid (2 bytes)
	GridY             SHORT    // Y position of the grid (2 bytes)
	GridWidth         WORD     // Grid width (zero if there is no grid) (2 bytes)
	GridHeight        WORD     // Grid height (zero if there is no grid) (2 bytes)
	FutureUse         [84]BYTE // For future use (set to zero) (84 bytes)
}

// IsLayerOpacityValid reports whether the opacity bytes in the file are meaningful.
func (h Header) IsLayerOpacityValid() bool {
	return h.Flags&1 != 0
}

// GetColorDepthDescription returns a human readable name for the color depth.
func (h Header) GetColorDepthDescription() string {
	switch h.ColorDepth {
	case ColorDepthRGBA:
		return "RGBA"
	case ColorDepthGrayscale:
		return "Grayscale"
	case ColorDepthIndexed:
		return "Indexed"
	default:
		return "Unknown color depth"
	}
}

// GetNumColors returns the interpreted number of colors.
func (h Header) GetNumColors() uint16 {
	if h.NumColors == 0 {
		return 256
	}
	return h.NumColors
}

// GetPixelRatio returns the pixel ratio as "w:h".
func (h Header) GetPixelRatio() string {
	if h.PixelWidth == 0 || h.PixelHeight == 0 {
		return "1:1"
	}
	return fmt.Sprintf("%d:%d", h.PixelWidth, h.PixelHeight)
}

// GetGridSize returns the grid size, defaulting to 16x16.
func (h Header) GetGridSize() (uint16, uint16) {
	if h.GridWidth == 0 {
		return 16, 16
	}
	if h.GridHeight == 0 {
		return h.GridWidth, 16
	}
	return h.GridWidth, h.GridHeight
}

// format maps the header's color depth onto a pixel Format.
func (h Header) format() (Format, error) {
	switch h.ColorDepth {
	case ColorDepthRGBA:
		return Format{Mode: ColorModeRGBA}, nil
	case ColorDepthGrayscale:
		return Format{Mode: ColorModeGrayscale}, nil
	case ColorDepthIndexed:
		return Format{Mode: ColorModeIndexed, TransparentIndex: h.TransparentIdx}, nil
	}
	return Format{}, &ValueError{Err: ErrInvalidColorDepth, Value: uint32(h.ColorDepth)}
}

// FrameHeader represents the structure of a frame header (16 bytes)
type FrameHeader struct {
	BytesInFrame  DWORD   // Bytes in frame (4 bytes)
	MagicNumber   WORD    // Magic number (0xF1FA) (2 bytes)
	OldChunkCount WORD    // Old field which specifies the number of "chunks" in this frame (2 bytes)
	FrameDuration WORD    // Frame duration in milliseconds (2 bytes)
	Reserved      [2]BYTE // Reserved (set to 0) (2 bytes)
	NewChunkCount DWORD   // New field which specifies the number of "chunks" in this frame. If this is 0, use the OldChunkCount. (4 bytes)
}

// NumberOfChunks returns the number of chunks in the frame.
func (fh *FrameHeader) NumberOfChunks() uint32 {
	if fh.NewChunkCount == 0 {
		return uint32(fh.OldChunkCount)
	}
	return fh.NewChunkCount
}

// ChunkType identifies the payload of a chunk.
type ChunkType WORD

const (
	ChunkOldPalette4   ChunkType = 0x0004
	ChunkOldPalette11  ChunkType = 0x0011
	ChunkLayer         ChunkType = 0x2004
	ChunkCel           ChunkType = 0x2005
	ChunkCelExtra      ChunkType = 0x2006
	ChunkColorProfile  ChunkType = 0x2007
	ChunkExternalFiles ChunkType = 0x2008
	ChunkMask          ChunkType = 0x2016 // DEPRECATED
	ChunkPath          ChunkType = 0x2017 // Never used.
	ChunkTags          ChunkType = 0x2018
	ChunkPalette       ChunkType = 0x2019
	ChunkUserData      ChunkType = 0x2020
	ChunkSlice         ChunkType = 0x2022
	ChunkTileset       ChunkType = 0x2023
)

var chunkTypeNames = map[ChunkType]string{
	ChunkOldPalette4:   "OldPalette4",
	ChunkOldPalette11:  "OldPalette11",
	ChunkLayer:         "Layer",
	ChunkCel:           "Cel",
	ChunkCelExtra:      "CelExtra",
	ChunkColorProfile:  "ColorProfile",
	ChunkExternalFiles: "ExternalFiles",
	ChunkMask:          "Mask",
	ChunkPath:          "Path",
	ChunkTags:          "Tags",
	ChunkPalette:       "Palette",
	ChunkUserData:      "UserData",
	ChunkSlice:         "Slice",
	ChunkTileset:       "Tileset",
}

// IsKnown reports whether t is one of the chunk types defined by the format.
func (t ChunkType) IsKnown() bool {
	_, ok := chunkTypeNames[t]
	return ok
}

func (t ChunkType) String() string {
	if name, ok := chunkTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("0x%04X", uint16(t))
}
