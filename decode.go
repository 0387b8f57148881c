package ase

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"io"
	"os"
)

// userDataTarget is the entity the next user data chunk belongs to. The file
// format attaches a user data chunk to the data-bearing chunk before it.
type userDataTarget int

const (
	targetSprite userDataTarget = iota
	targetLayer
	targetCel
	targetTag
	targetSlice
)

var (
	paletteDefault    = color.NRGBA{A: 0xFF}
	oldPaletteDefault = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

type decoder struct {
	r            *reader
	header       Header
	format       Format
	opacityValid bool

	target userDataTarget
	// nextTag counts the tag user data chunks seen so far. Tags are written
	// in one chunk and followed by one user data chunk per tag, so unlike
	// layers, cels and slices they cannot use "the last one appended".
	nextTag int

	palette       []color.NRGBA
	oldPalette    [256]color.NRGBA
	sawOldPalette bool

	layers   []Layer
	tags     []Tag
	slices   []Slice
	frames   []Frame
	cels     []Cel
	userData *UserData
}

// DecodeFile reads the whole file at path into memory and decodes it.
func DecodeFile(path string) (*Sprite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "open", Err: err}
	}
	return Decode(bytes.NewReader(data))
}

// Decode parses an Aseprite file from rs. Any structural problem aborts the
// whole parse; no partially decoded sprite is returned.
func Decode(rs io.ReadSeeker) (*Sprite, error) {
	d := &decoder{r: newReader(rs)}
	for i := range d.oldPalette {
		d.oldPalette[i] = oldPaletteDefault
	}
	if err := d.decode(); err != nil {
		return nil, err
	}
	return d.sprite(), nil
}

// DecodeHeader reads and validates the 128 byte file header only.
func DecodeHeader(r io.Reader) (Header, error) {
	var h Header
	if err := readHeader(r, &h); err != nil {
		return Header{}, err
	}
	if _, err := h.format(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// readHeader checks the magic number as soon as its bytes are in, so a short
// file of another type reports ErrInvalidMagicNumber rather than an I/O error.
func readHeader(r io.Reader, h *Header) error {
	var prefix [6]byte
	if err := readRecord(r, &prefix, "read header"); err != nil {
		return err
	}
	if magic := binary.LittleEndian.Uint16(prefix[4:]); magic != MagicNumber {
		return &ValueError{Err: ErrInvalidMagicNumber, Value: uint32(magic)}
	}
	return readRecord(io.MultiReader(bytes.NewReader(prefix[:]), r), h, "read header")
}

func (d *decoder) decode() error {
	if err := readHeader(d.r.rs, &d.header); err != nil {
		return err
	}
	format, err := d.header.format()
	if err != nil {
		return err
	}
	d.format = format
	d.opacityValid = d.header.IsLayerOpacityValid()

	d.frames = make([]Frame, 0, d.header.FrameCount)
	for range int(d.header.FrameCount) {
		if err := d.decodeFrame(); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) decodeFrame() error {
	var fh FrameHeader
	if err := d.r.record(&fh, "read frame header"); err != nil {
		return err
	}
	if fh.MagicNumber != MagicNumberFrame {
		return &ValueError{Err: ErrInvalidFrameMagicNumber, Value: uint32(fh.MagicNumber)}
	}

	d.cels = nil
	for range fh.NumberOfChunks() {
		if err := d.decodeChunk(); err != nil {
			return err
		}
	}

	d.frames = append(d.frames, Frame{Duration: fh.FrameDuration, Cels: d.cels})
	return nil
}

func (d *decoder) decodeChunk() error {
	start, err := d.r.pos()
	if err != nil {
		return err
	}
	size, err := d.r.dword()
	if err != nil {
		return err
	}
	if size < chunkHeaderSize {
		return &ValueError{Err: ErrInvalidChunkSize, Value: size}
	}
	end := start + int64(size)

	raw, err := d.r.word()
	if err != nil {
		return err
	}
	typ := ChunkType(raw)

	switch typ {
	case ChunkPalette:
		err = d.parsePalette()
	case ChunkOldPalette4, ChunkOldPalette11:
		if len(d.palette) == 0 {
			err = d.parseOldPalette()
		}
	case ChunkTags:
		err = d.parseTags()
	case ChunkLayer:
		err = d.parseLayer()
	case ChunkUserData:
		err = d.parseUserData()
	case ChunkCel:
		err = d.parseCel(end)
	case ChunkSlice:
		err = d.parseSlice()
	case ChunkTileset:
		err = unsupported("tilesets")
	case ChunkCelExtra, ChunkColorProfile, ChunkExternalFiles, ChunkMask, ChunkPath:
		// Known but not needed.
	default:
		err = &ValueError{Err: ErrInvalidChunkType, Value: uint32(raw)}
	}
	if err != nil {
		return err
	}

	// Chunks may carry fields newer than this decoder; always resume at the
	// declared end.
	return d.r.seekTo(end)
}

func (d *decoder) sprite() *Sprite {
	var palette color.Palette
	switch {
	case len(d.palette) > 0:
		palette = make(color.Palette, len(d.palette))
		for i, c := range d.palette {
			palette[i] = c
		}
	case d.sawOldPalette:
		palette = make(color.Palette, len(d.oldPalette))
		for i, c := range d.oldPalette {
			palette[i] = c
		}
	}

	return &Sprite{
		Width:    d.header.Width,
		Height:   d.header.Height,
		Format:   d.format,
		Header:   d.header,
		Layers:   d.layers,
		Frames:   d.frames,
		Tags:     d.tags,
		Slices:   d.slices,
		Palette:  palette,
		UserData: d.userData,
	}
}
