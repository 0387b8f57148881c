package ase

import (
	"bytes"
	"encoding/binary"
	"image/color"

	"github.com/klauspost/compress/zlib"
)

// ============================================================================
// In-memory ASE file builder used by the tests
// ============================================================================

// le accumulates little-endian fields.
type le struct{ buf bytes.Buffer }

func (l *le) u8(v uint8) *le   { l.buf.WriteByte(v); return l }
func (l *le) u16(v uint16) *le { binary.Write(&l.buf, binary.LittleEndian, v); return l }
func (l *le) i16(v int16) *le  { binary.Write(&l.buf, binary.LittleEndian, v); return l }
func (l *le) u32(v uint32) *le { binary.Write(&l.buf, binary.LittleEndian, v); return l }
func (l *le) i32(v int32) *le  { binary.Write(&l.buf, binary.LittleEndian, v); return l }
func (l *le) raw(b []byte) *le { l.buf.Write(b); return l }
func (l *le) zeros(n int) *le  { l.buf.Write(make([]byte, n)); return l }
func (l *le) str(s string) *le { l.u16(uint16(len(s))); l.buf.WriteString(s); return l }
func (l *le) bytes() []byte    { return l.buf.Bytes() }
func (l *le) rgba(c color.NRGBA) *le {
	return l.u8(c.R).u8(c.G).u8(c.B).u8(c.A)
}

type testChunk struct {
	typ  ChunkType
	body []byte
}

type testFrame struct {
	duration uint16
	chunks   []testChunk
	// oldCountOnly writes the chunk count in the legacy 16-bit field and
	// leaves the 32-bit field zero.
	oldCountOnly bool
}

type testFile struct {
	header Header
	frames []*testFrame
	// frameCount overrides the header frame count when non-zero.
	frameCount uint16
}

func newTestFile(depth WORD, w, h WORD) *testFile {
	return &testFile{header: Header{
		MagicNumberHeader: MagicNumber,
		Width:             w,
		Height:            h,
		ColorDepth:        depth,
		Flags:             1,
	}}
}

func (f *testFile) frame(duration uint16) *testFrame {
	fr := &testFrame{duration: duration}
	f.frames = append(f.frames, fr)
	return fr
}

func (fr *testFrame) add(typ ChunkType, body []byte) *testFrame {
	fr.chunks = append(fr.chunks, testChunk{typ: typ, body: body})
	return fr
}

func (f *testFile) bytes() []byte {
	var frames bytes.Buffer
	for _, fr := range f.frames {
		var chunks bytes.Buffer
		for _, c := range fr.chunks {
			binary.Write(&chunks, binary.LittleEndian, uint32(len(c.body)+chunkHeaderSize))
			binary.Write(&chunks, binary.LittleEndian, uint16(c.typ))
			chunks.Write(c.body)
		}
		fh := FrameHeader{
			BytesInFrame:  uint32(frameHeaderSize + chunks.Len()),
			MagicNumber:   MagicNumberFrame,
			FrameDuration: fr.duration,
		}
		if fr.oldCountOnly {
			fh.OldChunkCount = uint16(len(fr.chunks))
		} else {
			fh.OldChunkCount = 0xFFFF
			fh.NewChunkCount = uint32(len(fr.chunks))
		}
		binary.Write(&frames, binary.LittleEndian, fh)
		frames.Write(chunks.Bytes())
	}

	h := f.header
	h.FrameCount = uint16(len(f.frames))
	if f.frameCount != 0 {
		h.FrameCount = f.frameCount
	}
	h.FileSize = uint32(headerSize + frames.Len())

	var out bytes.Buffer
	binary.Write(&out, binary.LittleEndian, h)
	out.Write(frames.Bytes())
	return out.Bytes()
}

// ============================================================================
// Chunk bodies
// ============================================================================

func layerChunk(flags LayerFlags, typ WORD, level WORD, blend BlendMode, opacity uint8, name string) []byte {
	var l le
	l.u16(uint16(flags)).u16(typ).u16(level).u16(0).u16(0).u16(uint16(blend)).u8(opacity).zeros(3).str(name)
	return l.bytes()
}

func celHeader(layer WORD, x, y int16, opacity uint8, typ CelDataType, z int16) *le {
	l := &le{}
	l.u16(layer).i16(x).i16(y).u8(opacity).u16(uint16(typ)).i16(z).zeros(5)
	return l
}

func zlibBytes(data []byte) []byte {
	var buf bytes.Buffer
	writer := zlib.NewWriter(&buf)
	writer.Write(data)
	writer.Close()
	return buf.Bytes()
}

func imageCelChunk(layer WORD, x, y int16, opacity uint8, w, h WORD, pix []byte) []byte {
	return celHeader(layer, x, y, opacity, CompressedImageData, 0).u16(w).u16(h).raw(zlibBytes(pix)).bytes()
}

func linkCelChunk(layer WORD, frame WORD) []byte {
	return celHeader(layer, 0, 0, 255, LinkedCelData, 0).u16(frame).bytes()
}

func userDataChunk(text *string, c *color.NRGBA) []byte {
	var flags uint32
	if text != nil {
		flags |= 1
	}
	if c != nil {
		flags |= 2
	}
	l := &le{}
	l.u32(flags)
	if text != nil {
		l.str(*text)
	}
	if c != nil {
		l.rgba(*c)
	}
	return l.bytes()
}

type testTag struct {
	from, to uint16
	dir      uint8
	repeat   uint16
	name     string
}

func tagsChunk(tags ...testTag) []byte {
	l := &le{}
	l.u16(uint16(len(tags))).zeros(8)
	for _, t := range tags {
		l.u16(t.from).u16(t.to).u8(t.dir).u16(t.repeat).zeros(10).str(t.name)
	}
	return l.bytes()
}

func paletteChunk(size uint32, first uint32, colors ...color.NRGBA) []byte {
	l := &le{}
	last := first + uint32(len(colors)) - 1
	l.u32(size).u32(first).u32(last).zeros(8)
	for _, c := range colors {
		l.u16(0).rgba(c)
	}
	return l.bytes()
}

type oldPacket struct {
	skip   uint8
	colors [][3]uint8
}

func oldPaletteChunk(packets ...oldPacket) []byte {
	l := &le{}
	l.u16(uint16(len(packets)))
	for _, p := range packets {
		l.u8(p.skip).u8(uint8(len(p.colors)))
		for _, c := range p.colors {
			l.u8(c[0]).u8(c[1]).u8(c[2])
		}
	}
	return l.bytes()
}

func ptr[T any](v T) *T { return &v }
