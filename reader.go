package ase

import (
	"bytes"
	"encoding/binary"
	"io"
	"unicode/utf8"
)

// reader is a little-endian cursor over a seekable byte source.
type reader struct {
	rs  io.ReadSeeker
	buf [4]byte
}

func newReader(rs io.ReadSeeker) *reader {
	return &reader{rs: rs}
}

func (r *reader) fill(n int, op string) ([]byte, error) {
	b := r.buf[:n]
	if _, err := io.ReadFull(r.rs, b); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, &IOError{Op: op, Err: err}
	}
	return b, nil
}

func (r *reader) byte() (BYTE, error) {
	b, err := r.fill(1, "read byte")
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) word() (WORD, error) {
	b, err := r.fill(2, "read word")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) short() (SHORT, error) {
	v, err := r.word()
	return SHORT(v), err
}

func (r *reader) dword() (DWORD, error) {
	b, err := r.fill(4, "read dword")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) long() (LONG, error) {
	v, err := r.dword()
	return LONG(v), err
}

// rgba reads four bytes in R, G, B, A order.
func (r *reader) rgba() ([4]BYTE, error) {
	var c [4]BYTE
	b, err := r.fill(4, "read color")
	if err != nil {
		return c, err
	}
	copy(c[:], b)
	return c, nil
}

// point reads two consecutive LONGs.
func (r *reader) point() (x, y LONG, err error) {
	if x, err = r.long(); err != nil {
		return
	}
	y, err = r.long()
	return
}

// size reads two consecutive DWORDs.
func (r *reader) size() (w, h DWORD, err error) {
	if w, err = r.dword(); err != nil {
		return
	}
	h, err = r.dword()
	return
}

// bytes reads exactly n bytes into a new slice. The buffer grows with the
// data actually read, so a bogus length cannot force a large allocation.
func (r *reader) bytes(n int) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r.rs, int64(n)); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, &IOError{Op: "read bytes", Err: err}
	}
	return buf.Bytes(), nil
}

// string reads a WORD length prefix followed by that many UTF-8 bytes.
func (r *reader) string() (string, error) {
	n, err := r.word()
	if err != nil {
		return "", err
	}
	b, err := r.bytes(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

// record reads a fixed-size struct such as FrameHeader.
func (r *reader) record(v any, op string) error {
	return readRecord(r.rs, v, op)
}

func readRecord(r io.Reader, v any, op string) error {
	if err := binary.Read(r, binary.LittleEndian, v); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return &IOError{Op: op, Err: err}
	}
	return nil
}

func (r *reader) skip(n int64) error {
	if _, err := r.rs.Seek(n, io.SeekCurrent); err != nil {
		return &IOError{Op: "skip", Err: err}
	}
	return nil
}

func (r *reader) pos() (int64, error) {
	off, err := r.rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, &IOError{Op: "tell", Err: err}
	}
	return off, nil
}

func (r *reader) seekTo(off int64) error {
	if _, err := r.rs.Seek(off, io.SeekStart); err != nil {
		return &IOError{Op: "seek", Err: err}
	}
	return nil
}
