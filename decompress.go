package ase

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// maxDeflateRatio bounds how much a deflate stream can expand its input.
const maxDeflateRatio = 1032

// inflate decompresses a zlib stream holding a cel's pixels. want is the exact
// size the pixel buffer must have once decompressed. At most want+1 bytes are
// inflated, so SizeMismatchError.Got is capped there.
func inflate(data []byte, want int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInflate, err)
	}
	defer zr.Close()

	out := bytes.NewBuffer(make([]byte, 0, min(want, len(data)*maxDeflateRatio)))
	if _, err := io.Copy(out, io.LimitReader(zr, int64(want)+1)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInflate, err)
	}

	if out.Len() != want {
		return nil, &SizeMismatchError{Want: want, Got: out.Len()}
	}
	return out.Bytes(), nil
}
