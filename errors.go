package ase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMagicNumber      = errors.New("ase: root magic number mismatch")
	ErrInvalidFrameMagicNumber = errors.New("ase: frame magic number mismatch")
	ErrInvalidColorDepth       = errors.New("ase: invalid color depth")
	ErrInvalidBlendMode        = errors.New("ase: invalid blend mode")
	ErrInvalidLayerType        = errors.New("ase: invalid layer type")
	ErrInvalidCelType          = errors.New("ase: invalid cel type")
	ErrInvalidLoopDir          = errors.New("ase: invalid loop direction")
	ErrInvalidChunkType        = errors.New("ase: unknown chunk type")
	ErrInvalidChunkSize        = errors.New("ase: invalid chunk size")
	ErrInvalidUTF8             = errors.New("ase: string is not valid UTF-8")
	ErrInflate                 = errors.New("ase: zlib inflate failed")
	ErrSizeMismatch            = errors.New("ase: decompressed size mismatch")
	ErrPaletteIndex            = errors.New("ase: palette index out of range")
	ErrOrphanUserData          = errors.New("ase: user data has nothing to attach to")

	// ErrUnsupported marks the format features this package refuses to
	// decode: tilemap layers, tilemap cels, tilesets and user data properties.
	ErrUnsupported = errors.New("ase: unsupported feature")
)

// ValueError reports an unexpected raw value read from the file. Err is one
// of the ErrInvalid* sentinels.
type ValueError struct {
	Err   error
	Value uint32
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%v: 0x%04X", e.Err, e.Value)
}

func (e *ValueError) Unwrap() error { return e.Err }

// IOError wraps a failure of the underlying reader, including truncated input.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("ase: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// SizeMismatchError is returned when a cel's pixel buffer does not have the
// size implied by its dimensions and the sprite's format.
type SizeMismatchError struct {
	Want, Got int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("%v: expected %d bytes, got %d", ErrSizeMismatch, e.Want, e.Got)
}

func (e *SizeMismatchError) Is(target error) bool { return target == ErrSizeMismatch }

func unsupported(feature string) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, feature)
}
