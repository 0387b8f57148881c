package aseimg

import (
	"bytes"
	"image"
	"image/color"
	"io"

	"github.com/retroblast-engine/ase"
)

// Decode decodes an Aseprite file from r and returns its first frame
// flattened. A sprite without frames decodes to a transparent canvas.
func Decode(r io.Reader) (image.Image, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, &ase.IOError{Op: "read", Err: err}
		}
		rs = bytes.NewReader(data)
	}

	s, err := ase.Decode(rs)
	if err != nil {
		return nil, err
	}
	if len(s.Frames) == 0 {
		return image.NewNRGBA(s.Bounds()), nil
	}
	return Frame(s, 0)
}

// DecodeConfig returns the color model and canvas size of an Aseprite file
// after reading only its header.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := ase.DecodeHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(h.Width),
		Height:     int(h.Height),
	}, nil
}

func init() {
	image.RegisterFormat("aseprite", "????\xE0\xA5", Decode, DecodeConfig)
}
