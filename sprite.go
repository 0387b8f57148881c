package ase

import (
	"image"
	"image/color"
	"time"
)

// ColorMode is the pixel layout of every cel in a sprite.
type ColorMode uint8

const (
	ColorModeRGBA      ColorMode = iota // 4 bytes per pixel: R, G, B, A
	ColorModeGrayscale                  // 2 bytes per pixel: value, alpha
	ColorModeIndexed                    // 1 byte per pixel: palette index
)

func (m ColorMode) String() string {
	switch m {
	case ColorModeRGBA:
		return "RGBA"
	case ColorModeGrayscale:
		return "Grayscale"
	case ColorModeIndexed:
		return "Indexed"
	}
	return "Unknown"
}

// Format describes how a sprite's pixel data is laid out.
type Format struct {
	Mode ColorMode

	// TransparentIndex is the palette entry treated as transparent in
	// non-background layers. Only meaningful for ColorModeIndexed.
	TransparentIndex uint8
}

// BytesPerPixel returns how many bytes each pixel occupies in cel data.
func (f Format) BytesPerPixel() int {
	switch f.Mode {
	case ColorModeGrayscale:
		return 2
	case ColorModeIndexed:
		return 1
	}
	return 4
}

// UserData is free-form metadata attached to a sprite, layer, cel, tag or slice.
// Either field may be nil.
type UserData struct {
	Text  *string
	Color *color.NRGBA
}

// Frame is one step of the sprite's animation.
type Frame struct {
	Duration uint16 // milliseconds
	Cels     []Cel
}

// DurationTime returns the frame duration as a time.Duration.
func (f Frame) DurationTime() time.Duration {
	return time.Duration(f.Duration) * time.Millisecond
}

// Sprite is a decoded Aseprite file. Cels refer to layers and other frames by
// index; those indices are not validated.
type Sprite struct {
	Width, Height uint16
	Format        Format
	Layers        []Layer
	Frames        []Frame
	Tags          []Tag
	Slices        []Slice

	// Palette holds color.NRGBA entries; index is the palette slot.
	Palette  color.Palette
	UserData *UserData

	// Header is the raw file header, kept for tools that report on it.
	Header Header
}

// Bounds returns the canvas rectangle.
func (s *Sprite) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(s.Width), int(s.Height))
}

// Tag returns the first tag with the given name.
func (s *Sprite) Tag(name string) (*Tag, bool) {
	for i := range s.Tags {
		if s.Tags[i].Name == name {
			return &s.Tags[i], true
		}
	}
	return nil, false
}

// Slice returns the first slice with the given name.
func (s *Sprite) Slice(name string) (*Slice, bool) {
	for i := range s.Slices {
		if s.Slices[i].Name == name {
			return &s.Slices[i], true
		}
	}
	return nil, false
}

// LayerIndex returns the index of the first layer with the given name, or -1.
func (s *Sprite) LayerIndex(name string) int {
	for i := range s.Layers {
		if s.Layers[i].Name == name {
			return i
		}
	}
	return -1
}

// Cel returns the cel for layer in frame, if the frame has one.
func (s *Sprite) Cel(frame, layer int) (*Cel, bool) {
	if frame < 0 || frame >= len(s.Frames) {
		return nil, false
	}
	cels := s.Frames[frame].Cels
	for i := range cels {
		if cels[i].LayerIndex == layer {
			return &cels[i], true
		}
	}
	return nil, false
}

// ResolveCel follows linked cels starting at (frame, layer) until it reaches
// one holding an image, and returns that cel with its image.
func (s *Sprite) ResolveCel(frame, layer int) (*Cel, *Image, bool) {
	// A link chain can be no longer than the number of frames.
	for range len(s.Frames) + 1 {
		c, ok := s.Cel(frame, layer)
		if !ok {
			return nil, nil, false
		}
		switch d := c.Data.(type) {
		case *Image:
			return c, d, true
		case Link:
			frame = int(d.FrameIndex)
		default:
			return nil, nil, false
		}
	}
	return nil, nil, false
}
