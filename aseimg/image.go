// Package aseimg turns decoded Aseprite sprites into standard library images.
package aseimg

import (
	"cmp"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"runtime"
	"slices"

	"github.com/mandykoh/prism"

	"github.com/retroblast-engine/ase"
)

var (
	ErrNoImage      = errors.New("aseimg: cel has no image")
	ErrFrameIndex   = errors.New("aseimg: frame index out of range")
	ErrUnknownLayer = errors.New("aseimg: cel refers to a missing layer")
)

// CelImage returns the pixels of c placed at the cel's canvas position. Linked
// cels are followed to the cel that holds the image. The returned image shares
// its pixel buffer with the sprite for RGBA and Indexed sprites.
func CelImage(s *ase.Sprite, c *ase.Cel) (image.Image, error) {
	if link, ok := c.Data.(ase.Link); ok {
		resolved, _, ok := s.ResolveCel(int(link.FrameIndex), c.LayerIndex)
		if !ok {
			return nil, fmt.Errorf("%w: layer %d, link to frame %d", ErrNoImage, c.LayerIndex, link.FrameIndex)
		}
		c = resolved
	}
	img, ok := c.Data.(*ase.Image)
	if !ok {
		return nil, fmt.Errorf("%w: layer %d", ErrNoImage, c.LayerIndex)
	}

	x, y := int(c.X), int(c.Y)
	bounds := image.Rect(x, y, x+int(img.Width), y+int(img.Height))

	switch s.Format.Mode {
	case ase.ColorModeIndexed:
		background := c.LayerIndex >= 0 && c.LayerIndex < len(s.Layers) && s.Layers[c.LayerIndex].Background()
		return &image.Paletted{
			Pix:     img.Pix,
			Stride:  bounds.Dx(),
			Rect:    bounds,
			Palette: Palette(s, !background),
		}, nil
	case ase.ColorModeGrayscale:
		// 16 bpp grayscale+alpha -> NRGBA
		dst := image.NewNRGBA(bounds)
		for i := 0; i+1 < len(img.Pix); i += 2 {
			v, a := img.Pix[i], img.Pix[i+1]
			copy(dst.Pix[i*2:], []uint8{v, v, v, a})
		}
		return dst, nil
	default:
		return &image.NRGBA{
			Pix:    img.Pix,
			Stride: bounds.Dx() * 4,
			Rect:   bounds,
		}, nil
	}
}

// Palette returns the sprite palette padded to 256 entries so every index is
// addressable. Missing entries are transparent. With transparent set, the
// sprite's transparent index is cleared too.
func Palette(s *ase.Sprite, transparent bool) color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.NRGBA{}
	}
	copy(p, s.Palette)
	if transparent {
		p[s.Format.TransparentIndex] = color.NRGBA{}
	}
	return p
}

// layerVisible reports whether layer i and every group containing it are
// visible. Group membership follows from the child level.
func layerVisible(layers []ase.Layer, i int) bool {
	level := layers[i].Level
	if !layers[i].Visible() {
		return false
	}
	for j := i - 1; j >= 0 && level > 0; j-- {
		if layers[j].Level < level {
			if !layers[j].Visible() {
				return false
			}
			level = layers[j].Level
		}
	}
	return true
}

type drawable struct {
	cel   *ase.Cel
	order int
}

// sortByZIndex orders cels for drawing by layer index plus z-index. Equal
// orders are drawn lower z-index first.
func sortByZIndex(cels []drawable) {
	slices.SortStableFunc(cels, func(a, b drawable) int {
		if a.order == b.order {
			return cmp.Compare(a.cel.ZIndex, b.cel.ZIndex)
		}
		return cmp.Compare(a.order, b.order)
	})
}

// Frame flattens frame i onto a canvas the size of the sprite. Visible image
// layers are composited with normal blending, scaled by cel and layer
// opacity. Group and reference layers are not drawn.
func Frame(s *ase.Sprite, i int) (*image.NRGBA, error) {
	if i < 0 || i >= len(s.Frames) {
		return nil, fmt.Errorf("%w: %d of %d", ErrFrameIndex, i, len(s.Frames))
	}

	var cels []drawable
	frame := &s.Frames[i]
	for k := range frame.Cels {
		c := &frame.Cels[k]
		if c.LayerIndex < 0 || c.LayerIndex >= len(s.Layers) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownLayer, c.LayerIndex)
		}
		layer := &s.Layers[c.LayerIndex]
		if layer.Group || layer.Reference() || !layerVisible(s.Layers, c.LayerIndex) {
			continue
		}
		cels = append(cels, drawable{cel: c, order: c.LayerIndex + int(c.ZIndex)})
	}
	sortByZIndex(cels)

	canvas := image.NewRGBA(s.Bounds())
	for _, d := range cels {
		src, err := CelImage(s, d.cel)
		if err != nil {
			return nil, err
		}
		opacity := uint16(d.cel.Opacity) * uint16(s.Layers[d.cel.LayerIndex].Opacity) / 255
		mask := image.NewUniform(color.Alpha{A: uint8(opacity)})
		r := src.Bounds()
		draw.DrawMask(canvas, r, src, r.Min, mask, image.Point{}, draw.Over)
	}
	return ToNRGBA(canvas), nil
}

// Frames flattens every frame of s.
func Frames(s *ase.Sprite) ([]*image.NRGBA, error) {
	out := make([]*image.NRGBA, len(s.Frames))
	for i := range s.Frames {
		img, err := Frame(s, i)
		if err != nil {
			return nil, err
		}
		out[i] = img
	}
	return out, nil
}

// ToNRGBA converts any image to non-premultiplied RGBA, spreading the work
// across the available CPUs.
func ToNRGBA(img image.Image) *image.NRGBA {
	return prism.ConvertImageToNRGBA(img, runtime.NumCPU())
}
