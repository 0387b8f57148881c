package ase

import (
	"fmt"
	"image"
	"image/color"
)

// Palette Chunk (0x2019)
func (d *decoder) parsePalette() error {
	d.target = targetSprite

	newSize, err := d.r.dword()
	if err != nil {
		return err
	}
	// The palette only ever grows.
	if n := int(newSize); n > len(d.palette) {
		grown := make([]color.NRGBA, n)
		copy(grown, d.palette)
		for i := len(d.palette); i < n; i++ {
			grown[i] = paletteDefault
		}
		d.palette = grown
	}

	first, err := d.r.dword()
	if err != nil {
		return err
	}
	last, err := d.r.dword()
	if err != nil {
		return err
	}
	if err := d.r.skip(8); err != nil {
		return err
	}
	if first > last {
		return nil
	}
	if uint64(last) >= uint64(len(d.palette)) {
		return &ValueError{Err: ErrPaletteIndex, Value: last}
	}

	for i := first; ; i++ {
		flags, err := d.r.word()
		if err != nil {
			return err
		}
		c, err := d.r.rgba()
		if err != nil {
			return err
		}
		d.palette[i] = color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
		if flags&1 != 0 {
			if _, err := d.r.string(); err != nil {
				return err
			}
		}
		if i == last {
			return nil
		}
	}
}

// Old palette chunks (0x0004 and 0x0011). Only read while the new-style
// palette is still empty.
func (d *decoder) parseOldPalette() error {
	d.sawOldPalette = true

	packets, err := d.r.word()
	if err != nil {
		return err
	}

	index := 0
	for range int(packets) {
		skip, err := d.r.byte()
		if err != nil {
			return err
		}
		index += int(skip)

		n, err := d.r.byte()
		if err != nil {
			return err
		}
		count := int(n)
		if count == 0 {
			count = 256
		}

		for range count {
			var rgb [3]BYTE
			for k := range rgb {
				if rgb[k], err = d.r.byte(); err != nil {
					return err
				}
			}
			if index < len(d.oldPalette) {
				d.oldPalette[index] = color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xFF}
			}
			index++
		}
	}
	return nil
}

// Tags Chunk (0x2018)
func (d *decoder) parseTags() error {
	d.target = targetTag

	n, err := d.r.word()
	if err != nil {
		return err
	}
	if err := d.r.skip(8); err != nil {
		return err
	}

	for range int(n) {
		var tag Tag
		if tag.From, err = d.r.word(); err != nil {
			return err
		}
		if tag.To, err = d.r.word(); err != nil {
			return err
		}
		dir, err := d.r.byte()
		if err != nil {
			return err
		}
		tag.LoopDir = LoopAnimationDirection(dir)
		if !tag.LoopDir.Valid() {
			return &ValueError{Err: ErrInvalidLoopDir, Value: uint32(dir)}
		}
		repeat, err := d.r.word()
		if err != nil {
			return err
		}
		if repeat != 0 {
			tag.Repeat = &repeat
		}
		// 6 reserved, 3 deprecated color bytes, 1 extra byte
		if err := d.r.skip(10); err != nil {
			return err
		}
		if tag.Name, err = d.r.string(); err != nil {
			return err
		}
		d.tags = append(d.tags, tag)
	}
	return nil
}

// Layer Chunk (0x2004)
func (d *decoder) parseLayer() error {
	d.target = targetLayer

	var l Layer
	flags, err := d.r.word()
	if err != nil {
		return err
	}
	l.Flags = LayerFlags(flags)

	typ, err := d.r.word()
	if err != nil {
		return err
	}
	switch typ {
	case layerTypeNormal:
	case layerTypeGroup:
		l.Group = true
	case layerTypeTilemap:
		return unsupported("tilemap layers")
	default:
		return &ValueError{Err: ErrInvalidLayerType, Value: uint32(typ)}
	}

	if l.Level, err = d.r.word(); err != nil {
		return err
	}
	// default layer width and height, both ignored
	if err := d.r.skip(4); err != nil {
		return err
	}

	blend, err := d.r.word()
	if err != nil {
		return err
	}
	l.BlendMode = BlendMode(blend)
	if !l.BlendMode.Valid() {
		return &ValueError{Err: ErrInvalidBlendMode, Value: uint32(blend)}
	}

	if l.Opacity, err = d.r.byte(); err != nil {
		return err
	}
	if !d.opacityValid {
		l.Opacity = 0xFF
	}
	if err := d.r.skip(3); err != nil {
		return err
	}
	if l.Name, err = d.r.string(); err != nil {
		return err
	}

	d.layers = append(d.layers, l)
	return nil
}

// User Data Chunk (0x2020)
func (d *decoder) parseUserData() error {
	flags, err := d.r.dword()
	if err != nil {
		return err
	}

	ud := &UserData{}
	if flags&1 != 0 {
		text, err := d.r.string()
		if err != nil {
			return err
		}
		ud.Text = &text
	}
	if flags&2 != 0 {
		c, err := d.r.rgba()
		if err != nil {
			return err
		}
		ud.Color = &color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
	}
	if flags&4 != 0 {
		return unsupported("user data properties")
	}

	return d.attach(ud)
}

func (d *decoder) attach(ud *UserData) error {
	switch d.target {
	case targetSprite:
		d.userData = ud
	case targetLayer:
		if len(d.layers) == 0 {
			return ErrOrphanUserData
		}
		d.layers[len(d.layers)-1].UserData = ud
	case targetCel:
		if len(d.cels) == 0 {
			return ErrOrphanUserData
		}
		d.cels[len(d.cels)-1].UserData = ud
	case targetTag:
		if d.nextTag >= len(d.tags) {
			return ErrOrphanUserData
		}
		d.tags[d.nextTag].UserData = ud
		d.nextTag++
	case targetSlice:
		if len(d.slices) == 0 {
			return ErrOrphanUserData
		}
		d.slices[len(d.slices)-1].UserData = ud
	}
	return nil
}

// Cel Chunk (0x2005). end is the absolute offset where the chunk stops; the
// compressed pixels run up to it.
func (d *decoder) parseCel(end int64) error {
	d.target = targetCel

	var c Cel
	layer, err := d.r.word()
	if err != nil {
		return err
	}
	c.LayerIndex = int(layer)
	if c.X, err = d.r.short(); err != nil {
		return err
	}
	if c.Y, err = d.r.short(); err != nil {
		return err
	}
	if c.Opacity, err = d.r.byte(); err != nil {
		return err
	}
	if !d.opacityValid {
		c.Opacity = 0xFF
	}
	typ, err := d.r.word()
	if err != nil {
		return err
	}
	if c.ZIndex, err = d.r.short(); err != nil {
		return err
	}
	if err := d.r.skip(5); err != nil {
		return err
	}

	switch CelDataType(typ) {
	case LinkedCelData:
		frame, err := d.r.word()
		if err != nil {
			return err
		}
		c.Data = Link{FrameIndex: frame}
	case CompressedImageData:
		img, err := d.readImage(end)
		if err != nil {
			return err
		}
		c.Data = img
	case CompressedTilemapData:
		return unsupported("tilemap cels")
	default:
		return &ValueError{Err: ErrInvalidCelType, Value: uint32(typ)}
	}

	d.cels = append(d.cels, c)
	return nil
}

func (d *decoder) readImage(end int64) (*Image, error) {
	var img Image
	var err error
	if img.Width, err = d.r.word(); err != nil {
		return nil, err
	}
	if img.Height, err = d.r.word(); err != nil {
		return nil, err
	}

	pos, err := d.r.pos()
	if err != nil {
		return nil, err
	}
	if end < pos {
		return nil, fmt.Errorf("%w: cel header overruns its chunk", ErrInvalidChunkSize)
	}
	compressed, err := d.r.bytes(int(end - pos))
	if err != nil {
		return nil, err
	}

	want := int(img.Width) * int(img.Height) * d.format.BytesPerPixel()
	if img.Pix, err = inflate(compressed, want); err != nil {
		return nil, err
	}
	return &img, nil
}

// Slice Chunk (0x2022)
func (d *decoder) parseSlice() error {
	d.target = targetSlice

	keys, err := d.r.dword()
	if err != nil {
		return err
	}
	flags, err := d.r.dword()
	if err != nil {
		return err
	}
	if err := d.r.skip(4); err != nil {
		return err
	}

	s := Slice{Nine: flags&sliceFlagNinePatch != 0}
	if s.Name, err = d.r.string(); err != nil {
		return err
	}

	for range keys {
		var k SliceKey
		if k.Frame, err = d.r.dword(); err != nil {
			return err
		}
		if k.X, k.Y, err = d.r.point(); err != nil {
			return err
		}
		if k.W, k.H, err = d.r.size(); err != nil {
			return err
		}

		var nk NineSliceKey
		if s.Nine {
			if nk.CenterX, nk.CenterY, err = d.r.point(); err != nil {
				return err
			}
			if nk.CenterW, nk.CenterH, err = d.r.size(); err != nil {
				return err
			}
		}

		if flags&sliceFlagPivot != 0 {
			px, py, err := d.r.point()
			if err != nil {
				return err
			}
			k.Pivot = image.Pt(int(px), int(py))
		}

		if s.Nine {
			nk.SliceKey = k
			s.NineKeys = append(s.NineKeys, nk)
		} else {
			s.Keys = append(s.Keys, k)
		}
	}

	d.slices = append(d.slices, s)
	return nil
}
