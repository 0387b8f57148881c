// Package ebitenase loads Aseprite sprites as ebiten images grouped by tag.
package ebitenase

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/retroblast-engine/ase"
	"github.com/retroblast-engine/ase/anim"
	"github.com/retroblast-engine/ase/aseimg"
)

// File is a sprite whose frames have been flattened into ebiten images.
type File struct {
	Sprite    *ase.Sprite
	Frames    []*ebiten.Image
	Durations []time.Duration
	Tags      map[string]*Tag
}

// Tag is one animation state of a File.
type Tag struct {
	Name          string
	Frames        []*ebiten.Image
	FrameDuration []time.Duration
	HasAnimations bool // more than one frame

	tag    ase.Tag
	sprite *ase.Sprite
}

// Load decodes the file at path and builds its images.
func Load(path string) (*File, error) {
	s, err := ase.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return FromSprite(s)
}

// FromSprite flattens every frame of s into an ebiten image.
func FromSprite(s *ase.Sprite) (*File, error) {
	frames, err := aseimg.Frames(s)
	if err != nil {
		return nil, err
	}

	f := &File{
		Sprite:    s,
		Frames:    make([]*ebiten.Image, len(frames)),
		Durations: make([]time.Duration, len(frames)),
		Tags:      make(map[string]*Tag, len(s.Tags)),
	}
	for i, img := range frames {
		f.Frames[i] = ebiten.NewImageFromImage(img)
		f.Durations[i] = s.Frames[i].DurationTime()
	}

	for _, t := range s.Tags {
		if t.From > t.To || int(t.To) >= len(f.Frames) {
			return nil, fmt.Errorf("%w: %q covers %d-%d of %d frames", anim.ErrTagRange, t.Name, t.From, t.To, len(f.Frames))
		}
		if _, dup := f.Tags[t.Name]; dup {
			continue
		}
		f.Tags[t.Name] = &Tag{
			Name:          t.Name,
			Frames:        f.Frames[t.From : t.To+1],
			FrameDuration: f.Durations[t.From : t.To+1],
			HasAnimations: t.To > t.From,
			tag:           t,
			sprite:        s,
		}
	}
	return f, nil
}

// Player returns a player for the tag's loop direction and repeat count.
// Its Frame is an index into File.Frames.
func (t *Tag) Player() (*anim.Player, error) {
	return anim.New(t.sprite, t.tag)
}

// Image returns the frame the player is showing.
func (f *File) Image(p *anim.Player) *ebiten.Image {
	return f.Frames[p.Frame()]
}

// SliceImage returns the part of frame covered by the named slice at that
// frame.
func (f *File) SliceImage(name string, frame int) (*ebiten.Image, bool) {
	if frame < 0 || frame >= len(f.Frames) {
		return nil, false
	}
	sl, ok := f.Sprite.Slice(name)
	if !ok {
		return nil, false
	}
	key, ok := sl.KeyAt(frame)
	if !ok {
		return nil, false
	}
	r := key.Bounds().Intersect(f.Sprite.Bounds())
	if r.Empty() {
		return nil, false
	}
	return f.Frames[frame].SubImage(r).(*ebiten.Image), true
}
