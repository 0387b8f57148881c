// Package anim plays back the frame ranges described by Aseprite tags.
package anim

import (
	"errors"
	"fmt"
	"time"

	"github.com/retroblast-engine/ase"
)

var ErrTagRange = errors.New("anim: tag frames out of range")

// minFrameDuration keeps a zero frame duration from stalling Update.
const minFrameDuration = time.Millisecond

// Player steps through a tag's frames as time passes.
type Player struct {
	from, to int
	dir      ase.LoopAnimationDirection
	repeat   *uint16
	duration []time.Duration // indexed by frame - from

	index   int           // current sprite frame
	step    int           // +1 or -1
	passes  int           // completed passes over the range
	elapsed time.Duration // time spent on the current frame
	done    bool
}

// New returns a player for tag, timed by the sprite's frame durations.
func New(s *ase.Sprite, tag ase.Tag) (*Player, error) {
	if tag.From > tag.To || int(tag.To) >= len(s.Frames) {
		return nil, fmt.Errorf("%w: %q covers %d-%d of %d frames", ErrTagRange, tag.Name, tag.From, tag.To, len(s.Frames))
	}

	p := &Player{
		from:   int(tag.From),
		to:     int(tag.To),
		dir:    tag.LoopDir,
		repeat: tag.Repeat,
	}
	for i := p.from; i <= p.to; i++ {
		p.duration = append(p.duration, max(s.Frames[i].DurationTime(), minFrameDuration))
	}
	p.Reset()
	return p, nil
}

// All returns a player looping forward over every frame of s.
func All(s *ase.Sprite) (*Player, error) {
	if len(s.Frames) == 0 {
		return nil, fmt.Errorf("%w: sprite has no frames", ErrTagRange)
	}
	return New(s, ase.Tag{To: uint16(len(s.Frames) - 1)})
}

// Reset rewinds the player to the first frame of its direction.
func (p *Player) Reset() {
	p.passes, p.elapsed, p.done = 0, 0, false
	switch p.dir {
	case ase.Reverse, ase.PingPongReverse:
		p.index, p.step = p.to, -1
	default:
		p.index, p.step = p.from, 1
	}
}

// Update advances the animation by dt.
func (p *Player) Update(dt time.Duration) {
	if p.done {
		return
	}
	p.elapsed += dt
	for !p.done && p.elapsed >= p.FrameDuration() {
		p.elapsed -= p.FrameDuration()
		p.advance()
	}
	if p.done {
		p.elapsed = 0
	}
}

func (p *Player) advance() {
	next := p.index + p.step
	if next >= p.from && next <= p.to {
		p.index = next
		return
	}

	p.passes++
	if p.repeat != nil && p.passes >= int(*p.repeat) {
		p.done = true
		return
	}

	switch p.dir {
	case ase.Forward:
		p.index = p.from
	case ase.Reverse:
		p.index = p.to
	default:
		// Ping-pong turns around without repeating the end frame.
		p.step = -p.step
		if next := p.index + p.step; next >= p.from && next <= p.to {
			p.index = next
		}
	}
}

// Frame returns the sprite frame index to display.
func (p *Player) Frame() int { return p.index }

// FrameDuration returns how long the current frame is shown.
func (p *Player) FrameDuration() time.Duration { return p.duration[p.index-p.from] }

// Done reports whether a tag with a finite repeat count has finished. The
// player then stays on its last frame.
func (p *Player) Done() bool { return p.done }

// Len returns the number of frames in the tag.
func (p *Player) Len() int { return p.to - p.from + 1 }
