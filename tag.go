package ase

// LoopAnimationDirection represents the direction of the loop animation.
type LoopAnimationDirection BYTE

const (
	Forward         LoopAnimationDirection = iota // 0 = forward
	Reverse                                       // 1 = reverse
	PingPong                                      // 2 = ping-pong
	PingPongReverse                               // 3 = ping-pong reverse
)

// Valid reports whether d is one of the four known directions.
func (d LoopAnimationDirection) Valid() bool {
	return d <= PingPongReverse
}

func (d LoopAnimationDirection) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	case PingPong:
		return "pingpong"
	case PingPongReverse:
		return "pingpong_reverse"
	}
	return "unknown"
}

// Tag is a named range of frames used as an animation.
type Tag struct {
	Name     string
	From, To uint16 // inclusive
	LoopDir  LoopAnimationDirection

	// Repeat is nil when the animation repeats forever. For the ping-pong
	// directions one repeat is one pass in one direction.
	Repeat *uint16

	UserData *UserData
}

// Len returns the number of frames covered by the tag.
func (t *Tag) Len() int {
	if t.To < t.From {
		return 0
	}
	return int(t.To-t.From) + 1
}
