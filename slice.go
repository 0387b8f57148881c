package ase

import "image"

// Slice flags
const (
	sliceFlagNinePatch = 1 << iota
	sliceFlagPivot
)

// SliceKey is a slice's placement from frame Frame onwards.
type SliceKey struct {
	Frame uint32
	X, Y  int32
	W, H  uint32
	Pivot image.Point // zero when the file stores no pivot
}

// Bounds returns the key's rectangle.
func (k SliceKey) Bounds() image.Rectangle {
	return image.Rect(int(k.X), int(k.Y), int(k.X)+int(k.W), int(k.Y)+int(k.H))
}

// NineSliceKey is a SliceKey with the center rectangle of a 9-slice.
// The center is relative to the key's origin.
type NineSliceKey struct {
	SliceKey
	CenterX, CenterY int32
	CenterW, CenterH uint32
}

// Center returns the center rectangle relative to the slice origin.
func (k NineSliceKey) Center() image.Rectangle {
	return image.Rect(int(k.CenterX), int(k.CenterY), int(k.CenterX)+int(k.CenterW), int(k.CenterY)+int(k.CenterH))
}

// Slice is a named, optionally keyframed region of the canvas. Exactly one of
// Keys and NineKeys is used, according to Nine.
type Slice struct {
	Name     string
	Nine     bool
	Keys     []SliceKey
	NineKeys []NineSliceKey
	UserData *UserData
}

// KeyAt returns the key in effect at frame, the last key whose starting
// frame is not after it.
func (s *Slice) KeyAt(frame int) (SliceKey, bool) {
	var (
		key   SliceKey
		found bool
	)
	if s.Nine {
		for _, k := range s.NineKeys {
			if int(k.Frame) <= frame {
				key, found = k.SliceKey, true
			}
		}
		return key, found
	}
	for _, k := range s.Keys {
		if int(k.Frame) <= frame {
			key, found = k, true
		}
	}
	return key, found
}
