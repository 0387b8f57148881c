package ase

import "fmt"

// CelDataType represents the type of data in the cel.
type CelDataType WORD

const (
	RawImageData CelDataType = iota
	LinkedCelData
	CompressedImageData
	CompressedTilemapData
)

// Cel is the content of one layer in one frame.
type Cel struct {
	LayerIndex int
	X, Y       int16
	Opacity    uint8

	// ZIndex moves the cel forward (+N) or back (-N) in the frame's paint
	// order relative to its layer.
	ZIndex int16

	Data     CelData
	UserData *UserData
}

// CelData is either a Link or an *Image.
type CelData interface {
	celData()
	fmt.Stringer
}

// Link is a cel that reuses the pixels of the same layer's cel in another frame.
type Link struct {
	FrameIndex uint16
}

// Image is a cel's decompressed pixel buffer. Rows are tightly packed and
// len(Pix) == Width*Height*Format.BytesPerPixel().
type Image struct {
	Width, Height uint16
	Pix           []byte
}

func (Link) celData()   {}
func (*Image) celData() {}

func (l Link) String() string {
	return fmt.Sprintf("Link(%d)", l.FrameIndex)
}

func (img *Image) String() string {
	return fmt.Sprintf("Image(%d x %d)", img.Width, img.Height)
}
