package ase

// LayerFlags is the layer chunk's flag word.
type LayerFlags WORD

const (
	LayerFlagsVisible          LayerFlags = 1
	LayerFlagsEditable         LayerFlags = 2
	LayerFlagsLockMovement     LayerFlags = 4
	LayerFlagsBackground       LayerFlags = 8
	LayerFlagsPreferLinkedCels LayerFlags = 16
	LayerFlagsCollapsedGroup   LayerFlags = 32
	LayerFlagsReference        LayerFlags = 64
)

// Layer types as stored in the layer chunk.
const (
	layerTypeNormal  WORD = 0
	layerTypeGroup   WORD = 1
	layerTypeTilemap WORD = 2
)

// BlendMode is how a layer is composited onto the layers below it.
type BlendMode WORD

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
	BlendAddition
	BlendSubtract
	BlendDivide
)

var blendModeNames = [...]string{
	"Normal", "Multiply", "Screen", "Overlay", "Darken", "Lighten",
	"ColorDodge", "ColorBurn", "HardLight", "SoftLight", "Difference",
	"Exclusion", "Hue", "Saturation", "Color", "Luminosity", "Addition",
	"Subtract", "Divide",
}

// Valid reports whether m is one of the blend modes Aseprite defines.
func (m BlendMode) Valid() bool {
	return int(m) < len(blendModeNames)
}

func (m BlendMode) String() string {
	if m.Valid() {
		return blendModeNames[m]
	}
	return "Unknown"
}

// Layer is one entry of the sprite's layer stack. Layers are stored in file
// order; Level gives the group nesting depth.
type Layer struct {
	Flags     LayerFlags
	Level     uint16
	BlendMode BlendMode
	Opacity   uint8
	Name      string
	UserData  *UserData

	// Group is set for folder layers, which never hold cels.
	Group bool
}

// Visible reports whether the layer was toggled visible.
func (l *Layer) Visible() bool { return l.Flags&LayerFlagsVisible != 0 }

// Background reports whether the layer is the background layer.
func (l *Layer) Background() bool { return l.Flags&LayerFlagsBackground != 0 }

// Reference reports whether the layer is a reference layer.
func (l *Layer) Reference() bool { return l.Flags&LayerFlagsReference != 0 }
