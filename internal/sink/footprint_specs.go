// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sink

// Vec3 is an (x, y, z) triple used for 3D model placement.
type Vec3 struct {
	X, Y, Z float64
}

// OffsetOp selects how the per-pin step moves a 3D model along X.
type OffsetOp int

const (
	OffsetAdd OffsetOp = iota
	OffsetSubtract
)

func (op OffsetOp) String() string {
	if op == OffsetSubtract {
		return "subtract"
	}
	return "add"
}

// Apply shifts base along X by step in the op's direction.
func (op OffsetOp) Apply(base Vec3, step float64) Vec3 {
	if op == OffsetSubtract {
		step = -step
	}
	return Vec3{X: base.X + step, Y: base.Y, Z: base.Z}
}

// FootprintSpec is the physical layout of one terminal-block series. All
// lengths are millimetres; the body outline grows by WidthPerPin/2 on each
// side for every pin beyond two.
type FootprintSpec struct {
	WidthPerPin  float64
	WidthLeft    float64
	WidthRight   float64
	HeightTop    float64
	HeightBottom float64

	// Pin 1 marker circle.
	CircleX      float64
	CircleY      float64
	CircleRadius float64

	PadSize    float64
	DrillSize  float64
	SilkWidth  float64
	MaskMargin float64

	RefX float64
	RefY float64

	ModelOffset    Vec3
	ModelRotation  Vec3
	StepMultiplier float64
	Offset         OffsetOp
}

// ModelOffsetFor returns the 3D model offset for a part with pins pins.
func (s FootprintSpec) ModelOffsetFor(pins int) Vec3 {
	return s.Offset.Apply(s.ModelOffset, float64(pins-2)*s.StepMultiplier)
}

// FootprintLayout returns the layout for a connector series key.
func FootprintLayout(series string) (FootprintSpec, bool) {
	s, ok := footprintSpecs[series]
	return s, ok
}

// Shared by every series below.
const (
	markerX      = -7.0
	markerRadius = 0.5
	silkWidth    = 0.1524
	maskMargin   = 0.102
)

var footprintSpecs = map[string]FootprintSpec{
	"TB004-508": {
		WidthPerPin: 5.08, WidthLeft: 5.8, WidthRight: 5.2,
		HeightTop: 5.2, HeightBottom: -5.2,
		CircleX: markerX, CircleRadius: markerRadius,
		PadSize: 2.55, DrillSize: 1.7, SilkWidth: silkWidth, MaskMargin: maskMargin,
		RefY:   6.096,
		Offset: OffsetSubtract,
	},
	"TB006-508": {
		WidthPerPin: 5.08, WidthLeft: 5.8, WidthRight: 5.2,
		HeightTop: 4.2, HeightBottom: -4.2,
		CircleX: markerX, CircleRadius: markerRadius,
		PadSize: 2.55, DrillSize: 1.7, SilkWidth: silkWidth, MaskMargin: maskMargin,
		RefY:   5.334,
		Offset: OffsetSubtract,
	},
	"TBP02R1-381": {
		WidthPerPin: 3.81, WidthLeft: 4.4, WidthRight: 4.4,
		HeightTop: -7.9, HeightBottom: 1.4,
		CircleX: markerX, CircleRadius: markerRadius,
		PadSize: 2.1, DrillSize: 1.4, SilkWidth: silkWidth, MaskMargin: maskMargin,
		RefY:           2.4,
		ModelOffset:    Vec3{-17.15, 17.0, -3.4},
		ModelRotation:  Vec3{0, 90, 180},
		StepMultiplier: 1.905,
		Offset:         OffsetAdd,
	},
	"TBP02R2-381": {
		WidthPerPin: 3.81, WidthLeft: 4.445, WidthRight: 4.445,
		HeightTop: 3.2512, HeightBottom: -4.445,
		CircleX: markerX, CircleRadius: markerRadius,
		PadSize: 2.1, DrillSize: 1.4, SilkWidth: silkWidth, MaskMargin: maskMargin,
		RefY:           4.2,
		ModelOffset:    Vec3{17.145, -6.477, 18.288},
		ModelRotation:  Vec3{90, 0, -90},
		StepMultiplier: 1.905,
		Offset:         OffsetSubtract,
	},
	"TBP04R1-500": {
		WidthPerPin: 5.0, WidthLeft: 5.2, WidthRight: 5.2,
		HeightTop: -2.2, HeightBottom: 9.9,
		CircleX: markerX, CircleRadius: markerRadius,
		PadSize: 2.55, DrillSize: 1.7, SilkWidth: silkWidth, MaskMargin: maskMargin,
		RefY:           -3.0,
		ModelOffset:    Vec3{-1.65, 1.0, -3.81},
		ModelRotation:  Vec3{-90, 0, 90},
		StepMultiplier: 2.5,
		Offset:         OffsetAdd,
	},
	"TBP04R2-500": {
		WidthPerPin: 5.0, WidthLeft: 5.8, WidthRight: 5.8,
		HeightTop: 4.8, HeightBottom: -4.0,
		CircleX: markerX, CircleRadius: markerRadius,
		PadSize: 2.55, DrillSize: 1.7, SilkWidth: silkWidth, MaskMargin: maskMargin,
		RefY:           5.8,
		ModelOffset:    Vec3{5, -0.75, -3.81},
		ModelRotation:  Vec3{-90, 0, 180},
		StepMultiplier: 2.5,
		Offset:         OffsetAdd,
	},
	"TBP04R3-500": {
		WidthPerPin: 5.0, WidthLeft: 5.2, WidthRight: 5.2,
		HeightTop: 4.8, HeightBottom: -4.0,
		CircleX: markerX, CircleRadius: markerRadius,
		PadSize: 2.55, DrillSize: 1.7, SilkWidth: silkWidth, MaskMargin: maskMargin,
		RefY:           5.8,
		ModelOffset:    Vec3{5, -0.75, -3.81},
		ModelRotation:  Vec3{-90, 0, 180},
		StepMultiplier: 2.5,
		Offset:         OffsetAdd,
	},
	"TBP04R12-500": {
		WidthPerPin: 5.0, WidthLeft: 5.8, WidthRight: 5.8,
		HeightTop: -2.2, HeightBottom: 9.9,
		CircleX: markerX, CircleRadius: markerRadius,
		PadSize: 2.55, DrillSize: 1.7, SilkWidth: silkWidth, MaskMargin: maskMargin,
		RefY:           -3.0,
		ModelOffset:    Vec3{-5, -5.6, -3.81},
		ModelRotation:  Vec3{-90, 0, 0},
		StepMultiplier: 2.5,
		Offset:         OffsetSubtract,
	},
}
