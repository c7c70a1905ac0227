// Package units defines the unit-agnostic positioning and sizing enums used by
// Gum layout documents, and the converter from native position units to the
// general cross-runtime unit enum.
package units

import "fmt"

// Document type names for the enums in this package. Variables in layout
// documents declare one of these as their type.
const (
	PositionUnitTypeName        = "PositionUnitType"
	DimensionUnitTypeName       = "DimensionUnitType"
	HorizontalAlignmentTypeName = "HorizontalAlignment"
	VerticalAlignmentTypeName   = "VerticalAlignment"
	ChildrenLayoutTypeName      = "ChildrenLayout"
	GeneralUnitTypeName         = "GeneralUnitType"
)

// PositionUnit describes how an X or Y value is interpreted.
type PositionUnit int

// Position units, in document order. The zero value is PixelsFromLeft.
const (
	PixelsFromLeft PositionUnit = iota
	PixelsFromTop
	PercentageWidth
	PercentageHeight
	PixelsFromRight
	PixelsFromBottom
	PixelsFromCenterX
	PixelsFromCenterY
	PixelsFromCenterYInverted
	PixelsFromBaseline
)

var positionUnitNames = []string{
	"PixelsFromLeft",
	"PixelsFromTop",
	"PercentageWidth",
	"PercentageHeight",
	"PixelsFromRight",
	"PixelsFromBottom",
	"PixelsFromCenterX",
	"PixelsFromCenterY",
	"PixelsFromCenterYInverted",
	"PixelsFromBaseline",
}

func (u PositionUnit) String() string { return nameOf(positionUnitNames, int(u)) }

// DimensionUnit describes how a Width or Height value is interpreted.
type DimensionUnit int

// Dimension units, in document order. The zero value is Absolute.
const (
	Absolute DimensionUnit = iota
	Percentage
	RelativeToContainer
	RelativeToChildren
	PercentageOfSourceFile
	MaintainFileAspectRatio
	Ratio
	AbsoluteMultipliedByFontScale
)

var dimensionUnitNames = []string{
	"Absolute",
	"Percentage",
	"RelativeToContainer",
	"RelativeToChildren",
	"PercentageOfSourceFile",
	"MaintainFileAspectRatio",
	"Ratio",
	"AbsoluteMultipliedByFontScale",
}

func (u DimensionUnit) String() string { return nameOf(dimensionUnitNames, int(u)) }

// IsAbsolute reports whether the unit resolves to a concrete pixel number.
func (u DimensionUnit) IsAbsolute() bool {
	return u == Absolute || u == AbsoluteMultipliedByFontScale
}

// HorizontalAlignment is an X origin.
type HorizontalAlignment int

// Horizontal alignments.
const (
	Left HorizontalAlignment = iota
	HorizontalCenter
	Right
)

var horizontalNames = []string{"Left", "Center", "Right"}

func (a HorizontalAlignment) String() string { return nameOf(horizontalNames, int(a)) }

// VerticalAlignment is a Y origin.
type VerticalAlignment int

// Vertical alignments.
const (
	Top VerticalAlignment = iota
	VerticalCenter
	Bottom
)

var verticalNames = []string{"Top", "Center", "Bottom"}

func (a VerticalAlignment) String() string { return nameOf(verticalNames, int(a)) }

// ChildrenLayout is how a container arranges its children.
type ChildrenLayout int

// Children layouts.
const (
	Regular ChildrenLayout = iota
	TopToBottomStack
	LeftToRightStack
	AutoGridHorizontal
	AutoGridVertical
)

var childrenLayoutNames = []string{
	"Regular",
	"TopToBottomStack",
	"LeftToRightStack",
	"AutoGridHorizontal",
	"AutoGridVertical",
}

func (l ChildrenLayout) String() string { return nameOf(childrenLayoutNames, int(l)) }

// GeneralUnit is the runtime-neutral unit enum that the Gum runtime exposes
// in generated code.
type GeneralUnit int

// General units.
const (
	PixelsFromSmall GeneralUnit = iota
	PixelsFromLarge
	PixelsFromMiddle
	GeneralPercentage
	PercentageOfFile
	PercentageOfOtherDimension
	GeneralMaintainFileAspectRatio
	GeneralRatio
	PixelsFromBaselineUnit
	PixelsFromMiddleInverted
)

var generalUnitNames = []string{
	"PixelsFromSmall",
	"PixelsFromLarge",
	"PixelsFromMiddle",
	"Percentage",
	"PercentageOfFile",
	"PercentageOfOtherDimension",
	"MaintainFileAspectRatio",
	"Ratio",
	"PixelsFromBaseline",
	"PixelsFromMiddleInverted",
}

func (u GeneralUnit) String() string { return nameOf(generalUnitNames, int(u)) }

// ToGeneralUnit converts a native position unit to the general unit. The two
// enums are not one-to-one: left/top collapse to "small", right/bottom to
// "large" and both percentages to Percentage.
func ToGeneralUnit(u PositionUnit) GeneralUnit {
	switch u {
	case PixelsFromLeft, PixelsFromTop:
		return PixelsFromSmall
	case PixelsFromRight, PixelsFromBottom:
		return PixelsFromLarge
	case PixelsFromCenterX, PixelsFromCenterY:
		return PixelsFromMiddle
	case PixelsFromCenterYInverted:
		return PixelsFromMiddleInverted
	case PercentageWidth, PercentageHeight:
		return GeneralPercentage
	case PixelsFromBaseline:
		return PixelsFromBaselineUnit
	default:
		return PixelsFromSmall
	}
}

// Member returns the ordinal of member within the named enum type.
func Member(typeName, member string) (int, error) {
	names, ok := enumNames(typeName)
	if !ok {
		return 0, fmt.Errorf("unknown enum type %q", typeName)
	}
	for i, n := range names {
		if n == member {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s member %q", typeName, member)
}

// IsEnumType reports whether typeName is one of the layout enums.
func IsEnumType(typeName string) bool {
	_, ok := enumNames(typeName)
	return ok
}

func enumNames(typeName string) ([]string, bool) {
	switch typeName {
	case PositionUnitTypeName:
		return positionUnitNames, true
	case DimensionUnitTypeName:
		return dimensionUnitNames, true
	case HorizontalAlignmentTypeName:
		return horizontalNames, true
	case VerticalAlignmentTypeName:
		return verticalNames, true
	case ChildrenLayoutTypeName:
		return childrenLayoutNames, true
	case GeneralUnitTypeName:
		return generalUnitNames, true
	}
	return nil, false
}

func nameOf(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("%d", i)
	}
	return names[i]
}
