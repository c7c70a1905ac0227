package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGeneralUnit(t *testing.T) {
	tests := []struct {
		in   PositionUnit
		want GeneralUnit
	}{
		{PixelsFromLeft, PixelsFromSmall},
		{PixelsFromTop, PixelsFromSmall},
		{PixelsFromRight, PixelsFromLarge},
		{PixelsFromBottom, PixelsFromLarge},
		{PixelsFromCenterX, PixelsFromMiddle},
		{PixelsFromCenterY, PixelsFromMiddle},
		{PixelsFromCenterYInverted, PixelsFromMiddleInverted},
		{PercentageWidth, GeneralPercentage},
		{PercentageHeight, GeneralPercentage},
		{PixelsFromBaseline, PixelsFromBaselineUnit},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ToGeneralUnit(tt.in))
		})
	}
}

func TestMember(t *testing.T) {
	i, err := Member(DimensionUnitTypeName, "RelativeToChildren")
	require.NoError(t, err)
	assert.Equal(t, int(RelativeToChildren), i)

	i, err = Member(HorizontalAlignmentTypeName, "Center")
	require.NoError(t, err)
	assert.Equal(t, int(HorizontalCenter), i)

	_, err = Member(PositionUnitTypeName, "Sideways")
	assert.Error(t, err)

	_, err = Member("Colour", "Red")
	assert.Error(t, err)
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "Percentage", GeneralPercentage.String())
	assert.Equal(t, "AbsoluteMultipliedByFontScale", AbsoluteMultipliedByFontScale.String())
	assert.Equal(t, "Bottom", Bottom.String())
	assert.Equal(t, "42", PositionUnit(42).String())
	assert.True(t, AbsoluteMultipliedByFontScale.IsAbsolute())
	assert.False(t, RelativeToContainer.IsAbsolute())
	assert.True(t, IsEnumType(ChildrenLayoutTypeName))
	assert.False(t, IsEnumType("float"))
}
