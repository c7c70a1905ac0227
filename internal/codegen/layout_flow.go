package codegen

import (
	"strings"

	"github.com/leapstack-labs/gumcodegen/pkg/core"
	"github.com/leapstack-labs/gumcodegen/pkg/units"
)

// flowLayout positions b inside a parent that arranges its children, such
// as a StackLayout. Position becomes margins and sizes become size requests
// or fill options.
func flowLayout(b box, p placement) []Line {
	var out []Line

	if b.widthUnits.IsAbsolute() {
		out = append(out, Linef("%s.WidthRequest = %sf * %s;", p.target, core.FormatFloat(b.width), multiplier(b.widthUnits)))
	}
	if b.heightUnits.IsAbsolute() {
		out = append(out, Linef("%s.HeightRequest = %sf * %s;", p.target, core.FormatFloat(b.height), multiplier(b.heightUnits)))
	}

	var left, top, right, bottom float32
	if b.xUnits == units.PixelsFromLeft {
		left = b.x
		if b.widthUnits == units.RelativeToContainer {
			right = -b.width - b.x
		}
	}
	if b.xUnits == units.PixelsFromCenterX && b.xOrigin == units.HorizontalCenter && b.widthUnits == units.RelativeToContainer {
		left = -b.width / 2
		right = -b.width / 2
	}
	if b.yUnits == units.PixelsFromTop {
		top = b.y
		// A height relative to children is extra space around the children,
		// so the margin grows with the height instead of shrinking.
		if b.heightUnits == units.RelativeToChildren && !strings.HasSuffix(p.parentType, "/StackLayout") {
			bottom = b.height - b.y
		}
	}

	if strings.HasSuffix(p.ownerType, "/AbsoluteLayout") && b.heightUnits == units.RelativeToChildren {
		out = append(out, Linef("Error: The object %s uses a HeightUnits of RelativeToChildren, but it is an AbsoluteLayout which is not supported in Xamarin.Forms", p.name))
	}

	if p.setsAny {
		out = append(out, Linef("%s.Margin = new Thickness(%s, %s, %s, %s);", p.target,
			core.FormatFloat(left), core.FormatFloat(top), core.FormatFloat(right), core.FormatFloat(bottom)))
	}

	switch b.widthUnits {
	case units.Absolute, units.RelativeToChildren, units.AbsoluteMultipliedByFontScale:
		switch {
		case b.xUnits == units.PixelsFromCenterX && b.xOrigin == units.HorizontalCenter:
			out = append(out, Linef("%s.HorizontalOptions = LayoutOptions.Center;", p.target))
		case b.xUnits == units.PixelsFromRight && b.xOrigin == units.Right:
			out = append(out, Linef("%s.HorizontalOptions = LayoutOptions.End;", p.target))
		default:
			out = append(out, Linef("%s.HorizontalOptions = LayoutOptions.Start;", p.target))
		}
	case units.RelativeToContainer, units.Percentage:
		out = append(out, Linef("%s.HorizontalOptions = LayoutOptions.Fill;", p.target))
	}

	switch b.heightUnits {
	case units.Absolute, units.RelativeToChildren, units.AbsoluteMultipliedByFontScale:
		// Centering is keyed on the horizontal origin.
		if b.yUnits == units.PixelsFromCenterY && b.xOrigin == units.HorizontalCenter {
			out = append(out, Linef("%s.VerticalOptions = LayoutOptions.Center;", p.target))
		} else {
			out = append(out, Linef("%s.VerticalOptions = LayoutOptions.Start;", p.target))
		}
	case units.RelativeToContainer, units.Percentage:
		out = append(out, Linef("%s.VerticalOptions = LayoutOptions.Fill;", p.target))
	}
	return out
}

func multiplier(u units.DimensionUnit) string {
	if u == units.AbsoluteMultipliedByFontScale {
		return fontScale
	}
	return "1.0f"
}
