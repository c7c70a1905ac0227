package codegen

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/leapstack-labs/gumcodegen/pkg/core"
	"github.com/leapstack-labs/gumcodegen/pkg/units"
)

// AbsoluteLayout proportional flags.
const (
	flagWidth  = "AbsoluteLayoutFlags.WidthProportional"
	flagHeight = "AbsoluteLayoutFlags.HeightProportional"
	flagX      = "AbsoluteLayoutFlags.XProportional"
	flagY      = "AbsoluteLayoutFlags.YProportional"
	flagNone   = "AbsoluteLayoutFlags.None"
)

const densitySuffix = "/Xamarin.Essentials.DeviceDisplay.MainDisplayInfo.Density"

// thickness is a margin in whole pixels.
type thickness struct {
	left, top, right, bottom int
}

func (t thickness) isZero() bool {
	return t == thickness{}
}

// absoluteLayout positions b inside an AbsoluteLayout parent using a layout
// bounds rectangle and proportional flags. Sizes relative to the container
// become a proportional size of 1 with margins for the difference.
func absoluteLayout(b box, p placement, opts Options) []Line {
	var flags []string
	flag := func(f string) {
		if !slices.Contains(flags, f) {
			flags = append(flags, f)
		}
	}
	var m thickness

	x, y, width, height := b.x, b.y, b.width, b.height

	switch b.widthUnits {
	case units.Percentage:
		width /= 100
		flag(flagWidth)
	case units.RelativeToContainer:
		if b.xOrigin == units.HorizontalCenter {
			m.left = roundToInt(x - width/2)
			m.right = roundToInt(-x - width/2)
		} else {
			m.right = roundToInt(-x - width)
		}
		width = 1
		flag(flagWidth)
	case units.RelativeToChildren:
		width = -1
	}

	switch b.heightUnits {
	case units.Percentage:
		height /= 100
		flag(flagHeight)
	case units.RelativeToContainer:
		if b.yOrigin == units.VerticalCenter {
			m.top = roundToInt(y - height/2)
			m.bottom = roundToInt(-y - height/2)
		} else {
			m.bottom = roundToInt(-y - height)
		}
		height = 1
		flag(flagHeight)
	case units.RelativeToChildren:
		height = -1
	}

	switch {
	case b.xUnits == units.PixelsFromCenterX && b.xOrigin == units.HorizontalCenter:
		if x == 0 {
			x = .5
			flag(flagX)
		}
	case b.xUnits == units.PercentageWidth:
		x /= 100
		if b.widthUnits == units.Percentage {
			if remaining := 1 - width; remaining > 0 {
				x /= remaining
			}
		}
		flag(flagX)
	case b.xUnits == units.PixelsFromLeft:
		if b.widthUnits == units.RelativeToContainer {
			m.left = roundToInt(x)
			x = 0
		}
	case b.xUnits == units.PixelsFromCenterX:
		if b.widthUnits.IsAbsolute() {
			x = (float32(opts.CanvasWidth) - width) / 2
		}
	case b.xUnits == units.PixelsFromRight:
		if b.xOrigin == units.Right {
			m.right = roundToInt(-x)
			x = 1
			flag(flagX)
		}
	}

	switch {
	case b.yUnits == units.PixelsFromCenterY && b.yOrigin == units.VerticalCenter:
		if b.heightUnits != units.RelativeToContainer {
			m.top = roundToInt(y)
			m.bottom = roundToInt(-y)
		}
		y = .5
		flag(flagY)
	case b.yUnits == units.PixelsFromTop:
		if b.heightUnits == units.RelativeToContainer {
			m.top = roundToInt(y)
			y = 0
		}
	case b.yUnits == units.PercentageHeight:
		y /= 100
		// Unlike x, the remaining space is taken from whatever height holds
		// by now, so an auto-sized (-1) height halves y.
		if remaining := 1 - height; remaining > 0 {
			y /= remaining
		}
		flag(flagY)
	case b.yUnits == units.PixelsFromCenterY:
		if b.heightUnits.IsAbsolute() {
			y = (float32(opts.CanvasHeight) - height) / 2
		}
	case b.yUnits == units.PixelsFromBottom:
		if b.yOrigin == units.Bottom {
			m.bottom = roundToInt(-y)
			y = 1
			flag(flagY)
		} else {
			y += float32(opts.CanvasHeight)
		}
	}

	xs, ys := floatLiteral(x), floatLiteral(y)
	ws, hs := floatLiteral(width), floatLiteral(height)
	if b.widthUnits == units.AbsoluteMultipliedByFontScale {
		ws = "(" + ws + " * " + fontScale + ")"
	}
	if b.heightUnits == units.AbsoluteMultipliedByFontScale {
		hs = "(" + hs + " * " + fontScale + ")"
	}
	if b.xUnits == units.PixelsFromRight && b.xOrigin == units.Right {
		if b.widthUnits == units.RelativeToChildren {
			ws = "(" + ws + ")"
		} else {
			ws = fmt.Sprintf("(%s + %d)", ws, m.right)
		}
	}
	if b.yUnits == units.PixelsFromBottom && b.yOrigin == units.Bottom {
		if b.heightUnits == units.RelativeToChildren {
			hs = "(" + hs + ")"
		} else {
			hs = fmt.Sprintf("(%s + %d)", hs, m.bottom)
		}
	}

	if opts.AdjustPixelValuesForDensity {
		if !slices.Contains(flags, flagX) {
			xs += densitySuffix
		}
		if !slices.Contains(flags, flagY) {
			ys += densitySuffix
		}
		if !slices.Contains(flags, flagWidth) && b.widthUnits != units.RelativeToChildren {
			ws += densitySuffix
		}
		if !slices.Contains(flags, flagHeight) && b.heightUnits != units.RelativeToChildren {
			hs += densitySuffix
		}
	}

	widthProportional := slices.Contains(flags, flagWidth)
	heightProportional := slices.Contains(flags, flagHeight)
	if len(flags) == 0 {
		flags = []string{flagNone}
	}

	out := []Line{
		Linef("AbsoluteLayout.SetLayoutBounds(%s, new Rectangle(%s, %s, %s, %s ));", p.target, xs, ys, ws, hs),
		Linef("AbsoluteLayout.SetLayoutFlags(%s, %s);", p.target, strings.Join(flags, " | ")),
	}
	if !widthProportional {
		if line, ok := sizeRequest(p.target, "WidthRequest", width, b.widthUnits); ok {
			out = append(out, line)
		}
	}
	if !heightProportional {
		if line, ok := sizeRequest(p.target, "HeightRequest", height, b.heightUnits); ok {
			out = append(out, line)
		}
	}
	if widthProportional {
		out = append(out, Linef("%s.HorizontalOptions = LayoutOptions.Fill;", p.target))
	}
	if !m.isZero() {
		out = append(out, Linef("%s.Margin = new Thickness(%d, %d, %d, %d);", p.target, m.left, m.top, m.right, m.bottom))
	}
	return out
}

// sizeRequest repeats a concrete size as a size request, which Forms needs
// in addition to the layout bounds for non-proportional sizes.
func sizeRequest(target, property string, size float32, u units.DimensionUnit) (Line, bool) {
	switch u {
	case units.AbsoluteMultipliedByFontScale:
		return Linef("%s.%s = %sf * %s;", target, property, core.FormatFloat(size), fontScale), true
	case units.Absolute, units.RelativeToContainer:
		return Linef("%s.%s = %sf;", target, property, core.FormatFloat(size)), true
	}
	return "", false
}

// roundToInt rounds half to even.
func roundToInt(f float32) int {
	return int(math.RoundToEven(float64(f)))
}
