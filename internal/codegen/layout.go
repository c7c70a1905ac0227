package codegen

import (
	"strings"

	"github.com/leapstack-labs/gumcodegen/internal/resolve"
	"github.com/leapstack-labs/gumcodegen/pkg/core"
	"github.com/leapstack-labs/gumcodegen/pkg/units"
)

const fontScale = "RenderingLibrary.SystemManagers.GlobalFontScale"

// box is the resolved position and size of one object in one state.
type box struct {
	x, y          float32
	width, height float32

	xUnits, yUnits          units.PositionUnit
	widthUnits, heightUnits units.DimensionUnit

	xOrigin units.HorizontalAlignment
	yOrigin units.VerticalAlignment
}

func readBox(f *resolve.Finder, prefix string) box {
	return box{
		x:           f.Float(prefix + "X"),
		y:           f.Float(prefix + "Y"),
		width:       f.Float(prefix + "Width"),
		height:      f.Float(prefix + "Height"),
		xUnits:      f.PositionUnit(prefix + "X Units"),
		yUnits:      f.PositionUnit(prefix + "Y Units"),
		widthUnits:  f.DimensionUnit(prefix + "Width Units"),
		heightUnits: f.DimensionUnit(prefix + "Height Units"),
		xOrigin:     f.HorizontalAlignment(prefix + "X Origin"),
		yOrigin:     f.VerticalAlignment(prefix + "Y Origin"),
	}
}

// placement describes where a box is laid out.
type placement struct {
	// target is the code expression being positioned, e.g. "this.Label"
	target string
	// name identifies the object in diagnostics
	name string
	// parentType is the base type of the parent the object is added to
	parentType string
	// ownerType is the object's own base type
	ownerType string
	// setsAny is true when the state assigns any position or size variable
	setsAny bool
}

// position translates the position and size of sc into Forms layout
// statements. claimed holds the position variables the group assigns.
// Screens are never positioned. Categorized states that leave position
// alone produce nothing, so they do not reset the default layout.
func (g *Generator) position(sc scope, claimed []*core.Variable) []Line {
	if sc.inst == nil && sc.el.Kind == core.KindScreen {
		return nil
	}

	f := g.finder(sc.el, sc.state)
	p := placement{
		target:    sc.target(),
		name:      sc.name(),
		setsAny:   len(claimed) > 0,
		ownerType: sc.el.BaseType,
	}

	var parent *core.Instance
	if sc.inst != nil {
		p.ownerType = sc.inst.BaseType
		parent = sc.el.Instance(f.Text(sc.inst.Name + "." + varParent))
	}
	switch {
	case parent != nil:
		p.parentType = parent.BaseType
	case sc.el.Kind == core.KindScreen:
		p.parentType = "/AbsoluteLayout"
	default:
		p.parentType = sc.el.BaseType
	}

	if !p.setsAny && !sc.el.IsDefault(sc.state) {
		return nil
	}

	b := readBox(f, sc.gumPrefix())
	if strings.HasSuffix(p.parentType, "/AbsoluteLayout") {
		return absoluteLayout(b, p, g.opts)
	}
	return flowLayout(b, p)
}
