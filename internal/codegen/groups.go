package codegen

import "github.com/leapstack-labs/gumcodegen/pkg/core"

// variableGroups emits the Forms statements that combine several document
// variables. Text gets its color channels and bold flag merged; every
// positioned object gets the layout translation.
func (g *Generator) variableGroups(sc scope, p partition) []Line {
	var out []Line
	if g.standardOf(sc) == "Text" {
		out = append(out, g.textColor(sc, p.color)...)
		out = append(out, g.position(sc, p.position)...)
		out = append(out, g.bold(sc)...)
	} else {
		out = append(out, g.position(sc, p.position)...)
	}

	if sc.inst != nil && (g.isFormsType(sc.inst, "StackLayout") ||
		g.isFormsType(sc.inst, "AbsoluteLayout") ||
		g.isFormsType(sc.inst, "Frame")) {
		clips := g.finder(sc.el, sc.state).Bool(sc.gumPrefix() + varClipsChildren)
		out = append(out, Linef("%s.IsClippedToBounds = %t;", sc.target(), clips))
	}
	return out
}

// textColor merges the Red, Green, Blue and Alpha channels into one
// TextColor, but only when the group sets at least one of them.
func (g *Generator) textColor(sc scope, claimed []*core.Variable) []Line {
	if len(claimed) == 0 {
		return nil
	}
	f := g.finder(sc.el, sc.state)
	prefix := sc.gumPrefix()
	return []Line{Linef("%s.TextColor = Color.FromRgba(%d, %d, %d, %d);", sc.target(),
		f.Int(prefix+"Red"), f.Int(prefix+"Green"), f.Int(prefix+"Blue"), f.Int(prefix+"Alpha"))}
}

// bold reads IsBold from the state only, not from its inheritance chain.
func (g *Generator) bold(sc scope) []Line {
	v := sc.state.Variable(sc.gumPrefix() + varIsBold)
	if v == nil {
		return nil
	}
	if b, ok := v.Value.(core.Bool); !ok || !bool(b) {
		return nil
	}
	return []Line{Linef("%s.FontAttributes = Xamarin.Forms.FontAttributes.Bold;", sc.target())}
}
