package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/gumcodegen/pkg/units"
)

func TestFlowLayout(t *testing.T) {
	tests := []struct {
		name   string
		modify func(b *box, p *placement)
		want   []string
	}{
		{
			name: "absolute size and pixel offsets",
			modify: func(b *box, _ *placement) {
				b.x, b.y = 5, 10
			},
			want: []string{
				"this.Label.WidthRequest = 100f * 1.0f;",
				"this.Label.HeightRequest = 50f * 1.0f;",
				"this.Label.Margin = new Thickness(5, 10, 0, 0);",
				"this.Label.HorizontalOptions = LayoutOptions.Start;",
				"this.Label.VerticalOptions = LayoutOptions.Start;",
			},
		},
		{
			name: "width relative to container fills with opposite margin",
			modify: func(b *box, _ *placement) {
				b.x = 10
				b.width = -20
				b.widthUnits = units.RelativeToContainer
			},
			want: []string{
				"this.Label.HeightRequest = 50f * 1.0f;",
				"this.Label.Margin = new Thickness(10, 0, 10, 0);",
				"this.Label.HorizontalOptions = LayoutOptions.Fill;",
				"this.Label.VerticalOptions = LayoutOptions.Start;",
			},
		},
		{
			name: "height relative to children grows the bottom margin",
			modify: func(b *box, _ *placement) {
				b.y = 10
				b.height = 20
				b.heightUnits = units.RelativeToChildren
			},
			want: []string{
				"this.Label.WidthRequest = 100f * 1.0f;",
				"this.Label.Margin = new Thickness(0, 10, 0, 10);",
				"this.Label.HorizontalOptions = LayoutOptions.Start;",
				"this.Label.VerticalOptions = LayoutOptions.Start;",
			},
		},
		{
			name: "stack parents get no bottom margin",
			modify: func(b *box, p *placement) {
				b.y = 10
				b.height = 20
				b.heightUnits = units.RelativeToChildren
				p.parentType = "XamarinForms/StackLayout"
			},
			want: []string{
				"this.Label.WidthRequest = 100f * 1.0f;",
				"this.Label.Margin = new Thickness(0, 10, 0, 0);",
				"this.Label.HorizontalOptions = LayoutOptions.Start;",
				"this.Label.VerticalOptions = LayoutOptions.Start;",
			},
		},
		{
			name: "centered fill splits the width across both margins",
			modify: func(b *box, _ *placement) {
				b.width = -40
				b.widthUnits = units.RelativeToContainer
				b.xUnits = units.PixelsFromCenterX
				b.xOrigin = units.HorizontalCenter
				b.yUnits = units.PixelsFromCenterY
				b.yOrigin = units.VerticalCenter
			},
			want: []string{
				"this.Label.HeightRequest = 50f * 1.0f;",
				"this.Label.Margin = new Thickness(20, 0, 20, 0);",
				"this.Label.HorizontalOptions = LayoutOptions.Fill;",
				"this.Label.VerticalOptions = LayoutOptions.Center;",
			},
		},
		{
			name: "font scaled sizes and right alignment",
			modify: func(b *box, p *placement) {
				b.widthUnits = units.AbsoluteMultipliedByFontScale
				b.xUnits = units.PixelsFromRight
				b.xOrigin = units.Right
				p.setsAny = false
			},
			want: []string{
				"this.Label.WidthRequest = 100f * RenderingLibrary.SystemManagers.GlobalFontScale;",
				"this.Label.HeightRequest = 50f * 1.0f;",
				"this.Label.HorizontalOptions = LayoutOptions.End;",
				"this.Label.VerticalOptions = LayoutOptions.Start;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := labelBox()
			p := placement{target: "this.Label", name: "Label", parentType: "Container", ownerType: "Text", setsAny: true}
			tt.modify(&b, &p)
			assert.Equal(t, tt.want, toStrings(flowLayout(b, p)))
		})
	}
}

func TestFlowLayout_AbsoluteLayoutSizedToChildren(t *testing.T) {
	b := labelBox()
	b.heightUnits = units.RelativeToChildren
	p := placement{target: "this.Panel", name: "Panel", parentType: "Container", ownerType: "XamarinForms/AbsoluteLayout", setsAny: true}

	got := toStrings(flowLayout(b, p))

	assert.Contains(t, got, "Error: The object Panel uses a HeightUnits of RelativeToChildren, but it is an AbsoluteLayout which is not supported in Xamarin.Forms")
	assert.Contains(t, got, "this.Panel.Margin = new Thickness(0, 0, 0, 50);", "generation continues after the diagnostic")
}

func TestFlowLayout_VerticalCenterKeysOnHorizontalOrigin(t *testing.T) {
	tests := []struct {
		name    string
		xOrigin units.HorizontalAlignment
		yOrigin units.VerticalAlignment
		want    string
	}{
		{"both centered", units.HorizontalCenter, units.VerticalCenter, "this.Label.VerticalOptions = LayoutOptions.Center;"},
		{"only x origin centered", units.HorizontalCenter, units.Top, "this.Label.VerticalOptions = LayoutOptions.Center;"},
		{"only y origin centered", units.Left, units.VerticalCenter, "this.Label.VerticalOptions = LayoutOptions.Start;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := labelBox()
			b.yUnits = units.PixelsFromCenterY
			b.xOrigin = tt.xOrigin
			b.yOrigin = tt.yOrigin
			p := placement{target: "this.Label", name: "Label", parentType: "Container", ownerType: "Text", setsAny: true}

			got := toStrings(flowLayout(b, p))
			assert.Equal(t, tt.want, got[len(got)-1])
		})
	}
}
