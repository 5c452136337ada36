package config

import (
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/jsvensson/chromapick/internal/color"
	"github.com/jsvensson/chromapick/internal/picker"
)

// makeConvertFunc creates an HCL function that rewrites a color in a picker
// space. Usage: convert("#ff8800", "oklch") or convert(palette.accent, "hsl")
func makeConvertFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Converts a color to the canonical string of a picker space",
		Params: []function.Parameter{
			{
				Name: "color",
				Type: cty.String,
			},
			{
				Name: "space",
				Type: cty.String,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			text, err := ConvertColor(args[0].AsString(), args[1].AsString(), color.Clip)
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(text), nil
		},
	})
}

// ConvertColor returns the canonical string of text in the display space
// named space, as the picker would show it after selecting that space.
func ConvertColor(text, space string, method color.GamutMethod) (string, error) {
	s, err := picker.ParseSpace(space)
	if err != nil {
		return "", err
	}

	p := picker.New(picker.WithGamutMap(method))
	if err := p.SetColor(text); err != nil {
		return "", err
	}
	p.SelectSpace(s)
	return p.Color(), nil
}

// makeContrastFunc creates an HCL function returning "white" or "black".
func makeContrastFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Returns white or black, whichever contrasts more with the color",
		Params: []function.Parameter{
			{
				Name: "color",
				Type: cty.String,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			return cty.StringVal(color.ContrastColor(args[0].AsString())), nil
		},
	})
}

// makeGamutFunc creates an HCL function returning the color's gamut label.
func makeGamutFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Returns the narrowest of srgb, p3, rec2020 and xyz containing the color",
		Params: []function.Parameter{
			{
				Name: "color",
				Type: cty.String,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			return cty.StringVal(color.GamutOf(args[0].AsString())), nil
		},
	})
}

// makeHexFunc creates an HCL function returning the sRGB hex of a color.
func makeHexFunc() function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{
				Name: "color",
				Type: cty.String,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			hex, err := color.Hex(args[0].AsString())
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(hex), nil
		},
	})
}
