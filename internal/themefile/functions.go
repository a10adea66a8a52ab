package themefile

import (
	"sort"

	"github.com/apparebit/pitty"
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// adjustLightness shifts a color's revised lightness by the given amount,
// leaving chroma and hue alone. The result serializes in cartesian Oklrab:
// an achromatic color has a not-a-number hue, which renders as "none" and
// does not parse back.
func adjustLightness(text string, amount float64) (string, error) {
	color, err := pitty.Parse(text)
	if err != nil {
		return "", err
	}

	coords := color.To(pitty.Oklrch).Coordinates()
	adjusted := pitty.New(pitty.Oklrch, clampUnit(coords[0]+amount), coords[1], coords[2])
	return adjusted.To(pitty.Oklrab).String(), nil
}

// makeLightenFunc creates an HCL function that lightens a color.
// Usage: lighten("#hex", 0.1) or lighten(palette.love, 0.1)
func makeLightenFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Lightens a color by the given fraction of total lightness (0.0 to 1.0)",
		Params: []function.Parameter{
			{Name: "color", Type: cty.String},
			{Name: "amount", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			amount, _ := args[1].AsBigFloat().Float64()
			result, err := adjustLightness(args[0].AsString(), amount)
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(result), nil
		},
	})
}

// makeDarkenFunc creates an HCL function that darkens a color.
// Usage: darken("#hex", 0.1) or darken(palette.love, 0.1)
func makeDarkenFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Darkens a color by the given fraction of total lightness (0.0 to 1.0)",
		Params: []function.Parameter{
			{Name: "color", Type: cty.String},
			{Name: "amount", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			amount, _ := args[1].AsBigFloat().Float64()
			result, err := adjustLightness(args[0].AsString(), -amount)
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(result), nil
		},
	})
}

// mixColors interpolates from one color towards another in Oklrab, with the
// weight giving the second color's share.
func mixColors(text1, text2 string, weight float64) (string, error) {
	color1, err := pitty.Parse(text1)
	if err != nil {
		return "", err
	}
	color2, err := pitty.Parse(text2)
	if err != nil {
		return "", err
	}

	weight = clampUnit(weight)
	coords1 := color1.To(pitty.Oklrab).Coordinates()
	coords2 := color2.To(pitty.Oklrab).Coordinates()

	var mixed [3]float64
	for index := range mixed {
		mixed[index] = (1-weight)*coords1[index] + weight*coords2[index]
	}
	return pitty.New(pitty.Oklrab, mixed[0], mixed[1], mixed[2]).String(), nil
}

// makeMixFunc creates an HCL function that mixes two colors.
// Usage: mix(palette.base, "#ffffff", 0.25)
func makeMixFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Mixes two colors, with the weight giving the second color's share (0.0 to 1.0)",
		Params: []function.Parameter{
			{Name: "color1", Type: cty.String},
			{Name: "color2", Type: cty.String},
			{Name: "weight", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			weight, _ := args[2].AsBigFloat().Float64()
			result, err := mixColors(args[0].AsString(), args[1].AsString(), weight)
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(result), nil
		},
	})
}

func colorFunctions() map[string]function.Function {
	return map[string]function.Function{
		"lighten": makeLightenFunc(),
		"darken":  makeDarkenFunc(),
		"mix":     makeMixFunc(),
	}
}

// functionContext returns an evaluation context with the color functions
// but no variables, for evaluating the palette block itself.
func functionContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: colorFunctions(),
	}
}

// paletteToCty converts the palette to a cty object for the evaluation
// context. Entries serialize in CSS-like notation, which parses back into
// the same color space.
func paletteToCty(palette map[string]pitty.Color) cty.Value {
	if len(palette) == 0 {
		return cty.EmptyObjectVal
	}

	keys := make([]string, 0, len(palette))
	for key := range palette {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	vals := make(map[string]cty.Value, len(palette))
	for _, key := range keys {
		vals[key] = cty.StringVal(palette[key].String())
	}
	return cty.ObjectVal(vals)
}

// buildEvalContext creates an evaluation context with palette variables and
// the color functions.
func buildEvalContext(palette map[string]pitty.Color) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette": paletteToCty(palette),
		},
		Functions: colorFunctions(),
	}
}

// EvalContext returns the evaluation context for theme expressions: the
// palette variable plus the color functions. A nil palette yields a context
// with functions only, which is how the palette block itself is evaluated.
// Tools that analyze theme files outside this package share the context so
// they agree with the loader on what an expression means.
func EvalContext(palette map[string]pitty.Color) *hcl.EvalContext {
	if palette == nil {
		return functionContext()
	}
	return buildEvalContext(palette)
}
