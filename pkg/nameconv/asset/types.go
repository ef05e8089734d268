// Package asset holds the Colorium asset vocabulary: the asset type table,
// the default Colorium naming convention and typed decoding of its matches.
package asset

// Type describes one kind of asset. Code is the three-letter token used in
// names; Dir is the per-type subdirectory used by save, publish and export
// locations.
type Type struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Dir  string `json:"dir"`
}

// The asset types, in display order.
var (
	None       = Type{Code: "non", Name: "None", Dir: "nones"}
	Model      = Type{Code: "mdl", Name: "Model", Dir: "models"}
	Animation  = Type{Code: "anm", Name: "Animation", Dir: "animations"}
	Rig        = Type{Code: "rig", Name: "Rig", Dir: "rigs"}
	Layout     = Type{Code: "lay", Name: "Layout", Dir: "layouts"}
	Proxy      = Type{Code: "prx", Name: "Proxy", Dir: "proxies"}
	Simulation = Type{Code: "sim", Name: "Simulation", Dir: "simulations"}
	Render     = Type{Code: "rnd", Name: "Render", Dir: "renders"}
	Test       = Type{Code: "tst", Name: "Test", Dir: "tests"}
	Kit        = Type{Code: "kit", Name: "Kit", Dir: "kits"}
	Camera     = Type{Code: "cam", Name: "Camera", Dir: "cameras"}
	Lighting   = Type{Code: "ltg", Name: "Lighting", Dir: "lightings"}
)

var types = []Type{
	None, Model, Animation, Rig, Layout, Proxy,
	Simulation, Render, Test, Kit, Camera, Lighting,
}

// Types returns every asset type in display order.
func Types() []Type {
	out := make([]Type, len(types))
	copy(out, types)
	return out
}

// Codes returns the code of every asset type in display order.
func Codes() []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.Code
	}
	return out
}

// Names returns the display name of every asset type in display order.
func Names() []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.Name
	}
	return out
}

// TypeByCode returns the type with the given code, or None.
func TypeByCode(code string) Type {
	t, _ := LookupCode(code)
	return t
}

// TypeByName returns the type with the given display name, or None.
func TypeByName(name string) Type {
	for _, t := range types {
		if t.Name == name {
			return t
		}
	}
	return None
}

// LookupCode is like TypeByCode but also reports whether the code is known.
func LookupCode(code string) (Type, bool) {
	for _, t := range types {
		if t.Code == code {
			return t, true
		}
	}
	return None, false
}
