package physics

import (
	"strings"
)

// Preset selects the closure coefficient set of the Taylor-expanded Z equation.
type Preset uint8

const (
	Staps Preset = iota
	Paquay
)

var presetNames = []string{"Staps", "Paquay"}

func (p Preset) String() string {
	if int(p) < len(presetNames) {
		return presetNames[p]
	}
	return "Unknown"
}

// ParsePreset matches names by value, case-insensitively.
func ParsePreset(name string) (p Preset, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "staps":
		return Staps, nil
	case "paquay":
		return Paquay, nil
	}
	err = configError("numerical_choice", name, "known presets are Staps, Paquay")
	return
}

// ClosureCoefficients are the preset-dependent constants of the Z equation.
type ClosureCoefficients struct {
	CN, CT  float64
	A, B, C float64
	ZS      float64
}

func (p Preset) Coefficients() ClosureCoefficients {
	switch p {
	case Paquay:
		return ClosureCoefficients{CN: 1.1, CT: 0.9, A: -1.5, B: 1.0, C: -1.0, ZS: 1.4}
	default:
		return ClosureCoefficients{CN: -1.1, CT: -0.9, A: 3.0 / 2.0, B: 2.0, C: -1.0, ZS: -3.0 / 2.0}
	}
}

type DiffusivityModel uint8

const (
	DZohm DiffusivityModel = iota
	DStaps
	DFlowShear
	DWeymiensL
)

var diffusivityNames = []string{"Zohm", "Staps", "Flow-Shear", "Weymiens_L"}

func (d DiffusivityModel) String() string {
	if int(d) < len(diffusivityNames) {
		return diffusivityNames[d]
	}
	return "Unknown"
}

func ParseDiffusivityModel(name string) (d DiffusivityModel, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "d_zohm", "zohm":
		return DZohm, nil
	case "d_staps", "staps":
		return DStaps, nil
	case "d_shear", "d_flow_shear", "d_flow-shear", "flow_shear", "flow-shear", "shear":
		return DFlowShear, nil
	case "d_weymiens_l", "weymiens_l", "weymiens":
		return DWeymiensL, nil
	}
	err = configError("D_choice", name, "known models are Zohm, Staps, Flow-Shear, Weymiens_L")
	return
}

// ZModel selects the form of the Z equation source.
type ZModel uint8

const (
	FluxModel ZModel = iota
	TaylorModel
)

func (z ZModel) String() string {
	if z == TaylorModel {
		return "Taylor-expanded"
	}
	return "Full flux"
}

// Machine is a named tokamak geometry.
type Machine uint8

const (
	ASDEXUpgrade Machine = iota
	ITER
)

func (m Machine) String() string {
	if m == ITER {
		return "ITER"
	}
	return "ASDEX-Upgrade"
}

func ParseMachine(name string) (m Machine, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "asdex", "asdex-u", "asdex-upgrade", "aug":
		return ASDEXUpgrade, nil
	case "iter":
		return ITER, nil
	}
	err = configError("machine", name, "known machines are ASDEX-Upgrade, ITER")
	return
}
