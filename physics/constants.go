package physics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/unit"
	"gonum.org/v1/gonum/unit/constant"
)

const (
	// CODATA 2018
	ElectronMass = 9.1093837015e-31  // [kg]
	ProtonMass   = 1.67262192369e-27 // [kg]
	// Adiabatic index, monoatomic
	AdiabaticIndex = 5.0 / 3.0
)

/*
ConstantSet holds every scalar the coefficient evaluator and the transport
solver consume. It is derived once from a Config and only read afterwards;
consumers take it by value.
*/
type ConstantSet struct {
	Charge, ME, MI     float64 // [C], [kg], [kg]
	Epsilon0, Mu0      float64
	Gamma              float64
	AM, R              float64 // mean minor and major radius [m]
	IPhi               float64 // [A]
	BPhi, BTheta, B    float64 // toroidal, poloidal, total field [T]
	Aspect, Q          float64 // a_m/R, safety factor
	Aspect32           float64 // aspect^(3/2)
	SqrtAspect         float64
	RhoPiFactor        float64 // m_i/(e B_theta), rho_pi = RhoPiFactor v_Ti
	RhoPeFactor        float64 // m_e/(e B_theta)
	QR                 float64 // q R
	SqrtMassRatio      float64 // sqrt(m_e/m_i)
	Preset             Preset
	Closure            ClosureCoefficients
	Diffusivity        DiffusivityModel
	DParams            DiffusivityParams
	ZModel             ZModel
	L                  float64 // domain length
	LambdaN, LambdaT   float64 // edge decay lengths
	LambdaZ            float64
	Mu                 float64 // viscosity of the Z equation
	DMax, DMin         float64
	Epsilon            float64 // transient coefficient of the Z equation
	Zeta               float64 // particle-heat coupling, chi = D/zeta
	AlphaAn, AlphaCX   float64
	GammaC, QC         float64
	Channels           ChannelSwitches
	ZSourceScale       float64
	NeutralStep        float64 // position of the neutral density step [m]
	NeutralSharpness   float64 // [m^-1]
	NeutralFluxFactor  float64 // fraction of the core flux forming the neutral source
	CollisionFactor    float64 // nu_ei = CollisionFactor n / T^(3/2)
	IonCollisionFactor float64 // nu_ii = IonCollisionFactor sqrt(m_e/m_i) nu_ei
}

func NewConstantSet(cfg Config) (cs ConstantSet, err error) {
	if cfg.Preset > Paquay {
		err = configError("numerical_choice", int(cfg.Preset), "unknown preset")
		return
	}
	if cfg.Diffusivity > DWeymiensL {
		err = configError("D_choice", int(cfg.Diffusivity), "unknown diffusivity model")
		return
	}
	if cfg.ZModel > TaylorModel {
		err = configError("taylor_model", int(cfg.ZModel), "unknown Z equation model")
		return
	}
	g := cfg.Geometry
	am := g.MinorRadius
	if am == 0 {
		if err = positive("a_v", g.AVertical); err != nil {
			return
		}
		if err = positive("a_h", g.AHorizontal); err != nil {
			return
		}
		am = math.Sqrt((g.AVertical*g.AVertical + g.AHorizontal*g.AHorizontal) / 2.0)
	}
	for _, p := range []struct {
		name string
		val  float64
	}{
		{"a_m", am},
		{"R", g.MajorRadius},
		{"I_phi", g.PlasmaCurrent},
		{"B_phi", g.ToroidalField},
	} {
		if err = positive(p.name, p.val); err != nil {
			return
		}
	}
	cs = ConstantSet{
		Charge:   float64(constant.ElementaryCharge),
		ME:       ElectronMass,
		MI:       ProtonMass,
		Epsilon0: float64(constant.ElectricConstant),
		Mu0:      float64(constant.MagneticConstant),
		Gamma:    AdiabaticIndex,
		AM:       am,
		R:        g.MajorRadius,
		IPhi:     g.PlasmaCurrent,
		BPhi:     g.ToroidalField,
	}
	cs.BTheta = cs.Mu0 * cs.IPhi / (2 * math.Pi * cs.AM)
	if err = positive("B_theta", cs.BTheta); err != nil {
		return
	}
	cs.B = math.Sqrt(cs.BPhi*cs.BPhi + cs.BTheta*cs.BTheta)
	cs.Aspect = cs.AM / cs.R
	cs.Q = cs.Aspect * cs.BPhi / cs.BTheta
	cs.QR = cs.Q * cs.R
	if err = positive("q R", cs.QR); err != nil {
		return
	}
	cs.Aspect32 = math.Sqrt(cs.Aspect * cs.Aspect * cs.Aspect)
	cs.SqrtAspect = math.Sqrt(cs.Aspect)
	cs.RhoPiFactor = cs.MI / (cs.Charge * cs.BTheta)
	cs.RhoPeFactor = cs.ME / (cs.Charge * cs.BTheta)
	cs.SqrtMassRatio = math.Sqrt(cs.ME / cs.MI)

	cs.Preset = cfg.Preset
	cs.Closure = cfg.Preset.Coefficients()
	cs.Diffusivity = cfg.Diffusivity
	cs.DParams = cfg.DParams
	cs.ZModel = cfg.ZModel
	if cfg.ZModel == TaylorModel {
		cs.L, cs.LambdaN, cs.LambdaT, cs.LambdaZ = 4.0, 5.0/4.0, 3.0/2.0, 5.0/4.0
	} else {
		cs.L, cs.LambdaN, cs.LambdaT, cs.LambdaZ = 0.05, 0.01, 0.0125, 0.01
	}
	cs.Mu = 1.0 / 20.0
	cs.DMax, cs.DMin = 5.0, 2.0/5.0
	cs.Epsilon = 1.0 / 25.0
	cs.Zeta = 0.5
	cs.AlphaAn, cs.AlphaCX = 1.5, 1.5
	cs.NeutralStep, cs.NeutralSharpness, cs.NeutralFluxFactor = 0.02, 1.0e3, 0.1
	cs.CollisionFactor, cs.IonCollisionFactor = 4.2058e-11, 1.2

	if math.IsNaN(cfg.GammaC) || math.IsInf(cfg.GammaC, 0) {
		err = configError("Gamma_c", cfg.GammaC, "must be finite")
		return
	}
	if math.IsNaN(cfg.QC) || math.IsInf(cfg.QC, 0) {
		err = configError("q_c", cfg.QC, "must be finite")
		return
	}
	cs.GammaC, cs.QC = cfg.GammaC, cfg.QC
	cs.Channels = cfg.Channels
	cs.ZSourceScale = cfg.ZSourceScale
	return
}

func positive(name string, val float64) error {
	if !(val > 0) || math.IsInf(val, 0) {
		return configError(name, val, "must be positive and finite")
	}
	return nil
}

// Map returns the scalar constants keyed by their conventional names.
func (cs ConstantSet) Map() map[string]float64 {
	return map[string]float64{
		"charge":    cs.Charge,
		"m_e":       cs.ME,
		"m_i":       cs.MI,
		"epsilon_0": cs.Epsilon0,
		"mu_0":      cs.Mu0,
		"gamma":     cs.Gamma,
		"a_m":       cs.AM,
		"R":         cs.R,
		"I_phi":     cs.IPhi,
		"B_phi":     cs.BPhi,
		"B_theta":   cs.BTheta,
		"B":         cs.B,
		"aspect":    cs.Aspect,
		"q":         cs.Q,
		"c_n":       cs.Closure.CN,
		"c_T":       cs.Closure.CT,
		"a":         cs.Closure.A,
		"b":         cs.Closure.B,
		"c":         cs.Closure.C,
		"Z_S":       cs.Closure.ZS,
		"L":         cs.L,
		"lambda_n":  cs.LambdaN,
		"lambda_T":  cs.LambdaT,
		"lambda_Z":  cs.LambdaZ,
		"mu":        cs.Mu,
		"D_max":     cs.DMax,
		"D_min":     cs.DMin,
		"epsilon":   cs.Epsilon,
		"zeta":      cs.Zeta,
		"alpha_an":  cs.AlphaAn,
		"alpha_cx":  cs.AlphaCX,
		"Gamma_c":   cs.GammaC,
		"q_c":       cs.QC,
	}
}

func (cs ConstantSet) Print() {
	fmt.Printf("%v\t\t= Mean minor radius a_m\n", unit.Length(cs.AM))
	fmt.Printf("%v\t\t= Major radius R\n", unit.Length(cs.R))
	fmt.Printf("%v\t\t= Plasma current I_phi\n", unit.Current(cs.IPhi))
	fmt.Printf("%v\t\t= Ion mass m_i\n", unit.Mass(cs.MI))
	fmt.Printf("[%s]\t\t\t= Closure preset\n", cs.Preset)
	fmt.Printf("[%s]\t\t\t= Diffusivity model\n", cs.Diffusivity)
	fmt.Printf("[%s]\t\t= Z equation\n", cs.ZModel)
	m := cs.Map()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("%-10s = %12.5e\n", key, m[key])
	}
}
