package physics

// Geometry holds the machine inputs from which the field and aspect ratio are derived.
type Geometry struct {
	AVertical     float64 // vertical minor radius [m]
	AHorizontal   float64 // horizontal minor radius [m]
	MinorRadius   float64 // mean minor radius [m], derived from AVertical and AHorizontal when zero
	MajorRadius   float64 // [m]
	PlasmaCurrent float64 // I_phi [A]
	ToroidalField float64 // B_phi [T]
}

func (m Machine) Geometry() Geometry {
	switch m {
	case ITER:
		return Geometry{
			MinorRadius:   2.0,
			MajorRadius:   6.2,
			PlasmaCurrent: 15.0e6,
			ToroidalField: 5.3,
		}
	default:
		return Geometry{
			AVertical:     0.8,
			AHorizontal:   0.5,
			MajorRadius:   1.65,
			PlasmaCurrent: 1.6e6,
			ToroidalField: 3.1,
		}
	}
}

// DiffusivityParams are the free coefficients of the diffusivity models.
type DiffusivityParams struct {
	AlphaSup float64 // suppression coefficient, Staps
	Beta     float64 // exponent of Z', Staps
	ShearA1  float64
	ShearA2  float64
	ShearA3  float64
}

// ChannelSwitches enable the flux channels that feed the aggregate flux.
type ChannelSwitches struct {
	Anomalous      bool
	ChargeExchange bool
	BulkViscosity  bool
	OrbitLoss      bool
}

func AllChannels() ChannelSwitches {
	return ChannelSwitches{true, true, true, true}
}

// Numerics are the time stepping controls of the transport solver.
type Numerics struct {
	NX              int
	TotalTimeSteps  int
	TimeStep        float64
	ResTol          float64
	MaxSweeps       int
	MaxRetries      int
	InitialHMode    bool
	PaquayInitConds bool
}

// Config is the validated, immutable run configuration. It is built once by
// InputParameters and passed by value from then on.
type Config struct {
	Machine      Machine
	Geometry     Geometry
	Preset       Preset
	Diffusivity  DiffusivityModel
	DParams      DiffusivityParams
	ZModel       ZModel
	GammaC       float64 // core particle flux
	QC           float64 // core heat flux
	Channels     ChannelSwitches
	ZSourceScale float64 // couples the aggregate flux into the Z equation
	Numerics     Numerics
}

// DefaultConfig is the ASDEX-Upgrade full flux model with Staps' closure set.
func DefaultConfig() Config {
	return Config{
		Machine:     ASDEXUpgrade,
		Geometry:    ASDEXUpgrade.Geometry(),
		Preset:      Staps,
		Diffusivity: DStaps,
		DParams: DiffusivityParams{
			AlphaSup: 0.5,
			Beta:     2.0,
			ShearA1:  1.0,
			ShearA2:  0.0,
			ShearA3:  0.5,
		},
		ZModel:       FluxModel,
		GammaC:       -1.0e22,
		QC:           5.0e2 * -1.0e22,
		Channels:     AllChannels(),
		ZSourceScale: 1.0e-20,
		Numerics: Numerics{
			NX:             100,
			TotalTimeSteps: 100,
			TimeStep:       1.0e-8,
			ResTol:         1.0e14,
			MaxSweeps:      10,
			MaxRetries:     4,
		},
	}
}
