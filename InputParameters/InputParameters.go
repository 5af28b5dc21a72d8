package InputParameters

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/edgeflux/model_problems/EdgeFlux1D"
	"github.com/notargets/edgeflux/physics"
)

/*
InputParametersEdge1D mirrors the keys of the run configuration file. Absent
entries are nil and get their defaults in Validate. Integer counts are read as
floating point numbers, so that nx: 1.0e2 is accepted.
*/
type InputParametersEdge1D struct {
	Machine         *string         `json:"machine"`
	GammaC          *float64        `json:"Gamma_c"`
	QC              *float64        `json:"q_c"`
	NX              *float64        `json:"nx"`
	TotalTimeSteps  *float64        `json:"total_timeSteps"`
	TimeStep        *float64        `json:"timeStep"`
	ResTol          *float64        `json:"res_tol"`
	MaxSweeps       *float64        `json:"max_sweeps"`
	MaxRetries      *float64        `json:"max_retries"`
	AlphaSup        *float64        `json:"alpha_sup"`
	Beta            *float64        `json:"beta"`
	ShearA1         *float64        `json:"shear_a1"`
	ShearA2         *float64        `json:"shear_a2"`
	ShearA3         *float64        `json:"shear_a3"`
	NumericalChoice *string         `json:"numerical_choice"`
	DChoice         *string         `json:"D_choice"`
	PaquayInitConds *bool           `json:"paquay_init_conds"`
	InitialHMode    *bool           `json:"initial_H_mode"`
	TaylorModel     *bool           `json:"taylor_model"`
	Channels        map[string]bool `json:"channels"` // keyed by flux channel name, e.g. Gamma_cx: false
	ZSourceScale    *float64        `json:"Z_source_scale"`

	GeneratePlots *bool    `json:"generate_plots"`
	PlotTitle     string   `json:"plot_title"`
	PlotYMax      *float64 `json:"ploty_max"`
	AuxPlots      *bool    `json:"aux_plots"`
	AuxVars       []any    `json:"aux_vars"`
	AuxTitles     []any    `json:"aux_titles"`
	AuxYMin       []any    `json:"aux_ymin"`
	AuxYMax       []any    `json:"aux_ymax"`
	SaveDirectory *string  `json:"save_directory"`
	SavePlots     *bool    `json:"save_plots"`
	SaveTSVs      *bool    `json:"save_TSVs"`
	SaveFrequency *float64 `json:"save_frequency"`
}

func (ip *InputParametersEdge1D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParametersEdge1D) Print() {
	str := func(s *string) string {
		if s == nil {
			return "<default>"
		}
		return *s
	}
	num := func(f *float64) string {
		if f == nil {
			return "<default>"
		}
		return fmt.Sprintf("%g", *f)
	}
	flag := func(b *bool) string {
		if b == nil {
			return "<default>"
		}
		return fmt.Sprintf("%t", *b)
	}
	fmt.Printf("[%s]\t\t= Machine\n", str(ip.Machine))
	fmt.Printf("[%s]\t\t= Taylor model\n", flag(ip.TaylorModel))
	fmt.Printf("[%s]\t\t= Numerical choice\n", str(ip.NumericalChoice))
	fmt.Printf("[%s]\t\t= Diffusivity model\n", str(ip.DChoice))
	fmt.Printf("%s\t\t= Gamma_c\n", num(ip.GammaC))
	fmt.Printf("%s\t\t= q_c\n", num(ip.QC))
	fmt.Printf("%s\t\t= nx\n", num(ip.NX))
	fmt.Printf("%s\t\t= total_timeSteps\n", num(ip.TotalTimeSteps))
	fmt.Printf("%s\t\t= timeStep\n", num(ip.TimeStep))
	fmt.Printf("%s\t\t= res_tol\n", num(ip.ResTol))
	keys := make([]string, 0, len(ip.Channels))
	for k := range ip.Channels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Channels[%s] = %v\n", key, ip.Channels[key])
	}
}

// Validate fills defaults and converts the input into a physics.Config. Each
// defaulted entry is described in notes.
func (ip *InputParametersEdge1D) Validate() (cfg physics.Config, notes []string, err error) {
	var (
		num = &cfg.Numerics
	)
	note := func(format string, args ...any) {
		notes = append(notes, fmt.Sprintf(format, args...))
	}
	cfg = physics.DefaultConfig()

	var machine string
	if ip.Machine != nil {
		machine = *ip.Machine
	}
	if cfg.Machine, err = physics.ParseMachine(machine); err != nil {
		return
	}
	cfg.Geometry = cfg.Machine.Geometry()

	if ip.TaylorModel == nil {
		cfg.ZModel = physics.TaylorModel
		note("Defaulted to using the Taylor-expanded numerical model for Z.")
	} else if *ip.TaylorModel {
		cfg.ZModel = physics.TaylorModel
	} else {
		cfg.ZModel = physics.FluxModel
	}
	taylor := cfg.ZModel == physics.TaylorModel

	if ip.InitialHMode == nil {
		note("Defaulted to starting in L-mode.")
	} else {
		num.InitialHMode = *ip.InitialHMode
	}
	if ip.PaquayInitConds == nil {
		num.PaquayInitConds = true
		note("The initial conditions are set to Paquay's form.")
	} else {
		num.PaquayInitConds = *ip.PaquayInitConds
	}

	if ip.GammaC == nil {
		cfg.GammaC = -4.0 / 5.0
		note("Gamma_c defaulted to -0.8")
	} else {
		cfg.GammaC = *ip.GammaC
	}
	if ip.QC == nil {
		cfg.QC = 5.0 * cfg.GammaC
		note("q_c defaulted to 5.0 * Gamma_c")
	} else {
		cfg.QC = *ip.QC
	}

	if ip.NumericalChoice == nil {
		note("Numerical choice defaulted to Staps' set.")
	} else if cfg.Preset, err = physics.ParsePreset(*ip.NumericalChoice); err != nil {
		return
	}

	if ip.DChoice == nil {
		note("Diffusivity model defaulted to Staps'.")
	} else if cfg.Diffusivity, err = physics.ParseDiffusivityModel(*ip.DChoice); err != nil {
		return
	}
	for _, p := range []struct {
		in     *float64
		out    *float64
		name   string
		defval float64
		model  physics.DiffusivityModel
	}{
		{ip.AlphaSup, &cfg.DParams.AlphaSup, "suppression coefficient alpha_sup", 0.5, physics.DStaps},
		{ip.Beta, &cfg.DParams.Beta, "electric field shear exponent beta", 2.0, physics.DStaps},
		{ip.ShearA1, &cfg.DParams.ShearA1, "flow-shear parameter a1", 1.0, physics.DFlowShear},
		{ip.ShearA2, &cfg.DParams.ShearA2, "flow-shear parameter a2", 0.0, physics.DFlowShear},
		{ip.ShearA3, &cfg.DParams.ShearA3, "flow-shear parameter a3", 0.5, physics.DFlowShear},
	} {
		if p.in == nil {
			*p.out = p.defval
			if p.model == cfg.Diffusivity {
				note("The %s is defaulted to %g.", p.name, p.defval)
			}
			continue
		}
		if err = finite(p.name, *p.in); err != nil {
			return
		}
		*p.out = *p.in
	}

	if num.NX, err = count(ip.NX, "nx", 100, note); err != nil {
		return
	}
	if num.TotalTimeSteps, err = count(ip.TotalTimeSteps, "total_timeSteps", 100, note); err != nil {
		return
	}
	if num.MaxSweeps, err = count(ip.MaxSweeps, "max_sweeps", 10, note); err != nil {
		return
	}
	if ip.MaxRetries == nil || *ip.MaxRetries < 0 {
		num.MaxRetries = 4
	} else {
		num.MaxRetries = int(*ip.MaxRetries)
	}

	dtDefault, tolDefault := 1.0e-8, 1.0e14
	if taylor {
		dtDefault, tolDefault = 1.0/375.0, 1.0e-6
	}
	if num.TimeStep, err = positive(ip.TimeStep, "timeStep", dtDefault, note); err != nil {
		return
	}
	if num.ResTol, err = positive(ip.ResTol, "res_tol", tolDefault, note); err != nil {
		return
	}

	if ip.Channels != nil {
		sw := map[string]*bool{
			EdgeFlux1D.Anomalous.String():      &cfg.Channels.Anomalous,
			EdgeFlux1D.ChargeExchange.String(): &cfg.Channels.ChargeExchange,
			EdgeFlux1D.BulkViscosity.String():  &cfg.Channels.BulkViscosity,
			EdgeFlux1D.OrbitLoss.String():      &cfg.Channels.OrbitLoss,
		}
		for name, on := range ip.Channels {
			p, ok := sw[name]
			if !ok {
				err = &physics.ConfigurationError{Field: "channels", Value: name, Reason: "unknown flux channel"}
				return
			}
			*p = on
		}
	}
	if ip.ZSourceScale != nil {
		if err = finite("Z_source_scale", *ip.ZSourceScale); err != nil {
			return
		}
		cfg.ZSourceScale = *ip.ZSourceScale
	}
	return
}

func finite(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return &physics.ConfigurationError{Field: name, Value: val, Reason: "must be finite"}
	}
	return nil
}

func count(in *float64, name string, defval int, note func(string, ...any)) (n int, err error) {
	if in == nil || *in <= 0 {
		note("%s defaulted to %d.", name, defval)
		return defval, nil
	}
	if err = finite(name, *in); err != nil {
		return
	}
	return int(*in), nil
}

func positive(in *float64, name string, defval float64, note func(string, ...any)) (v float64, err error) {
	if in == nil || *in <= 0 {
		note("The %s is defaulted to %g.", name, defval)
		return defval, nil
	}
	if err = finite(name, *in); err != nil {
		return
	}
	return *in, nil
}

// Output converts the plotting and saving entries. Aux variables that are not
// strings are dropped; unknown names are rejected.
func (ip *InputParametersEdge1D) Output() (opts EdgeFlux1D.OutputOptions, notes []string, err error) {
	note := func(format string, args ...any) {
		notes = append(notes, fmt.Sprintf(format, args...))
	}
	if ip.GeneratePlots == nil || !*ip.GeneratePlots {
		note("NOTE! The plots are NOT going to be generated.")
	}
	opts.PlotTitle = ip.PlotTitle
	opts.PlotYMax = ip.PlotYMax
	if ip.SaveDirectory != nil {
		opts.SaveDirectory = *ip.SaveDirectory
	}
	opts.SavePlots = ip.SavePlots != nil && *ip.SavePlots && ip.GeneratePlots != nil && *ip.GeneratePlots
	opts.SaveTSVs = ip.SaveTSVs != nil && *ip.SaveTSVs
	if opts.SaveDirectory == "" && (opts.SaveTSVs || (ip.SavePlots != nil && *ip.SavePlots)) {
		err = &physics.ConfigurationError{Field: "save_directory", Value: "",
			Reason: "no directory specified for saving specified files"}
		return
	}
	if ip.SaveFrequency != nil && *ip.SaveFrequency > 0 {
		opts.SaveFrequency = int(*ip.SaveFrequency)
	}

	if ip.AuxPlots == nil || !*ip.AuxPlots || ip.AuxVars == nil {
		return
	}
	known := make(map[string]bool)
	for _, name := range EdgeFlux1D.DiagnosticNames() {
		known[name] = true
	}
	for i, v := range ip.AuxVars {
		name, ok := v.(string)
		if !ok {
			note("aux_vars entry %v is not a name and was removed.", v)
			continue
		}
		if !known[name] {
			err = &physics.ConfigurationError{Field: "aux_vars", Value: name,
				Reason: "known names are " + strings.Join(EdgeFlux1D.DiagnosticNames(), ", ")}
			return
		}
		opts.AuxVars = append(opts.AuxVars, name)
		var title string
		if i < len(ip.AuxTitles) {
			title, _ = ip.AuxTitles[i].(string)
		}
		opts.AuxTitles = append(opts.AuxTitles, title)
		opts.AuxYMin = append(opts.AuxYMin, limit(ip.AuxYMin, i))
		opts.AuxYMax = append(opts.AuxYMax, limit(ip.AuxYMax, i))
	}
	return
}

func limit(v []any, i int) *float64 {
	if i >= len(v) {
		return nil
	}
	if f, ok := v[i].(float64); ok {
		return &f
	}
	return nil
}
