package EdgeFlux1D

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/edgeflux/FV1D"
	"github.com/notargets/edgeflux/physics"
	"github.com/notargets/edgeflux/utils"
)

// State is a snapshot of the transported profiles.
type State struct {
	Step    int
	Time    float64
	X       []float64
	N, T, Z FV1D.Field
	D       []float64
}

// StepObserver is called after every accepted step. The result is nil for the
// Taylor-expanded model, which does not evaluate the flux channels.
type StepObserver func(s State, r *Result, total []float64)

// StepStats describes the last accepted step.
type StepStats struct {
	Dt       float64
	Sweeps   int
	Residual float64
	Retries  int
}

type Transport struct {
	cs       physics.ConstantSet
	num      physics.Numerics
	mesh     *FV1D.Mesh1D
	eval     *Evaluator
	channels ChannelSet
	n, T, Z  []float64
	time     float64
	step     int
	last     StepStats

	Log          logrus.FieldLogger
	LogFrequency int
	observers    []StepObserver
}

// NewTransport places the initial profiles on a uniform mesh of [0, L].
func NewTransport(cs physics.ConstantSet, cfg physics.Config) (tr *Transport, err error) {
	var (
		mesh *FV1D.Mesh1D
	)
	if mesh, err = FV1D.SimpleMesh1D(0, cs.L, cfg.Numerics.NX); err != nil {
		return
	}
	n, T, Z := InitialState(cs, cfg.Numerics, mesh)
	return NewTransportFrom(cs, cfg.Numerics, mesh, n, T, Z)
}

// NewTransportFrom starts from the given profiles, which are copied.
func NewTransportFrom(cs physics.ConstantSet, num physics.Numerics, mesh *FV1D.Mesh1D, n, T, Z []float64) (tr *Transport, err error) {
	if len(n) != mesh.K || len(T) != mesh.K || len(Z) != mesh.K {
		err = &DomainViolation{Channel: "state", Cell: -1, Quantity: "initial state", Value: float64(mesh.K), Err: ErrShapeMismatch}
		return
	}
	switch {
	case !(num.TimeStep > 0):
		err = fmt.Errorf("%w: time step %v", physics.ErrConfiguration, num.TimeStep)
		return
	case num.MaxSweeps < 1:
		err = fmt.Errorf("%w: max sweeps %d", physics.ErrConfiguration, num.MaxSweeps)
		return
	case num.MaxRetries < 0:
		err = fmt.Errorf("%w: max retries %d", physics.ErrConfiguration, num.MaxRetries)
		return
	}
	tr = &Transport{
		cs:           cs,
		num:          num,
		mesh:         mesh,
		channels:     NewChannelSet(cs.Channels),
		n:            append([]float64(nil), n...),
		T:            append([]float64(nil), T...),
		Z:            append([]float64(nil), Z...),
		Log:          logrus.StandardLogger(),
		LogFrequency: 50,
	}
	if cs.ZModel == physics.FluxModel {
		if tr.eval, err = NewEvaluator(cs, mesh); err != nil {
			return nil, err
		}
	}
	return
}

func (tr *Transport) AddObserver(o StepObserver) { tr.observers = append(tr.observers, o) }

func (tr *Transport) Mesh() *FV1D.Mesh1D { return tr.mesh }

func (tr *Transport) LastStep() StepStats { return tr.last }

// State returns a copy of the current profiles.
func (tr *Transport) State() (s State, err error) {
	s.Step, s.Time = tr.step, tr.time
	s.X = append([]float64(nil), tr.mesh.X...)
	if s.N, err = tr.mesh.NewField(tr.n); err != nil {
		return
	}
	if s.T, err = tr.mesh.NewField(tr.T); err != nil {
		return
	}
	if s.Z, err = tr.mesh.NewField(tr.Z); err != nil {
		return
	}
	s.D, err = Diffusivity(tr.cs, s.Z)
	return
}

// Run advances TotalTimeSteps steps, stopping early when ctx is done.
func (tr *Transport) Run(ctx context.Context) (err error) {
	var (
		logFrequency = tr.LogFrequency
	)
	if logFrequency < 1 {
		logFrequency = 1
	}
	tr.Log.WithFields(logrus.Fields{
		"model":       tr.cs.ZModel.String(),
		"diffusivity": tr.cs.Diffusivity.String(),
		"cells":       tr.mesh.K,
		"steps":       tr.num.TotalTimeSteps,
		"dt":          tr.num.TimeStep,
		"channels":    tr.channels.String(),
	}).Info("starting edge transport")
	for tr.step < tr.num.TotalTimeSteps {
		if err = ctx.Err(); err != nil {
			return
		}
		if err = tr.Step(); err != nil {
			return
		}
		isDone := tr.step == tr.num.TotalTimeSteps
		if tr.step%logFrequency == 0 || isDone {
			tr.Log.WithFields(logrus.Fields{
				"step":     tr.step,
				"time":     tr.time,
				"sweeps":   tr.last.Sweeps,
				"residual": tr.last.Residual,
				"n_max":    floats.Max(tr.n),
				"T_max":    floats.Max(tr.T),
				"Z_min":    floats.Min(tr.Z),
			}).Info("step")
			if isDone {
				tr.Log.Debug(utils.GetMemUsage())
			}
		}
	}
	return
}

// Step advances one time step, halving dt on domain violations up to MaxRetries times.
func (tr *Transport) Step() (err error) {
	var (
		dt = tr.num.TimeStep
		s  State
		r  *Result
		tf []float64
	)
	for retries := 0; ; retries++ {
		var stats StepStats
		if s, r, tf, stats, err = tr.advance(dt); err == nil {
			stats.Retries = retries
			tr.last = stats
			break
		}
		var dv *DomainViolation
		if !errors.As(err, &dv) || retries >= tr.num.MaxRetries {
			return &StepError{Step: tr.step + 1, Time: tr.time, Dt: dt, Retries: retries, Wrapped: err}
		}
		tr.Log.WithFields(logrus.Fields{
			"step": tr.step + 1,
			"dt":   dt,
			"err":  err,
		}).Warn("retrying step with halved dt")
		dt /= 2
	}
	tr.n, tr.T, tr.Z = s.N.Values, s.T.Values, s.Z.Values
	tr.time += dt
	tr.step++
	s.Step, s.Time = tr.step, tr.time
	for _, o := range tr.observers {
		o(s, r, tf)
	}
	return
}

// coefficients evaluates everything the three equations need at an iterate.
func (tr *Transport) coefficients(n, T, Z []float64) (s State, r *Result, total, SZ []float64, err error) {
	var (
		cs = tr.cs
	)
	s.X = append([]float64(nil), tr.mesh.X...)
	if s.N, err = tr.mesh.NewField(n); err != nil {
		return
	}
	if s.T, err = tr.mesh.NewField(T); err != nil {
		return
	}
	if s.Z, err = tr.mesh.NewField(Z); err != nil {
		return
	}
	if s.D, err = Diffusivity(cs, s.Z); err != nil {
		return
	}
	switch cs.ZModel {
	case physics.TaylorModel:
		SZ, err = TaylorSource(cs, s.N, s.T, s.Z)
	default:
		if r, err = tr.eval.Evaluate(s.N, s.T, s.Z); err != nil {
			return
		}
		if total, err = Aggregate(r, tr.channels); err != nil {
			return
		}
		SZ = make([]float64, len(total))
		for k := range total {
			SZ[k] = cs.ZSourceScale * total[k]
		}
	}
	return
}

func (tr *Transport) advance(dt float64) (s State, r *Result, total []float64, stats StepStats, err error) {
	var (
		cs     = tr.cs
		K      = tr.mesh.K
		zero   = utils.ConstArray(K, 0)
		n, T   = tr.n, tr.T
		Z      = tr.Z
		mu     = make([]float64, K)
		SZ     []float64
		nNew   []float64
		TNew   []float64
		ZNew   []float64
		rn, rT float64
		rZ     float64
	)
	stats.Dt = dt
	for sweep := 1; sweep <= tr.num.MaxSweeps; sweep++ {
		if s, _, _, SZ, err = tr.coefficients(n, T, Z); err != nil {
			return
		}
		chi := HeatDiffusivity(cs, s.D)
		for k := range mu {
			mu[k] = cs.Mu * s.D[k]
		}
		density := FV1D.Diffusion{A: 1, Dt: dt, D: s.D, S: zero,
			Left: FV1D.RobinBC(cs.LambdaN), Right: FV1D.FluxBC(-cs.GammaC)}
		heat := FV1D.Diffusion{A: 1, Dt: dt, D: chi, S: zero,
			Left: FV1D.RobinBC(cs.LambdaT), Right: FV1D.FluxBC(-cs.QC / n[K-1])}
		field := FV1D.Diffusion{A: cs.Epsilon, Dt: dt, D: mu, S: SZ,
			Left: FV1D.RobinBC(cs.LambdaZ), Right: FV1D.FluxBC(0)}
		if nNew, rn, err = tr.mesh.Solve(density, tr.n, n); err != nil {
			return
		}
		if TNew, rT, err = tr.mesh.Solve(heat, tr.T, T); err != nil {
			return
		}
		if ZNew, rZ, err = tr.mesh.Solve(field, tr.Z, Z); err != nil {
			return
		}
		n, T, Z = nNew, TNew, ZNew
		stats.Sweeps, stats.Residual = sweep, math.Max(rn, math.Max(rT, rZ))
		if err = positiveState(n, T); err != nil {
			return
		}
		if stats.Residual <= tr.num.ResTol {
			break
		}
	}
	// Coefficients of the accepted state
	s, r, total, _, err = tr.coefficients(n, T, Z)
	return
}

func positiveState(n, T []float64) error {
	for _, f := range []struct {
		name string
		v    []float64
	}{{"n", n}, {"T", T}} {
		if k := utils.Find(f.v, utils.LessOrEqual, 0, false); len(k) != 0 {
			return &DomainViolation{Channel: "state", Cell: k[0], Quantity: f.name, Value: f.v[k[0]], Err: ErrNonPositiveState}
		}
	}
	return nil
}
