package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/physics"
)

type Simulator struct {
	pop       physics.Population
	boundary  physics.Constraint
	resolver  *physics.Resolver
	metrics   []Metric
	observers []Observer
}

func New(pop physics.Population, boundary physics.Constraint, resolver *physics.Resolver) *Simulator {
	return &Simulator{
		pop:       pop,
		boundary:  boundary,
		resolver:  resolver,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Population() physics.Population { return s.pop }
func (s *Simulator) Boundary() physics.Constraint   { return s.boundary }
func (s *Simulator) Resolver() *physics.Resolver    { return s.resolver }

// Step advances the population by one tick of length dt.
func (s *Simulator) Step(dt float64) {
	s.resolver.Update(s.pop, s.boundary, dt)
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	every := cfg.RecordEvery
	if every < 1 {
		every = 1
	}

	result := &Result{
		Frames:  make([][]float64, 0, steps/every+1),
		Times:   make([]float64, 0, steps/every+1),
		Radii:   s.pop.Radii(),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	result.Frames = append(result.Frames, s.pop.Positions(nil))
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		s.Step(cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState {
			if idx := s.pop.Valid(); idx >= 0 {
				s.collect(result)
				return result, &dynamo.SimulationError{Step: i, Time: t, Entity: idx, Wrapped: dynamo.ErrInvalidState}
			}
		}

		for _, m := range s.metrics {
			m.Observe(s.pop, s.boundary, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.pop, t)
		}

		if (i+1)%every == 0 {
			result.Frames = append(result.Frames, s.pop.Positions(make([]float64, 0, 2*len(s.pop))))
			result.Times = append(result.Times, t)
		}
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f: %w", cfg.Dt, dynamo.ErrParameterBounds)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f: %w", cfg.Duration, dynamo.ErrParameterBounds)
	}
	return nil
}
