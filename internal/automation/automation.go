package automation

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/balls/internal/config"
	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/metrics"
	"github.com/san-kum/balls/internal/sim"
)

// Scenario defines a scripted sequence of headless runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run: a preset, an optional config file layered
// over it, then individual parameters.
type ScenarioStep struct {
	Preset      string             `yaml:"preset"`
	Config      string             `yaml:"config"`
	Params      map[string]float64 `yaml:"params"`
	RecordEvery int                `yaml:"record_every"`
	SaveAs      string             `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &scenario, nil
}

// Resolve builds the configuration the step runs with.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	name := s.Preset
	if name == "" {
		name = "default"
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}

	if s.Config != "" {
		var err error
		if cfg, err = config.LoadOver(s.Config, cfg); err != nil {
			return nil, err
		}
	}

	for k, v := range s.Params {
		if err := cfg.SetParam(k, v); err != nil {
			return nil, err
		}
	}
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}

	return cfg, cfg.Validate()
}

// Runner executes scenarios, sweeps and Monte Carlo studies. Progress
// lines go to Out when it is set.
type Runner struct {
	Out io.Writer
	// Tolerance is passed to the containment metric. Negative values use
	// |gravity| + entity radius of each run's configuration.
	Tolerance float64
}

func (r *Runner) printf(format string, args ...any) {
	if r.Out != nil {
		fmt.Fprintf(r.Out, format, args...)
	}
}

func (r *Runner) tolerance(cfg *config.Config) float64 {
	if r.Tolerance >= 0 {
		return r.Tolerance
	}
	return cfg.Gravity.Vec2().Len() + cfg.Entity.Radius
}

// Simulator builds a simulator for cfg with the default metrics attached.
func (r *Runner) Simulator(cfg *config.Config) (*sim.Simulator, error) {
	pop, boundary, resolver, err := cfg.World()
	if err != nil {
		return nil, err
	}
	s := sim.New(pop, boundary, resolver)
	for _, m := range metrics.Default(r.tolerance(cfg)) {
		s.AddMetric(m)
	}
	return s, nil
}

func simConfig(cfg *config.Config, recordEvery int) sim.Config {
	return sim.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		ValidateState: true,
		RecordEvery:   recordEvery,
	}
}

// StepResult pairs a finished run with the configuration it ran under.
type StepResult struct {
	Config *config.Config
	Result *sim.Result
}

// RunScenario executes all steps in a scenario
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		r.printf("running step %d/%d: %s (%d entities)\n", i+1, len(scenario.Steps), cfg.Name, cfg.Entity.Count)

		s, err := r.Simulator(cfg)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := s.Run(ctx, simConfig(cfg, step.RecordEvery))
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Config: cfg, Result: result})
	}

	return results, nil
}

// ParameterSweep runs the base configuration across evenly spaced values of
// one parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	StepsTaken int
}

// RunSweep executes a parameter sweep
func (r *Runner) RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least 1 step, got %d: %w", sweep.NumSteps, dynamo.ErrParameterBounds)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := *sweep.Base
		if err := cfg.SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		s, err := r.Simulator(&cfg)
		if err != nil {
			return nil, fmt.Errorf("%s=%.4f: %w", sweep.ParamName, paramVal, err)
		}

		result, err := s.Run(ctx, simConfig(&cfg, math.MaxInt))
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Metrics:    result.Metrics,
			StepsTaken: result.StepsTaken,
		})

		r.printf("sweep %d/%d: %s=%.4f\n", i+1, sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}

// MonteCarloConfig runs NumTrials spawns of Base, each with its own seed
// and with gravity jittered by up to Perturbation on each axis.
type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult holds the outcome of one trial
type MonteCarloResult struct {
	TrialID     int
	Seed        int64
	Gravity     dynamo.Vec2
	Containment float64
	MaxOverlap  float64
	Stable      bool // no tick left an entity past the tolerance
}

// trialConfig derives the configuration of one trial from its seed alone,
// so concurrent trials are reproducible.
func (mc *MonteCarloConfig) trialConfig(seed int64) *config.Config {
	cfg := *mc.Base
	cfg.Seed = seed
	rng := rand.New(rand.NewSource(seed))
	cfg.Gravity.X += (rng.Float64() - 0.5) * 2 * mc.Perturbation
	cfg.Gravity.Y += (rng.Float64() - 0.5) * 2 * mc.Perturbation
	return &cfg
}

// RunMonteCarlo executes the trials concurrently.
func (r *Runner) RunMonteCarlo(ctx context.Context, mc *MonteCarloConfig) ([]MonteCarloResult, error) {
	if mc.NumTrials < 1 {
		return nil, fmt.Errorf("monte carlo needs at least 1 trial, got %d: %w", mc.NumTrials, dynamo.ErrParameterBounds)
	}

	build := func(seed int64) (*sim.Simulator, error) {
		return r.Simulator(mc.trialConfig(seed))
	}

	runs, err := sim.NewEnsemble(build, mc.NumTrials, mc.Seed).Run(ctx, simConfig(mc.Base, math.MaxInt))
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, len(runs))
	for trial, res := range runs {
		seed := mc.Seed + int64(trial)
		results[trial] = MonteCarloResult{
			TrialID:     trial,
			Seed:        seed,
			Gravity:     mc.trialConfig(seed).Gravity.Vec2(),
			Containment: res.Metrics["containment"],
			MaxOverlap:  res.Metrics["max_overlap"],
			Stable:      res.Metrics["containment"] == 1,
		}
	}
	r.printf("monte carlo: %d trials complete\n", len(results))

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
