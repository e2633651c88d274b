package automation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lienard/internal/config"
	"github.com/san-kum/lienard/internal/dynamo"
	"github.com/san-kum/lienard/internal/experiment"
	"github.com/san-kum/lienard/internal/sim"
)

// Scenario defines a scripted sequence of scenes.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`

	dir string
}

// ScenarioStep is a single scene in a scenario. Config is resolved relative
// to the scenario file; Params are applied last.
type ScenarioStep struct {
	Name      string             `yaml:"name"`
	Preset    string             `yaml:"preset"`
	Variant   string             `yaml:"variant"`
	Config    string             `yaml:"config"`
	Params    map[string]float64 `yaml:"params"`
	CSchedule []config.CChange   `yaml:"c_schedule"`
	Watch     *config.Vec3       `yaml:"watch"`
	Save      bool               `yaml:"save"`
}

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Step       ScenarioStep
	Experiment *experiment.Experiment
	Result     *sim.Result
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
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: scenario %s has no steps", dynamo.ErrParameterBounds, path)
	}
	scenario.dir = filepath.Dir(path)

	return &scenario, nil
}

// StepConfig builds the configuration for one step: defaults, then the
// preset variant, then the step's config file, then its params.
func (s *Scenario) StepConfig(step ScenarioStep) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if step.Preset != "" {
		cfg.Preset = step.Preset
	}
	if step.Variant != "" {
		v := config.GetPreset(cfg.Preset, step.Variant)
		if v == nil {
			return nil, fmt.Errorf("%w: no variant %q of %s", dynamo.ErrUnknownPreset, step.Variant, cfg.Preset)
		}
		cfg = v
	}
	if step.Config != "" {
		path := step.Config
		if !filepath.IsAbs(path) && s.dir != "" {
			path = filepath.Join(s.dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	for name, value := range step.Params {
		if err := cfg.SetParam(name, value); err != nil {
			return nil, err
		}
	}
	if len(step.CSchedule) > 0 {
		cfg.CSchedule = step.CSchedule
	}
	if step.Watch != nil {
		w := *step.Watch
		cfg.Watch = &w
	}
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order and stops at the first failure,
// returning the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := scenario.StepConfig(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "name", step.Name, "preset", cfg.Preset)

		exp := experiment.New(cfg, logger)
		if err := exp.Setup(nil); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Experiment: exp, Result: result})
	}

	return results, nil
}

// ParameterSweep runs one scene across a range of a single parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds the metrics of one sweep point.
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	Rebuilds   int
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *slog.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one step", dynamo.ErrParameterBounds)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		cfg := sweep.Base.Clone()
		if err := cfg.SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		exp := experiment.New(cfg, nil)
		if err := exp.Setup(nil); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Metrics:    result.Metrics,
			Rebuilds:   result.Rebuilds,
		})
		logger.Debug("sweep point", "step", i+1, "of", sweep.NumSteps, "param", sweep.ParamName, "value", paramVal)
	}

	return results, nil
}
