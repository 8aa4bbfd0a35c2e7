package sim

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// GammaParams parameterize a Gamma time-to-event distribution.
type GammaParams struct {
	Shape float64 `yaml:"shape"` // must be > 0
	Scale float64 `yaml:"scale"` // must be > 0
}

// Config holds the static parameters of one simulation scenario.
// Validated once at construction; the core never re-checks bounds while
// patients run. Loaded from YAML via LoadScenario(path) or built from
// DefaultConfig().
type Config struct {
	MaxCycles int     `yaml:"max_cycles"` // maximum treatment cycles per patient (> 0)
	ProbDeath float64 `yaml:"prob_death"` // probability of dying during one cycle (in [0,1])
	NPatients int     `yaml:"n_patients"` // cohort size (> 0)

	CTreatmentInit  float64 `yaml:"c_treatment_init"`  // one-off cost of the first cycle (>= 0)
	CTreatmentDaily float64 `yaml:"c_treatment_daily"` // cost per whole treatment day (>= 0)
	CFollowup       float64 `yaml:"c_followup"`        // followup lumpsum (>= 0)

	UTreatment  float64 `yaml:"u_treatment"`   // annual quality-of-life weight in treatment (>= 0)
	UFollowup   float64 `yaml:"u_followup"`    // annual quality-of-life weight in followup (>= 0)
	DaysPerYear float64 `yaml:"days_per_year"` // utility scaling denominator (> 0)

	NumberOfRuns int `yaml:"number_of_runs"` // independent replications (>= 1)

	// SimDuration is an optional sim-time cutoff in days. 0 = unbounded
	// (the default): a run ends only when its event queue empties.
	SimDuration float64 `yaml:"sim_duration,omitempty"`

	TimeToDeath     GammaParams `yaml:"time_to_death"`      // time-to-event when a cycle ends in death
	TimeToFullCycle GammaParams `yaml:"time_to_full_cycle"` // duration of a survived cycle
	TimeInFollowup  GammaParams `yaml:"time_in_followup"`   // duration of the followup phase
}

// DefaultConfig returns the reference scenario parameters.
func DefaultConfig() Config {
	return Config{
		MaxCycles:       5,
		ProbDeath:       0.15,
		NPatients:       10000,
		CTreatmentInit:  5000,
		CTreatmentDaily: 250,
		CFollowup:       3500,
		UTreatment:      0.7,
		UFollowup:       0.8,
		DaysPerYear:     365.2422,
		NumberOfRuns:    1,
		SimDuration:     0,
		TimeToDeath:     GammaParams{Shape: 1.5, Scale: 3},
		TimeToFullCycle: GammaParams{Shape: 3, Scale: 10},
		TimeInFollowup:  GammaParams{Shape: 2, Scale: 15},
	}
}

// Horizon converts SimDuration into the scheduler cutoff: +Inf when
// unbounded.
func (c Config) Horizon() float64 {
	if c.SimDuration <= 0 {
		return math.Inf(1)
	}
	return c.SimDuration
}

// Validate checks every static bound and fails fast with an
// ErrInvalidConfiguration-wrapped error before any patient is simulated.
func (c Config) Validate() error {
	if c.MaxCycles <= 0 {
		return fmt.Errorf("%w: max_cycles must be > 0, got %d", ErrInvalidConfiguration, c.MaxCycles)
	}
	if math.IsNaN(c.ProbDeath) || c.ProbDeath < 0 || c.ProbDeath > 1 {
		return fmt.Errorf("%w: prob_death must be in [0,1], got %v", ErrInvalidConfiguration, c.ProbDeath)
	}
	if c.NPatients <= 0 {
		return fmt.Errorf("%w: n_patients must be > 0, got %d", ErrInvalidConfiguration, c.NPatients)
	}
	for _, f := range []struct {
		name string
		val  float64
	}{
		{"c_treatment_init", c.CTreatmentInit},
		{"c_treatment_daily", c.CTreatmentDaily},
		{"c_followup", c.CFollowup},
		{"u_treatment", c.UTreatment},
		{"u_followup", c.UFollowup},
	} {
		if math.IsNaN(f.val) || f.val < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidConfiguration, f.name, f.val)
		}
	}
	if !(c.DaysPerYear > 0) {
		return fmt.Errorf("%w: days_per_year must be > 0, got %v", ErrInvalidConfiguration, c.DaysPerYear)
	}
	if c.NumberOfRuns < 1 {
		return fmt.Errorf("%w: number_of_runs must be >= 1, got %d", ErrInvalidConfiguration, c.NumberOfRuns)
	}
	if math.IsNaN(c.SimDuration) || c.SimDuration < 0 {
		return fmt.Errorf("%w: sim_duration must be > 0 or 0 for unbounded, got %v", ErrInvalidConfiguration, c.SimDuration)
	}
	for _, g := range []struct {
		name   string
		params GammaParams
	}{
		{"time_to_death", c.TimeToDeath},
		{"time_to_full_cycle", c.TimeToFullCycle},
		{"time_in_followup", c.TimeInFollowup},
	} {
		if !(g.params.Shape > 0) || !(g.params.Scale > 0) {
			return fmt.Errorf("%w: %s gamma shape and scale must be > 0, got shape=%v scale=%v",
				ErrInvalidConfiguration, g.name, g.params.Shape, g.params.Scale)
		}
	}
	return nil
}

// LoadScenario reads a YAML scenario file over the defaults, so a file
// only needs to name the parameters it changes. The result is validated.
func LoadScenario(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
