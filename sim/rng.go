package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// === RandomSource ===

// RandomSource supplies the distribution draws the pathway model needs.
// Injected into the simulator rather than hardwired, so tests can
// substitute stub or replay sources and runs stay reproducible.
//
// Errors are propagated, never retried: a retry would silently change the
// sampled sequence. The production implementation never fails.
type RandomSource interface {
	// Uniform01 draws from Uniform(0,1).
	Uniform01() (float64, error)
	// Gamma draws from Gamma(shape, scale). Shape and scale must be
	// positive; Config.Validate guarantees this before any patient runs.
	Gamma(shape, scale float64) (float64, error)
}

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemPathway is the RNG subsystem for pathway transition draws
	// (the uniform death-or-survive draw each cycle).
	SubsystemPathway = "pathway"

	// SubsystemDurations is the RNG subsystem for time-to-event draws
	// (the Gamma-distributed suspension durations).
	SubsystemDurations = "durations"
)

// === PartitionedRandomSource ===

// PartitionedRandomSource provides deterministic, isolated RNG streams
// per subsystem. Transition draws and duration draws come from
// independent streams, mirroring the reference model, which draws them
// from two separate generators; drawing more durations never perturbs the
// transition sequence.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. The cooperative scheduling model calls
// it from a single goroutine.
type PartitionedRandomSource struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRandomSource creates a PartitionedRandomSource from a
// SimulationKey.
func NewPartitionedRandomSource(key SimulationKey) *PartitionedRandomSource {
	return &PartitionedRandomSource{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same subsystem name always returns the same *rand.Rand
// instance (cached). Never returns nil.
func (p *PartitionedRandomSource) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	derivedSeed := int64(p.key) ^ fnv1a64(name)
	rng := rand.New(rand.NewPCG(uint64(derivedSeed), 0))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this source.
func (p *PartitionedRandomSource) Key() SimulationKey {
	return p.key
}

// Uniform01 draws from Uniform(0,1) on the pathway stream.
func (p *PartitionedRandomSource) Uniform01() (float64, error) {
	return p.ForSubsystem(SubsystemPathway).Float64(), nil
}

// Gamma draws from Gamma(shape, scale) on the durations stream.
// distuv parameterizes by rate, hence Beta = 1/scale.
func (p *PartitionedRandomSource) Gamma(shape, scale float64) (float64, error) {
	if shape <= 0 || scale <= 0 {
		return 0, fmt.Errorf("gamma(shape=%v, scale=%v): parameters must be positive", shape, scale)
	}
	dist := distuv.Gamma{
		Alpha: shape,
		Beta:  1 / scale,
		Src:   p.ForSubsystem(SubsystemDurations),
	}
	return dist.Rand(), nil
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
