// Package sim provides the discrete-event simulation engine for a
// health-economic treatment-and-followup care pathway model.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - simulator.go: the clock, the event queue, and the run loop
//   - event.go: event types that drive the simulation (Arrival, Resume)
//   - patient.go: the per-patient pathway state machine
//
// # Architecture
//
// A cohort of patients all enter treatment at day 0. Each patient is a
// cooperative process: it suspends by scheduling a ResumeEvent for a
// sampled duration ahead of the clock and advances one pathway step each
// time the scheduler resumes it. Exactly one patient executes at a time,
// so state needs no locking and run output is deterministic for a fixed
// draw sequence.
//
// Cost and quality-of-life accrual rules live in pathway.go and are pure
// functions of configuration, elapsed duration, and phase. Every phase
// boundary a patient passes through appends exactly one OutcomeRecord to
// the run's Sink; aggregation into per-patient summaries happens outside
// this package (see sim/report).
//
// # Key Interfaces
//
//   - RandomSource: uniform and Gamma draws, injected for reproducibility
//     and test substitution (see rng.go)
//   - Event: anything the scheduler can order and execute (see event.go)
package sim
