// Defines the Patient struct that models an individual patient moving
// through the treatment-and-followup pathway. Each patient is a
// cooperative process: beginCycle and resume run one step of the state
// machine, then either suspend on the scheduler or terminate.

package sim

import (
	"fmt"
)

// PatientState represents the pathway state of a patient.
type PatientState string

const (
	// StateTreatment is the entry state: the patient is undergoing
	// treatment cycles.
	StateTreatment PatientState = "Treatment"
	// StateDead is absorbing: entered when a cycle ends in death.
	StateDead PatientState = "Dead"
	// StateFollowup is entered only after surviving all treatment cycles.
	StateFollowup PatientState = "Followup"
	// StateCompleted is absorbing: followup has finished.
	StateCompleted PatientState = "Completed"
)

// pendingPhase names what a suspended patient is waiting for. It is the
// only resumption context a patient carries besides its counters: the
// state machine needs no captured stack.
type pendingPhase int

const (
	pendingNone pendingPhase = iota
	pendingDeath
	pendingFullCycle
	pendingFollowup
)

// Patient models a single patient's lifecycle in the simulation.
// State transitions are monotone: Treatment -> Dead or Followup ->
// Completed; a patient never re-enters Treatment. All mutation happens
// inside Execute while the patient holds control, so no locking is
// needed under the cooperative scheduling model.
type Patient struct {
	ID int // 1-based, unique within a cohort

	State           PatientState
	TreatmentCycles int // number of cycles started, never exceeds Config.MaxCycles

	AccumulatedCost    float64 // running totals; records store increments
	AccumulatedUtility float64

	pending         pendingPhase // what the current suspension is waiting for
	pendingDuration float64      // the sampled duration of that suspension, in days
}

// NewPatient creates a patient in the Treatment entry state.
func NewPatient(id int) *Patient {
	return &Patient{
		ID:    id,
		State: StateTreatment,
	}
}

// String returns a human-readable representation of a Patient.
func (p Patient) String() string {
	return fmt.Sprintf("Patient: (ID: %d, State: %s, Cycles: %d)", p.ID, p.State, p.TreatmentCycles)
}

// beginCycle starts the next treatment cycle: draw the cycle outcome,
// sample the corresponding time-to-event, and suspend until it elapses.
// Death is decided now (the state flips to Dead immediately) but accrual
// and recording happen when the suspension ends, at the event's due time.
func (p *Patient) beginCycle(sim *Simulator) error {
	p.TreatmentCycles++

	rand, err := sim.Rand.Uniform01()
	if err != nil {
		return fmt.Errorf("%w: uniform draw for patient %d: %v", ErrRandomSource, p.ID, err)
	}

	if rand < sim.Config.ProbDeath {
		p.State = StateDead
		p.pending = pendingDeath
		p.pendingDuration, err = sim.Rand.Gamma(sim.Config.TimeToDeath.Shape, sim.Config.TimeToDeath.Scale)
	} else {
		p.pending = pendingFullCycle
		p.pendingDuration, err = sim.Rand.Gamma(sim.Config.TimeToFullCycle.Shape, sim.Config.TimeToFullCycle.Scale)
	}
	if err != nil {
		return fmt.Errorf("%w: duration draw for patient %d: %v", ErrRandomSource, p.ID, err)
	}

	return sim.Schedule(p.pendingDuration, &ResumeEvent{Patient: p})
}

// resume runs when a suspension ends: apply the accrual for the elapsed
// duration, emit exactly one OutcomeRecord for the phase boundary, and
// advance. A patient that reaches Dead or Completed schedules nothing
// further and drops out of the simulation.
func (p *Patient) resume(sim *Simulator) error {
	duration := p.pendingDuration

	switch p.pending {
	case pendingDeath:
		cost := sim.Accrual.TreatmentCost(duration, p.TreatmentCycles == 1)
		utility := sim.Accrual.TreatmentUtility(duration)
		p.accrue(cost, utility)
		sim.record(p, PhaseTreatment, cost, utility)
		p.pending = pendingNone
		return nil

	case pendingFullCycle:
		cost := sim.Accrual.TreatmentCost(duration, p.TreatmentCycles == 1)
		utility := sim.Accrual.TreatmentUtility(duration)
		p.accrue(cost, utility)
		sim.record(p, PhaseTreatment, cost, utility)

		if p.TreatmentCycles < sim.Config.MaxCycles {
			return p.beginCycle(sim)
		}

		// Survived all cycles: enter followup.
		p.State = StateFollowup
		followup, err := sim.Rand.Gamma(sim.Config.TimeInFollowup.Shape, sim.Config.TimeInFollowup.Scale)
		if err != nil {
			return fmt.Errorf("%w: followup draw for patient %d: %v", ErrRandomSource, p.ID, err)
		}
		p.pending = pendingFollowup
		p.pendingDuration = followup
		return sim.Schedule(followup, &ResumeEvent{Patient: p})

	case pendingFollowup:
		cost := sim.Accrual.FollowupCost()
		utility := sim.Accrual.FollowupUtility(duration)
		p.accrue(cost, utility)
		p.State = StateCompleted
		sim.record(p, PhaseFollowup, cost, utility)
		p.pending = pendingNone
		return nil

	default:
		return fmt.Errorf("patient %d resumed with nothing pending (state %s)", p.ID, p.State)
	}
}

func (p *Patient) accrue(cost, utility float64) {
	p.AccumulatedCost += cost
	p.AccumulatedUtility += utility
}
