package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events. Due time and
// sequence number are assigned by Simulator.Schedule; Execute advances
// simulation state when the scheduler reaches the event.
type Event interface {
	Timestamp() float64
	SequenceNumber() uint64
	Execute(*Simulator) error

	// place is called by Schedule to stamp the due time and sequence
	// number. Unexported: only the scheduler assigns event ordering.
	place(time float64, seq uint64)
}

// eventBase carries the ordering bookkeeping shared by all events.
type eventBase struct {
	time float64 // due time in days, set by Schedule
	seq  uint64  // insertion order, set by Schedule
}

func (e *eventBase) Timestamp() float64 {
	return e.time
}

func (e *eventBase) SequenceNumber() uint64 {
	return e.seq
}

func (e *eventBase) place(time float64, seq uint64) {
	e.time = time
	e.seq = seq
}

// ArrivalEvent represents a patient entering the care pathway.
// The whole cohort arrives at day 0 with zero inter-arrival delay.
type ArrivalEvent struct {
	eventBase
	Patient *Patient // the arriving patient
}

// Execute starts the patient's first treatment cycle.
func (e *ArrivalEvent) Execute(sim *Simulator) error {
	logrus.Debugf("<< arrival: patient %d at day %.4f", e.Patient.ID, e.time)
	return e.Patient.beginCycle(sim)
}

// ResumeEvent represents the end of a patient's suspension: the sampled
// duration has elapsed and the patient applies accrual for the pending
// phase, records the outcome, and advances its state machine.
type ResumeEvent struct {
	eventBase
	Patient *Patient // the patient to resume
}

// Execute resumes the patient process.
func (e *ResumeEvent) Execute(sim *Simulator) error {
	logrus.Debugf("<< resume: patient %d (%s, cycle %d) at day %.4f",
		e.Patient.ID, e.Patient.State, e.Patient.TreatmentCycles, e.time)
	return e.Patient.resume(sim)
}
