package sim

// Phase names the pathway phase an OutcomeRecord belongs to.
type Phase string

const (
	PhaseTreatment Phase = "treatment"
	PhaseFollowup  Phase = "followup"
)

// OutcomeRecord is an immutable snapshot appended exactly once per phase
// boundary a patient passes through: each death event, each completed
// full cycle, and followup completion. Cost and utility fields hold the
// increment for that event, not a running total.
type OutcomeRecord struct {
	PatientID        int
	State            PatientState
	TreatmentCycles  int
	Phase            Phase
	CostIncrement    float64
	UtilityIncrement float64
	RunNumber        int
	EventTime        float64 // simulated day the record was emitted
}

// Sink is the append-only, in-order collection of one run's outcome
// records. One Sink per run: nothing leaks across replications.
// Under cooperative scheduling only one patient writes at a time, so no
// locking is needed.
type Sink struct {
	records []OutcomeRecord
}

// Append adds a record. Records arrive in global event order; per-patient
// subsequences are therefore time-ordered.
func (s *Sink) Append(r OutcomeRecord) {
	s.records = append(s.records, r)
}

// Records returns the collected records in append order.
func (s *Sink) Records() []OutcomeRecord {
	return s.records
}

// Len returns the number of collected records.
func (s *Sink) Len() int {
	return len(s.records)
}
