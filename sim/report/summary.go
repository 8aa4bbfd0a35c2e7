// Package report aggregates the flat OutcomeRecord sequence produced by
// the simulation core into per-patient summaries and descriptive
// statistics. It consumes records only; the core performs no aggregation
// itself.
package report

import (
	"sort"

	"github.com/pathway-sim/pathway-sim/sim"
)

// PatientSummary collapses one patient's records within one run:
// final state, deepest treatment cycle, time of the last event, and
// summed cost and utility increments.
type PatientSummary struct {
	PatientID       int
	RunNumber       int
	FinalState      sim.PatientState
	TreatmentCycles int     // max cycles seen across the patient's records
	LastEventTime   float64 // max event time seen
	TotalCost       float64
	TotalUtility    float64
}

// Summarize groups records by (patient, run) and collapses each group.
// The final state is taken from the record with the latest event time;
// among equal times the later record in sequence order wins, matching the
// order the patient emitted them. Summaries are returned sorted by run
// number, then patient ID.
func Summarize(records []sim.OutcomeRecord) []PatientSummary {
	type key struct {
		patient int
		run     int
	}

	groups := make(map[key]*PatientSummary)
	order := make([]key, 0)

	for _, r := range records {
		k := key{patient: r.PatientID, run: r.RunNumber}
		s, ok := groups[k]
		if !ok {
			s = &PatientSummary{
				PatientID:     r.PatientID,
				RunNumber:     r.RunNumber,
				FinalState:    r.State,
				LastEventTime: r.EventTime,
			}
			groups[k] = s
			order = append(order, k)
		}
		if r.EventTime >= s.LastEventTime {
			s.LastEventTime = r.EventTime
			s.FinalState = r.State
		}
		if r.TreatmentCycles > s.TreatmentCycles {
			s.TreatmentCycles = r.TreatmentCycles
		}
		s.TotalCost += r.CostIncrement
		s.TotalUtility += r.UtilityIncrement
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].run != order[j].run {
			return order[i].run < order[j].run
		}
		return order[i].patient < order[j].patient
	})

	summaries := make([]PatientSummary, 0, len(order))
	for _, k := range order {
		summaries = append(summaries, *groups[k])
	}
	return summaries
}

// PatientRecords filters the records of a single patient, preserving
// emission order. Handy for inspecting one patient's pathway.
func PatientRecords(records []sim.OutcomeRecord, patientID int) []sim.OutcomeRecord {
	var out []sim.OutcomeRecord
	for _, r := range records {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out
}
