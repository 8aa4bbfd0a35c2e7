// Accrual rules: convert an elapsed duration and phase into cost and
// quality-of-life increments. Pure functions of the configuration; no
// scheduling knowledge.

package sim

import "math"

// Accrual computes per-event cost and utility increments. Treatment
// costs are charged per whole elapsed day plus a one-off initiation fee
// on the first cycle; followup is a fixed lumpsum. Utility is the annual
// quality-of-life weight pro-rated over the elapsed days.
type Accrual struct {
	cfg Config
}

// NewAccrual binds the accrual rules to a configuration.
func NewAccrual(cfg Config) Accrual {
	return Accrual{cfg: cfg}
}

// TreatmentCost returns the cost increment for a treatment-phase event
// (death or full cycle) lasting duration days. The daily rate applies to
// whole days only; firstCycle adds the treatment initiation cost.
func (a Accrual) TreatmentCost(duration float64, firstCycle bool) float64 {
	cost := math.Floor(duration) * a.cfg.CTreatmentDaily
	if firstCycle {
		cost += a.cfg.CTreatmentInit
	}
	return cost
}

// TreatmentUtility returns the utility increment for duration days spent
// in the treatment phase.
func (a Accrual) TreatmentUtility(duration float64) float64 {
	return duration * (a.cfg.UTreatment / a.cfg.DaysPerYear)
}

// FollowupCost returns the followup lumpsum. It replaces the per-day
// formula: followup cost does not depend on the elapsed duration.
func (a Accrual) FollowupCost() float64 {
	return a.cfg.CFollowup
}

// FollowupUtility returns the utility increment for duration days spent
// in followup.
func (a Accrual) FollowupUtility(duration float64) float64 {
	return duration * (a.cfg.UFollowup / a.cfg.DaysPerYear)
}
