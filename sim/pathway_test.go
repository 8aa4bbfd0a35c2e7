package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccrual_TreatmentCost(t *testing.T) {
	a := NewAccrual(DefaultConfig())

	tests := []struct {
		name       string
		duration   float64
		firstCycle bool
		want       float64
	}{
		{"whole days, first cycle", 10, true, 10*250 + 5000},
		{"whole days, later cycle", 10, false, 2500},
		{"fractional day truncates", 3.9, false, 750},
		{"under one day", 0.5, false, 0},
		{"under one day, first cycle", 0.5, true, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.TreatmentCost(tt.duration, tt.firstCycle))
		})
	}
}

func TestAccrual_Utility(t *testing.T) {
	a := NewAccrual(DefaultConfig())

	assert.InDelta(t, 10*(0.7/365.2422), a.TreatmentUtility(10), 1e-12)
	assert.InDelta(t, 5*(0.8/365.2422), a.FollowupUtility(5), 1e-12)
	assert.Equal(t, 0.0, a.TreatmentUtility(0))
}

func TestAccrual_FollowupCostIgnoresDuration(t *testing.T) {
	a := NewAccrual(DefaultConfig())
	// Lumpsum regardless of how long followup lasted.
	assert.Equal(t, 3500.0, a.FollowupCost())
}
