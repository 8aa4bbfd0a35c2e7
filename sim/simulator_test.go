package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// probeEvent records its name into a shared log when executed, and may
// run a follow-up action against the simulator.
type probeEvent struct {
	eventBase
	name string
	log  *[]string
	then func(*Simulator) error
}

func (e *probeEvent) Execute(s *Simulator) error {
	*e.log = append(*e.log, e.name)
	if e.then != nil {
		return e.then(s)
	}
	return nil
}

func newTestSimulator() *Simulator {
	cfg := DefaultConfig()
	return NewSimulator(cfg, &stubSource{uniform: 0.5, gammas: []float64{1}}, 1)
}

func TestSchedule_RejectsInvalidDelay(t *testing.T) {
	tests := []struct {
		name  string
		delay float64
	}{
		{"negative delay", -1},
		{"tiny negative delay", -1e-12},
		{"NaN delay", math.NaN()},
		{"positive infinite delay", math.Inf(1)},
		{"negative infinite delay", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSimulator()
			var log []string
			err := s.Schedule(tt.delay, &probeEvent{name: "x", log: &log})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDelay)
			assert.Equal(t, 0, len(s.EventQueue), "invalid delay must not enqueue")
		})
	}
}

func TestSchedule_ZeroDelayIsLegal(t *testing.T) {
	s := newTestSimulator()
	var log []string
	require.NoError(t, s.Schedule(0, &probeEvent{name: "a", log: &log}))
	require.NoError(t, s.Run())
	assert.Equal(t, []string{"a"}, log)
}

func TestRun_ProcessesEventsInDueTimeOrder(t *testing.T) {
	s := newTestSimulator()
	var log []string
	// Scheduled out of order; must execute by due time.
	require.NoError(t, s.Schedule(5, &probeEvent{name: "late", log: &log}))
	require.NoError(t, s.Schedule(1, &probeEvent{name: "early", log: &log}))
	require.NoError(t, s.Schedule(3, &probeEvent{name: "middle", log: &log}))

	require.NoError(t, s.Run())
	assert.Equal(t, []string{"early", "middle", "late"}, log)
	assert.Equal(t, 5.0, s.Clock)
}

func TestRun_EqualDueTimesAreFIFO(t *testing.T) {
	// BDD: among events due at the same time, the one scheduled first
	// executes first (lower sequence number wins).
	s := newTestSimulator()
	var log []string
	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, s.Schedule(2, &probeEvent{name: name, log: &log}))
	}

	require.NoError(t, s.Run())
	assert.Equal(t, []string{"first", "second", "third"}, log)
}

func TestRun_RescheduleAtSameTimeGoesBehindQueuedPeers(t *testing.T) {
	// An event that reschedules for the current time must land behind
	// all previously queued same-time events, and must not loop.
	s := newTestSimulator()
	var log []string

	rescheduled := false
	require.NoError(t, s.Schedule(1, &probeEvent{name: "a", log: &log, then: func(s *Simulator) error {
		if rescheduled {
			return nil
		}
		rescheduled = true
		return s.Schedule(0, &probeEvent{name: "a-again", log: &log, then: nil})
	}}))
	require.NoError(t, s.Schedule(1, &probeEvent{name: "b", log: &log}))

	require.NoError(t, s.Run())
	assert.Equal(t, []string{"a", "b", "a-again"}, log)
}

func TestRun_ClockIsMonotone(t *testing.T) {
	s := newTestSimulator()
	var log []string
	var times []float64
	var record func(name string, delay float64) *probeEvent
	record = func(name string, delay float64) *probeEvent {
		return &probeEvent{name: name, log: &log, then: func(s *Simulator) error {
			times = append(times, s.Clock)
			if delay > 0 {
				return s.Schedule(delay, record(name+"'", 0))
			}
			return nil
		}}
	}
	require.NoError(t, s.Schedule(4, record("a", 2)))
	require.NoError(t, s.Schedule(1, record("b", 7)))

	require.NoError(t, s.Run())
	for i := 1; i < len(times); i++ {
		assert.GreaterOrEqual(t, times[i], times[i-1], "clock went backwards")
	}
}

func TestRun_ExecuteErrorAbortsImmediately(t *testing.T) {
	s := newTestSimulator()
	var log []string
	boom := errors.New("boom")
	require.NoError(t, s.Schedule(1, &probeEvent{name: "bad", log: &log, then: func(*Simulator) error { return boom }}))
	require.NoError(t, s.Schedule(2, &probeEvent{name: "never", log: &log}))

	err := s.Run()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"bad"}, log, "no event may run after a failure")
}

func TestRun_HorizonStopsTheRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SimDuration = 10
	s := NewSimulator(cfg, &stubSource{uniform: 0.5, gammas: []float64{1}}, 1)

	var log []string
	require.NoError(t, s.Schedule(5, &probeEvent{name: "inside", log: &log}))
	require.NoError(t, s.Schedule(15, &probeEvent{name: "past", log: &log}))
	require.NoError(t, s.Schedule(20, &probeEvent{name: "beyond", log: &log}))

	require.NoError(t, s.Run())
	// The event crossing the horizon still executes (the cutoff is
	// checked after processing), later ones do not.
	assert.Equal(t, []string{"inside", "past"}, log)
}

func TestNewSimulator_UnboundedByDefault(t *testing.T) {
	s := newTestSimulator()
	assert.True(t, math.IsInf(s.Horizon, 1))
	assert.Equal(t, 0.0, s.Clock)
	assert.Equal(t, 0, s.Sink.Len())
}
