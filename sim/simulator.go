// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// EventQueue implements heap.Interface and orders events by due time,
// ties broken by sequence number (insertion order). The tie-break makes
// simultaneous events FIFO, so two patients colliding on identical
// sampled durations resume in the order they were scheduled.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []Event

func (eq EventQueue) Len() int { return len(eq) }

func (eq EventQueue) Less(i, j int) bool {
	if eq[i].Timestamp() != eq[j].Timestamp() {
		return eq[i].Timestamp() < eq[j].Timestamp()
	}
	return eq[i].SequenceNumber() < eq[j].SequenceNumber()
}

func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(Event))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Simulator is the core object that holds simulated time, the pending
// event queue, and everything a patient process needs while it holds
// control: the configuration, the accrual rules, the random source, and
// the outcome sink for the current run.
type Simulator struct {
	// Clock is the current simulated time in days. Monotonically
	// non-decreasing; advanced only by Run.
	Clock float64
	// Horizon is an optional sim-time cutoff. math.Inf(1) = unbounded,
	// the default: the run ends when the event queue empties.
	Horizon float64
	// EventQueue holds all pending resumptions, earliest first.
	EventQueue EventQueue

	Config  Config
	Accrual Accrual
	Rand    RandomSource
	Sink    *Sink

	// RunNumber stamps every OutcomeRecord of this run.
	RunNumber int

	// seq is the sequence counter for deterministic tie-breaking.
	// Strictly increasing across the lifetime of the run, which also
	// guarantees progress when a process reschedules itself for the
	// current time: it lands behind all previously queued events.
	seq uint64
}

// NewSimulator creates a Simulator for one cohort run with a fresh clock,
// an empty queue, and an empty sink. The configuration must already be
// validated; NewSimulator does not re-check it.
func NewSimulator(cfg Config, src RandomSource, runNumber int) *Simulator {
	return &Simulator{
		Clock:      0,
		Horizon:    cfg.Horizon(),
		EventQueue: make(EventQueue, 0),
		Config:     cfg,
		Accrual:    NewAccrual(cfg),
		Rand:       src,
		Sink:       &Sink{},
		RunNumber:  runNumber,
	}
}

// Schedule inserts ev into the event queue due delay days after the
// current clock. A negative or non-finite delay violates clock
// monotonicity and fails with ErrInvalidDelay; zero delay is legal and
// FIFO-ordered among events already due at the same time.
func (sim *Simulator) Schedule(delay float64, ev Event) error {
	if math.IsNaN(delay) || math.IsInf(delay, 0) || delay < 0 {
		return fmt.Errorf("%w: delay %v requested at day %v", ErrInvalidDelay, delay, sim.Clock)
	}
	sim.seq++
	ev.place(sim.Clock+delay, sim.seq)
	heap.Push(&sim.EventQueue, ev)
	return nil
}

// Run drives the simulation: pop the earliest event, advance the clock to
// its due time, execute it. The executed event may schedule further
// events (a patient suspending again) or nothing (a patient terminating).
// Run returns when the queue is empty or the horizon is crossed; any
// event error aborts the run immediately.
func (sim *Simulator) Run() error {
	for len(sim.EventQueue) > 0 {
		// get the next event to be simulated
		ev := heap.Pop(&sim.EventQueue).(Event)
		// advance the clock
		sim.Clock = ev.Timestamp()
		logrus.Debugf("[day %010.4f] executing %T", sim.Clock, ev)
		// process the event
		if err := ev.Execute(sim); err != nil {
			return err
		}
		// end the simulation if the optional horizon is crossed
		if sim.Clock > sim.Horizon {
			break
		}
	}
	logrus.Debugf("[day %010.4f] run %d ended with %d records", sim.Clock, sim.RunNumber, sim.Sink.Len())
	return nil
}

// record appends one outcome snapshot for p at the current clock.
func (sim *Simulator) record(p *Patient, phase Phase, cost, utility float64) {
	sim.Sink.Append(OutcomeRecord{
		PatientID:        p.ID,
		State:            p.State,
		TreatmentCycles:  p.TreatmentCycles,
		Phase:            phase,
		CostIncrement:    cost,
		UtilityIncrement: utility,
		RunNumber:        sim.RunNumber,
		EventTime:        sim.Clock,
	})
}
