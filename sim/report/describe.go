package report

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ColumnStats holds descriptive statistics for one summary column.
type ColumnStats struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Description holds descriptive statistics over a set of patient
// summaries, one column per outcome of interest.
type Description struct {
	Cost    ColumnStats
	Utility ColumnStats
	Cycles  ColumnStats
}

// Describe computes count/mean/std/min/quartiles/max of total cost,
// total utility, and treatment cycles across patient summaries.
func Describe(summaries []PatientSummary) Description {
	costs := make([]float64, len(summaries))
	utilities := make([]float64, len(summaries))
	cycles := make([]float64, len(summaries))
	for i, s := range summaries {
		costs[i] = s.TotalCost
		utilities[i] = s.TotalUtility
		cycles[i] = float64(s.TreatmentCycles)
	}
	return Description{
		Cost:    describeColumn(costs),
		Utility: describeColumn(utilities),
		Cycles:  describeColumn(cycles),
	}
}

func describeColumn(vals []float64) ColumnStats {
	if len(vals) == 0 {
		return ColumnStats{}
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	return ColumnStats{
		Count:  len(vals),
		Mean:   stat.Mean(vals, nil),
		Std:    stat.StdDev(vals, nil),
		Min:    sorted[0],
		Q25:    stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q75:    stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}
}

// Print displays the description as a table at the end of a simulation.
func (d Description) Print() {
	fmt.Println("=== Cohort Outcomes ===")
	fmt.Printf("%-8s %14s %14s %14s\n", "", "cost", "utility", "cycles")
	row := func(name string, f func(ColumnStats) float64) {
		fmt.Printf("%-8s %14.4f %14.4f %14.4f\n", name, f(d.Cost), f(d.Utility), f(d.Cycles))
	}
	fmt.Printf("%-8s %14d %14d %14d\n", "count", d.Cost.Count, d.Utility.Count, d.Cycles.Count)
	row("mean", func(c ColumnStats) float64 { return c.Mean })
	row("std", func(c ColumnStats) float64 { return c.Std })
	row("min", func(c ColumnStats) float64 { return c.Min })
	row("25%", func(c ColumnStats) float64 { return c.Q25 })
	row("50%", func(c ColumnStats) float64 { return c.Median })
	row("75%", func(c ColumnStats) float64 { return c.Q75 })
	row("max", func(c ColumnStats) float64 { return c.Max })
}
