package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/pathway-sim/pathway-sim/sim"
	"github.com/pathway-sim/pathway-sim/sim/report"
)

var (
	// CLI flags for run control
	seed         int64  // Seed for the partitioned random source
	logLevel     string // Log verbosity level
	scenarioPath string // YAML scenario file (overrides the model flags)
	showPatient  int    // Print the raw records of one patient ID (0 = off)
	freshStream  bool   // Reseed the random source per replication
	numberOfRuns int    // Number of independent replications

	// CLI flags for the pathway model
	maxCycles       int     // Maximum treatment cycles per patient
	probDeath       float64 // Probability of dying during one cycle
	nPatients       int     // Cohort size
	cTreatmentInit  float64 // One-off cost of the first cycle
	cTreatmentDaily float64 // Cost per whole treatment day
	cFollowup       float64 // Followup lumpsum cost
	uTreatment      float64 // Annual quality-of-life weight in treatment
	uFollowup       float64 // Annual quality-of-life weight in followup
	daysPerYear     float64 // Utility scaling denominator
	simDuration     float64 // Optional sim-time cutoff in days (0 = unbounded)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "pathway-sim",
	Short: "Discrete-event simulator for health-economic care pathways",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the cohort simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := buildConfig()
		if err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}

		logrus.Infof("Starting simulation: %d patients, %d cycles max, prob_death=%.3f, %d run(s)",
			cfg.NPatients, cfg.MaxCycles, cfg.ProbDeath, cfg.NumberOfRuns)

		startTime := time.Now() // Get current time (start)

		records, err := simulate(cfg)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		if showPatient > 0 {
			printPatient(records, showPatient)
		}

		summaries := report.Summarize(records)
		report.Describe(summaries).Print()
		fmt.Printf("Simulated %d patient-runs in %v\n", len(summaries), time.Since(startTime))

		logrus.Info("Simulation complete.")
	},
}

// buildConfig assembles the scenario from flags, or loads the YAML file
// when --scenario is given (the file then takes precedence over the
// model flags).
func buildConfig() (sim.Config, error) {
	if scenarioPath != "" {
		return sim.LoadScenario(scenarioPath)
	}
	cfg := sim.DefaultConfig()
	cfg.MaxCycles = maxCycles
	cfg.ProbDeath = probDeath
	cfg.NPatients = nPatients
	cfg.CTreatmentInit = cTreatmentInit
	cfg.CTreatmentDaily = cTreatmentDaily
	cfg.CFollowup = cFollowup
	cfg.UTreatment = uTreatment
	cfg.UFollowup = uFollowup
	cfg.DaysPerYear = daysPerYear
	cfg.NumberOfRuns = numberOfRuns
	cfg.SimDuration = simDuration
	return cfg, cfg.Validate()
}

// simulate performs all replications and concatenates their records.
// By default every run continues the same random stream (the reference
// policy); --fresh-stream-per-run reseeds each replication from seed+run.
func simulate(cfg sim.Config) ([]sim.OutcomeRecord, error) {
	var all []sim.OutcomeRecord

	if freshStream {
		for run := 1; run <= cfg.NumberOfRuns; run++ {
			fmt.Printf("Run %d of %d\n", run, cfg.NumberOfRuns)
			src := sim.NewPartitionedRandomSource(sim.NewSimulationKey(seed + int64(run)))
			runner, err := sim.NewCohortRunner(cfg, src)
			if err != nil {
				return nil, err
			}
			records, err := runner.RunCohort(run)
			if err != nil {
				return nil, err
			}
			all = append(all, records...)
		}
		return all, nil
	}

	src := sim.NewPartitionedRandomSource(sim.NewSimulationKey(seed))
	runner, err := sim.NewCohortRunner(cfg, src)
	if err != nil {
		return nil, err
	}
	for run := 1; run <= cfg.NumberOfRuns; run++ {
		fmt.Printf("Run %d of %d\n", run, cfg.NumberOfRuns)
		records, err := runner.RunCohort(run)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

// printPatient dumps the raw record sequence of one patient across runs.
func printPatient(records []sim.OutcomeRecord, patientID int) {
	fmt.Printf("=== Patient %d ===\n", patientID)
	fmt.Printf("%-5s %-10s %-7s %-10s %12s %12s %5s %12s\n",
		"run", "state", "cycles", "phase", "cost", "utility", "", "day")
	for _, r := range report.PatientRecords(records, patientID) {
		fmt.Printf("%-5d %-10s %-7d %-10s %12.2f %12.6f %5s %12.4f\n",
			r.RunNumber, r.State, r.TreatmentCycles, r.Phase, r.CostIncrement, r.UtilityIncrement, "", r.EventTime)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 123, "Seed for the random source")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file (takes precedence over model flags)")
	runCmd.Flags().IntVar(&showPatient, "show-patient", 0, "Print the raw records of this patient ID")
	runCmd.Flags().BoolVar(&freshStream, "fresh-stream-per-run", false, "Reseed the random source for each replication (default: one continuing stream)")
	runCmd.Flags().IntVar(&numberOfRuns, "runs", 1, "Number of independent replications")

	// Pathway model configs
	runCmd.Flags().IntVar(&maxCycles, "max-cycles", 5, "Maximum number of treatment cycles per patient")
	runCmd.Flags().Float64Var(&probDeath, "prob-death", 0.15, "Probability of dying during one treatment cycle")
	runCmd.Flags().IntVar(&nPatients, "n-patients", 10000, "Number of patients in the cohort")
	runCmd.Flags().Float64Var(&cTreatmentInit, "c-treatment-init", 5000, "One-off cost of the first treatment cycle")
	runCmd.Flags().Float64Var(&cTreatmentDaily, "c-treatment-daily", 250, "Treatment cost per whole day")
	runCmd.Flags().Float64Var(&cFollowup, "c-followup", 3500, "Followup lumpsum cost")
	runCmd.Flags().Float64Var(&uTreatment, "u-treatment", 0.7, "Annual quality-of-life weight during treatment")
	runCmd.Flags().Float64Var(&uFollowup, "u-followup", 0.8, "Annual quality-of-life weight during followup")
	runCmd.Flags().Float64Var(&daysPerYear, "days-per-year", 365.2422, "Days per year for utility scaling")
	runCmd.Flags().Float64Var(&simDuration, "sim-duration", 0, "Simulated-time cutoff in days (0 = unbounded)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
