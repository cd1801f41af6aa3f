package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"plantforge/internal/core"
)

type runConfig struct {
	output        string
	seed          int64
	referenceDate string
	driver        string
	mirrors       []string
	planPath      string
	counts        map[string]int
	metrics       string
	metricsAddr   string

	useLevel1 bool
	useLevel2 bool
	useLevel3 bool
	useLevel4 bool

	verbose bool
}

var cfg runConfig

var rootCmd = &cobra.Command{
	Use:   "plantforge [command]",
	Short: "Generate synthetic ISA-95 manufacturing datasets",
	Long: `Generates referentially plausible CSV datasets across ISA-95 Levels 1-4:
field sensors and actuators, production equipment and batches, operations
management, and business planning. Tables cross-reference each other through
shared identifier pools; prior-level output can seed those pools via the
--use-levelN flags.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "plantforge:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfg.output, "output", "o", "data", "Output directory for generated CSV files")
	pf.Int64Var(&cfg.seed, "seed", core.DefaultSeed, "Random seed driving the whole run")
	pf.StringVar(&cfg.referenceDate, "reference-date", core.DefaultReferenceDate, "Anchor date (YYYY-MM-DD) for generated time windows")
	pf.StringVar(&cfg.metrics, "metrics", "expvar", "Metrics recorder: expvar, prometheus, none (or PLANTFORGE_METRICS)")
	pf.StringVar(&cfg.metricsAddr, "metrics-addr", "", "Serve Prometheus exposition on this address for the duration of the run")
	pf.StringVar(&cfg.driver, "sink", "", "Sink driver: fs, memory, sqlite, postgres, s3 (or PLANTFORGE_SINK_DRIVER)")
	pf.StringSliceVar(&cfg.mirrors, "mirror", nil, "Additional sink drivers receiving every table (e.g. --mirror sqlite)")
	pf.StringVar(&cfg.planPath, "plan", "", "YAML run plan file; flags override its values")
	pf.StringToIntVar(&cfg.counts, "count", nil, "Per-table row count override, e.g. --count equipment=500")
	pf.BoolVar(&cfg.useLevel1, "use-level1", false, "Seed pools from existing Level 1 output in the output directory")
	pf.BoolVar(&cfg.useLevel2, "use-level2", false, "Seed pools from existing Level 2 output")
	pf.BoolVar(&cfg.useLevel3, "use-level3", false, "Seed pools from existing Level 3 output")
	pf.BoolVar(&cfg.useLevel4, "use-level4", false, "Seed pools from existing Level 4 output")
	pf.BoolVarP(&cfg.verbose, "verbose", "v", false, "Log debug detail")
}
