package main

import (
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"plantforge/internal/core"
	"plantforge/internal/generators"
	"plantforge/internal/sink"
)

func init() {
	rootCmd.AddCommand(
		levelCmd("level1", "Generate Level 1 tables (sensors, actuators, control loops, readings)", generators.Level1),
		levelCmd("level2", "Generate Level 2 tables (facilities, areas, equipment, batches, alarms)", generators.Level2),
		levelCmd("level3", "Generate Level 3 tables (personnel, work orders, lots, quality, maintenance)", generators.Level3),
		levelCmd("level4", "Generate Level 4 tables (products, materials, customers, orders, logistics)", generators.Level4),
		&cobra.Command{
			Use:   "all",
			Short: "Generate every level in one run with full cross-level references",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runGeneration(cmd, generators.All())
			},
		},
	)
}

func levelCmd(use, short string, gens func() []core.Generator) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGeneration(cmd, gens())
		},
	}
}

// buildPlan merges the optional YAML run plan with the command line; flags the
// user set explicitly win over plan file values.
func buildPlan(cmd *cobra.Command) (core.Plan, error) {
	plan := core.DefaultPlan()
	if cfg.planPath != "" {
		loaded, err := core.LoadPlan(cfg.planPath)
		if err != nil {
			return core.Plan{}, err
		}
		plan = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("output") || plan.OutputDir == "" {
		plan.OutputDir = cfg.output
	}
	if flags.Changed("seed") {
		plan.Seed = cfg.seed
	}
	if flags.Changed("reference-date") {
		plan.ReferenceDate = cfg.referenceDate
	}
	for table, n := range cfg.counts {
		if plan.Counts == nil {
			plan.Counts = make(map[string]int)
		}
		plan.Counts[table] = n
	}
	for level, use := range map[int]bool{
		1: cfg.useLevel1, 2: cfg.useLevel2, 3: cfg.useLevel3, 4: cfg.useLevel4,
	} {
		if use && !plan.UsesLevel(level) {
			plan.UseLevels = append(plan.UseLevels, level)
		}
	}
	return plan, nil
}

func openSinks(cmd *cobra.Command, outputDir string) (sink.Sink, error) {
	ctx := cmd.Context()
	var primary sink.Sink
	var err error
	if cmd.Flags().Changed("sink") {
		primary, err = sink.Open(ctx, sink.Driver(cfg.driver), outputDir)
	} else {
		primary, err = sink.OpenFromEnv(ctx, outputDir)
	}
	if err != nil {
		return nil, fmt.Errorf("open sink: %w", err)
	}
	sinks := []sink.Sink{primary}
	for _, mirror := range cfg.mirrors {
		s, err := sink.Open(ctx, sink.Driver(mirror), outputDir)
		if err != nil {
			for _, opened := range sinks {
				_ = opened.Close()
			}
			return nil, fmt.Errorf("open mirror sink %s: %w", mirror, err)
		}
		sinks = append(sinks, s)
	}
	return sink.NewMulti(sinks...), nil
}

// debugGate drops Debug output unless verbose logging was requested.
type debugGate struct {
	core.Logger
	verbose bool
}

func (g debugGate) Debug(msg string, args ...any) {
	if g.verbose {
		g.Logger.Debug(msg, args...)
	}
}

// openMetrics selects the metrics recorder from --metrics (or the
// PLANTFORGE_METRICS environment variable when the flag is unset). The
// prometheus recorder optionally serves exposition on --metrics-addr for the
// duration of the run; the returned stop function tears the listener down.
func openMetrics(cmd *cobra.Command, log core.Logger) (core.MetricsRecorder, func(), error) {
	choice := cfg.metrics
	if !cmd.Flags().Changed("metrics") {
		if env := os.Getenv("PLANTFORGE_METRICS"); env != "" {
			choice = env
		}
	}
	switch choice {
	case "", "expvar":
		// Empty name: each run gets a unique expvar export, so repeated
		// in-process invocations never collide on Publish.
		return core.NewExpvarMetricsRecorder(""), func() {}, nil
	case "none":
		return core.NopMetricsRecorder{}, func() {}, nil
	case "prometheus":
		reg := prometheus.NewRegistry()
		rec, err := core.NewPrometheusMetricsRecorder(reg)
		if err != nil {
			return nil, nil, err
		}
		stop := func() {}
		if cfg.metricsAddr != "" {
			ln, err := net.Listen("tcp", cfg.metricsAddr)
			if err != nil {
				return nil, nil, fmt.Errorf("metrics listener: %w", err)
			}
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			srv := &http.Server{Handler: mux}
			go func() { _ = srv.Serve(ln) }()
			log.Info("metrics exposition started", "addr", ln.Addr().String())
			stop = func() { _ = srv.Close() }
		}
		return rec, stop, nil
	default:
		return nil, nil, fmt.Errorf("unknown metrics recorder %q", choice)
	}
}

func runGeneration(cmd *cobra.Command, gens []core.Generator) error {
	plan, err := buildPlan(cmd)
	if err != nil {
		return err
	}
	out, err := openSinks(cmd, plan.OutputDir)
	if err != nil {
		return err
	}
	log := debugGate{Logger: core.NewWriterLogger(os.Stderr), verbose: cfg.verbose}
	metrics, stopMetrics, err := openMetrics(cmd, log)
	if err != nil {
		_ = out.Close()
		return err
	}
	defer stopMetrics()

	orch := core.NewOrchestrator(out, log, metrics)
	orch.Append(gens...)
	orch.SeedFrom(generators.Sources()...)

	log.Info("run starting",
		"output", plan.OutputDir, "seed", plan.Seed, "tables", len(gens), "sink", string(out.Driver()))
	runErr := orch.Run(cmd.Context(), plan)
	if closeErr := out.Close(); closeErr != nil && runErr == nil {
		runErr = fmt.Errorf("close sink: %w", closeErr)
	}
	if runErr != nil {
		return runErr
	}
	log.Info("run complete", "output", plan.OutputDir)
	return nil
}
