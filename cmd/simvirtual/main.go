// Command simvirtual replays a memory access trace against a simulated
// physical memory and reports page faults and dirty write-backs for a
// page replacement policy.
//
// Usage:
//
//	simvirtual [flags] <lru|fifo|random> <trace.log> <page_kb> <memory_kb> [debug]
//	simvirtual -config sim.json [flags]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/sibexico/PageSim/paging"
)

const usageLine = "Usage: simvirtual [flags] <lru|fifo|random> <trace.log> <page_kb> <memory_kb> [debug]"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath  string
	compare     bool
	metrics     bool
	jsonOutput  bool
	mmap        bool
	compression string
	logLevel    string
	seed        string
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("simvirtual", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usageLine)
		fs.PrintDefaults()
	}

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "JSON configuration file")
	fs.BoolVar(&opts.compare, "compare", false, "run fifo, lru and random over the same trace")
	fs.BoolVar(&opts.metrics, "metrics", false, "collect hit rate and residency metrics")
	fs.BoolVar(&opts.jsonOutput, "json", false, "write the report as JSON")
	fs.BoolVar(&opts.mmap, "mmap", false, "memory-map the trace file")
	fs.StringVar(&opts.compression, "compression", "", "trace compression: auto, none, lz4, snappy")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&opts.seed, "seed", "", "seed for the random policy (default: wall clock)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	cfg, err := buildConfig(opts, fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, usageLine)
		}
		return 1
	}

	logger := paging.NewLogger(stderr, cfg.LogLevel)

	algorithms := []string{cfg.Algorithm}
	if opts.compare {
		algorithms = paging.Algorithms
	}

	reports := make([]*paging.Report, 0, len(algorithms))
	for _, algorithm := range algorithms {
		runCfg := cfg.Clone()
		runCfg.Algorithm = algorithm

		report, err := simulate(runCfg, logger)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		reports = append(reports, report)
	}

	if err := writeReports(stdout, reports, opts.jsonOutput); err != nil {
		fmt.Fprintf(stderr, "Error: failed to write report: %v\n", err)
		return 1
	}
	return 0
}

var errUsage = errors.New("wrong number of arguments")

// buildConfig layers defaults, the config file, PAGESIM_* environment
// variables, positional arguments and flags, in that order.
func buildConfig(opts options, args []string) (*paging.Config, error) {
	cfg := paging.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := paging.LoadConfigFromFile(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	switch len(args) {
	case 0:
		if cfg.TraceFile == "" {
			return nil, errUsage
		}
	case 4, 5:
		cfg.Algorithm = args[0]
		cfg.TraceFile = args[1]

		pageKB, err := strconv.ParseUint(args[2], 10, 32)
		if err != nil {
			return nil, paging.ErrInvalidConfig("args", fmt.Sprintf("invalid page size %q", args[2]))
		}
		memKB, err := strconv.ParseUint(args[3], 10, 32)
		if err != nil {
			return nil, paging.ErrInvalidConfig("args", fmt.Sprintf("invalid memory size %q", args[3]))
		}
		cfg.PageSizeKB = uint32(pageKB)
		cfg.PhysicalMemoryKB = uint32(memKB)

		// Any fifth argument turns debug mode on
		if len(args) == 5 {
			cfg.Debug = true
		}
	default:
		return nil, errUsage
	}

	if opts.metrics {
		cfg.EnableMetrics = true
	}
	if opts.mmap {
		cfg.UseMmap = true
	}
	if opts.compression != "" {
		cfg.TraceCompression = opts.compression
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.seed != "" {
		seed, err := strconv.ParseUint(opts.seed, 10, 64)
		if err != nil {
			return nil, paging.ErrInvalidConfig("args", fmt.Sprintf("invalid seed %q", opts.seed))
		}
		cfg.Seed = &seed
	}
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func simulate(cfg *paging.Config, logger *slog.Logger) (*paging.Report, error) {
	logger = logger.With(slog.String("algorithm", cfg.Algorithm))

	engineOpts := []paging.EngineOption{paging.WithLogger(logger)}

	var metrics *paging.Metrics
	if cfg.EnableMetrics {
		metrics = paging.NewMetrics()
		engineOpts = append(engineOpts, paging.WithObserver(metrics))
	}
	if cfg.Debug {
		engineOpts = append(engineOpts, paging.WithObserver(paging.NewDebugObserver(logger)))
	}

	engine, err := paging.NewEngine(cfg, engineOpts...)
	if err != nil {
		return nil, err
	}

	traceOpts, err := paging.TraceOptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	trace, err := paging.OpenTrace(cfg.TraceFile, traceOpts)
	if err != nil {
		return nil, err
	}
	defer trace.Close()

	logger.Debug("debug mode enabled",
		slog.Uint64("total_frames", uint64(engine.TotalFrames())),
		slog.Uint64("offset_bits", uint64(engine.OffsetBits())),
		slog.String("compression", trace.Compression().String()),
		slog.Bool("mmap", trace.Mapped()),
	)

	stats, err := engine.Run(trace)
	if err != nil {
		return nil, err
	}

	report := paging.NewReport(cfg, stats)
	if line, ok := trace.Truncated(); ok {
		logger.Warn("trace ended early at malformed line", slog.Int("line", line))
		report.TruncatedAtLine = line
	}
	if metrics != nil {
		snapshot := metrics.Snapshot()
		report.Metrics = &snapshot
		metrics.LogMetrics(logger, cfg.Algorithm)
	}
	return report, nil
}

func writeReports(w io.Writer, reports []*paging.Report, asJSON bool) error {
	if asJSON {
		if len(reports) == 1 {
			return reports[0].WriteJSON(w)
		}
		return paging.WriteReportsJSON(w, reports)
	}

	for i, report := range reports {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := report.WriteText(w); err != nil {
			return err
		}
	}
	return nil
}
