package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tebeka/atexit"

	"github.com/wesleyorama2/pagelat/internal/bench"
	"github.com/wesleyorama2/pagelat/internal/config"
	"github.com/wesleyorama2/pagelat/internal/history"
	"github.com/wesleyorama2/pagelat/internal/logging"
	"github.com/wesleyorama2/pagelat/internal/pagemem"
	"github.com/wesleyorama2/pagelat/internal/report"
	"github.com/wesleyorama2/pagelat/internal/sysinfo"
)

var version = "0.1.0"

// usageError marks errors caused by how the command was invoked. They are
// printed together with the command usage.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func isUsageError(err error) bool {
	var ue *usageError
	return errors.As(err, &ue) || errors.Is(err, pagemem.ErrConfiguration)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "pagelat",
		Short:   "Measure first-touch page fault latency",
		Version: version,
		Long: `pagelat maps an anonymous working set, then times the first write to every
page (cold, each one a page fault) against a second write to the same pages
(hot, already resident), and reports the two side by side.

  pagelat --mb 256 --repeats 5
  pagelat --gb 2 --random --seed 42 --format json --output run.json
  pagelat --config bench.yaml --record runs.db`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unexpected argument %q", args[0])
			}
			return nil
		},
		RunE:          runBenchmark,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := root.Flags()
	flags.Int("mb", config.DefaultMB, "Working set size in MiB")
	flags.Float64("gb", 0, "Working set size in GiB (overrides --mb)")
	flags.Int("repeats", bench.DefaultConfig().Repeats, "Traversals per phase")
	flags.Bool("random", false, "Visit pages in a shuffled order")
	flags.Uint64("seed", 0, "Seed for --random (default: clock)")
	flags.Bool("pool", false, "Pool samples across repeats instead of keeping the last traversal")
	flags.Bool("no-verify", false, "Skip checking that evictions left no page resident")
	flags.StringP("format", "f", "text", "Output format (text, json, yaml, html)")
	flags.StringP("output", "o", "", "Write the report to a file instead of stdout")
	flags.String("record", "", "Append the run to this SQLite history database")
	flags.StringP("config", "c", "", "Settings file (YAML or JSON)")
	flags.String("env-file", "", "File of PAGELAT_* defaults")

	persistent := root.PersistentFlags()
	persistent.Bool("no-color", false, "Disable colored output")
	persistent.BoolP("verbose", "v", false, "Log debug diagnostics to stderr")
	persistent.String("log-format", "text", "Diagnostic log format (text, json)")

	root.AddCommand(newProbeCmd())
	root.AddCommand(newHistoryCmd())
	return root
}

// Execute runs the command line in os.Args and returns the exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteC()
	if err == nil {
		return 0
	}

	if cmd == nil {
		cmd = root
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	if isUsageError(err) {
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return 1
}

// newLogger builds the diagnostic logger from the persistent flags.
func newLogger(cmd *cobra.Command) (*logging.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	format, _ := cmd.Flags().GetString("log-format")

	f, err := logging.ParseFormat(format)
	if err != nil {
		return nil, &usageError{err: err}
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return logging.New(cmd.ErrOrStderr(), f, level), nil
}

// loadSettings layers defaults, environment, settings file and flags, each
// overriding the one before.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	configFile, _ := cmd.Flags().GetString("config")

	settings := &config.Settings{}

	env, err := config.LoadEnv(envFile)
	if err != nil {
		return nil, err
	}
	settings.Merge(env)

	if configFile != "" {
		file, err := config.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		settings.Merge(file)
	}

	settings.Merge(flagSettings(cmd.Flags()))
	return settings, nil
}

// flagSettings returns the settings given explicitly on the command line.
func flagSettings(flags *pflag.FlagSet) *config.Settings {
	s := &config.Settings{}

	if flags.Changed("mb") {
		mb, _ := flags.GetInt("mb")
		s.MB = &mb
	}
	if flags.Changed("gb") {
		gb, _ := flags.GetFloat64("gb")
		s.GB = &gb
	}
	if flags.Changed("repeats") {
		repeats, _ := flags.GetInt("repeats")
		s.Repeats = &repeats
	}
	if flags.Changed("random") {
		random, _ := flags.GetBool("random")
		s.Order = "sequential"
		if random {
			s.Order = "random"
		}
	}
	if flags.Changed("seed") {
		seed, _ := flags.GetUint64("seed")
		s.Seed = &seed
	}
	if flags.Changed("pool") {
		pool, _ := flags.GetBool("pool")
		s.Policy = bench.PolicyOverwrite.String()
		if pool {
			s.Policy = bench.PolicyPool.String()
		}
	}
	if flags.Changed("no-verify") {
		noVerify, _ := flags.GetBool("no-verify")
		verify := !noVerify
		s.Verify = &verify
	}
	if flags.Changed("format") {
		s.Format, _ = flags.GetString("format")
	}
	if flags.Changed("output") {
		s.Output, _ = flags.GetString("output")
	}
	if flags.Changed("record") {
		s.Record, _ = flags.GetString("record")
	}
	return s
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	noColor, _ := cmd.Flags().GetBool("no-color")

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	pageSize, err := pagemem.PageSize()
	if err != nil {
		return err
	}
	cfg, err := settings.ToBench(pageSize)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(settings.Format)
	if err != nil {
		return &usageError{err: err}
	}

	if err := sysinfo.Preflight(cfg.SizeBytes); err != nil {
		logger.Warn("working set may not fit in memory, the run can be killed or swap",
			"size", cfg.SizeBytes,
			"error", err,
		)
	}

	eng, err := bench.NewEngine(cfg, bench.Options{PageSize: pageSize, Logger: logger})
	if err != nil {
		return err
	}
	res, err := eng.Run()
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	host := sysinfo.Collect()
	rep := &report.Report{Result: res, Host: &host}
	if err := writeOutput(cmd.OutOrStdout(), settings.Output, func(w io.Writer) error {
		return report.Write(w, format, rep, report.Options{NoColor: noColor})
	}); err != nil {
		return err
	}

	if settings.Record != "" {
		if err := record(settings.Record, res); err != nil {
			return err
		}
		logger.Debug("run recorded", "run", res.RunID, "db", settings.Record)
	}
	return nil
}

// writeOutput runs write against stdout, or against the file at path when
// path is set.
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	return file.Close()
}

// openStore opens the history database and makes sure it is closed on
// atexit.Exit as well as by the returned func.
func openStore(path string) (*history.Store, func() error, error) {
	store, err := history.Open(path)
	if err != nil {
		return nil, nil, err
	}
	closeStore := sync.OnceValue(store.Close)
	atexit.Register(func() { closeStore() })
	return store, closeStore, nil
}

func record(path string, res *bench.Result) error {
	store, closeStore, err := openStore(path)
	if err != nil {
		return err
	}
	if err := store.Record(res); err != nil {
		closeStore()
		return err
	}
	return closeStore()
}
