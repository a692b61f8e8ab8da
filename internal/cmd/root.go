package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hailam/fillgen/internal/adapters/factory"
	"github.com/hailam/fillgen/internal/adapters/progress"
	"github.com/hailam/fillgen/internal/adapters/sink"
	adapterutils "github.com/hailam/fillgen/internal/adapters/utils"
	"github.com/hailam/fillgen/internal/application"
	"github.com/hailam/fillgen/internal/config"
	"github.com/hailam/fillgen/internal/ports"
	"github.com/hailam/fillgen/internal/sizespec"
)

type options struct {
	output     string
	size       string
	random     bool
	mode       string
	seed       int64
	workers    int
	prefetch   int
	rateLimit  string
	configPath string
	noProgress bool
}

// NewRootCommand builds the fillgen command.
func NewRootCommand() *cobra.Command {
	logOpts := &logOptions{level: zerolog.InfoLevel}
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "fillgen",
		Short: "Creates a file of a given size filled with zeros or random bytes.",
		Long: `fillgen creates a file of exactly the requested size, written in fixed-size
chunks so memory use stays bounded. The content is all zero bytes, or
non-cryptographic random bytes with --random.

Sizes are a number with a unit, with or without a space: 512b, 10mb, "1.5 GB".
Units are b, k/kb, m/mb, g/gb and t/tb (or the full words), powers of 1024.`,
		Example: `  fillgen -s 10gb -o disk.img
  fillgen --size "1.5 MB" --random --output noise.bin
  fillgen -s 100mb -r --seed 42 -o - | sha256sum`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logOpts.configure(cmd.ErrOrStderr(), cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.size, "size", "s", "", "Target size (e.g., 500kb, \"1.5 MB\", 10gb) (required)")
	flags.StringVarP(&opts.output, "output", "o", "", "Path to the output file, or - for standard out (required)")
	flags.BoolVarP(&opts.random, "random", "r", false, "Fill the file with random bytes instead of zeros")
	flags.StringVar(&opts.mode, "mode", "", "Content mode: 'zero' or 'random'")
	flags.Int64Var(&opts.seed, "seed", 0, "Seed for reproducible random content")
	flags.IntVar(&opts.workers, "workers", 0, "Number of goroutines filling each random chunk (default: number of CPUs)")
	flags.IntVar(&opts.prefetch, "prefetch", 0, "Number of random chunks generated ahead of the writer (default 1)")
	flags.StringVar(&opts.rateLimit, "rate-limit", "", "Maximum write throughput per second (e.g., 50mb)")
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "Do not display progress")
	_ = cmd.MarkFlagRequired("size")
	_ = cmd.MarkFlagRequired("output")
	cmd.MarkFlagsMutuallyExclusive("random", "mode")

	// hide --help as a flag in the usage output
	cmd.PersistentFlags().BoolP("help", "h", false, "Print usage")
	cmd.PersistentFlags().Lookup("help").Hidden = true
	logOpts.addFlags(cmd)

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := opts.resolveConfig(cmd)
	if err != nil {
		return err
	}

	service := application.NewFileService(
		factory.NewStaticGeneratorFactory(cfg),
		adapterutils.NewSpecSizeParser(),
		sink.NewFileOpener(cfg.RateLimit),
		opts.progressReporter(cmd, cfg),
	)

	written, err := service.CreateFile(cmd.Context(), opts.output, opts.size, cfg.Mode)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.output == sink.StdoutPath {
		out = cmd.ErrOrStderr()
	}
	color.New(color.FgGreen).Fprintf(out, "Generated %s (%s, %s)\n", opts.output, humanize.IBytes(written), cfg.Mode)
	return nil
}

// resolveConfig layers defaults, the config file and explicitly set flags.
func (o *options) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath, cfg); err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if o.random {
		cfg.Mode = ports.ContentModeRandom
	}
	if flags.Changed("mode") {
		mode, err := ports.ParseContentMode(o.mode)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Mode = mode
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("prefetch") {
		cfg.Prefetch = o.prefetch
	}
	if flags.Changed("seed") {
		seed := o.seed
		cfg.Seed = &seed
	}
	if flags.Changed("rate-limit") {
		limit, err := sizespec.ParseBytes(o.rateLimit)
		if err != nil {
			return config.Config{}, fmt.Errorf("invalid rate limit '%s': %w", o.rateLimit, err)
		}
		cfg.RateLimit = limit
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	log.Debug().
		Str("mode", string(cfg.Mode)).
		Uint64("zeroChunkSize", cfg.ZeroChunkSize).
		Uint64("randomChunkSize", cfg.RandomChunkSize).
		Int("workers", cfg.Workers).
		Int("prefetch", cfg.Prefetch).
		Msg("Resolved configuration")
	return cfg, nil
}

func (o *options) progressReporter(cmd *cobra.Command, cfg config.Config) ports.ProgressReporter {
	if o.noProgress {
		return progress.Nop{}
	}
	if isTerminal(cmd.ErrOrStderr()) {
		chunkSize := cfg.ZeroChunkSize
		if cfg.Mode == ports.ContentModeRandom {
			chunkSize = cfg.RandomChunkSize
		}
		return progress.NewSpinner(cmd.ErrOrStderr(), chunkSize)
	}
	return progress.NewLogReporter(log.Logger)
}
