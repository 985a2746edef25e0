package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/srtdog64/randbench/internal/config"
	"github.com/srtdog64/randbench/internal/metrics"
	"github.com/srtdog64/randbench/internal/random"
	"github.com/srtdog64/randbench/internal/workload"
)

var logger = zerolog.New(zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.TimeOnly,
}).With().Timestamp().Logger()

var rootCmd = &cobra.Command{
	Use:   "randbench",
	Short: "Distribution-driven pseudo-random workload benchmark",
	Long: "randbench generates pseudo-random integers and strings according to a\n" +
		"configurable statistical distribution (uniform, gaussian, special, pareto)\n" +
		"and measures how fast a pool of workers can draw them.",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the benchmark workload",
	Run:   doRun,
}

var dumpCmd = &cobra.Command{
	Use:   "dump [count]",
	Short: "Print samples from the configured distribution",
	Long: "dump prints samples, one per line, drawn from the configured distribution\n" +
		"over [range-min, range-max], or templated strings when --string-template is\n" +
		"set. Useful for piping into analysis tools.",
	Args: cobra.MaximumNArgs(1),
	Run:  doDump,
}

func doRun(cmd *cobra.Command, args []string) {
	cfg := config.FromViper()
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	sampler, err := random.New(random.FromViper())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize the sampler")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := metrics.NewCollector()
	defer collector.Stop()

	reporter := metrics.NewReporter(collector, cfg.Reporting.Interval)
	reporterCtx, cancelReporter := context.WithCancel(context.Background())
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		reporter.Start(reporterCtx)
	}()

	logger.Info().
		Str("distribution", sampler.Distribution().String()).
		Int("threads", cfg.Workload.Threads).
		Int64("events", cfg.Workload.Events).
		Dur("duration", cfg.Workload.Duration).
		Int("rate", cfg.Workload.Rate).
		Msg("starting workload")

	runner := workload.NewRunner(sampler, cfg.Workload, collector)
	if err := runner.Run(ctx); err != nil {
		if err == context.Canceled {
			logger.Info().Msg("interrupted, shutting down")
		} else {
			logger.Error().Err(err).Msg("workload error")
		}
	}

	// Stop the reporter last so it prints the final report over the
	// complete run.
	cancelReporter()
	<-reporterDone
}

func doDump(cmd *cobra.Command, args []string) {
	count := 20
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			logger.Fatal().Str("count", args[0]).Msg("count must be a positive integer")
		}
		count = n
	}

	cfg := config.FromViper()
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	sampler, err := random.New(random.FromViper())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize the sampler")
	}

	stream := sampler.NewStream()
	for i := 0; i < count; i++ {
		if cfg.Workload.Template != "" {
			fmt.Println(sampler.String(stream, cfg.Workload.Template))
		} else {
			fmt.Println(sampler.Default(stream, cfg.Workload.RangeMin, cfg.Workload.RangeMax))
		}
	}
}

func main() {
	rootCmd.PersistentFlags().AddFlagSet(random.Flags)
	rootCmd.PersistentFlags().AddFlagSet(config.Flags)
	_ = viper.BindPFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(runCmd, dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
