package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"e2fn/internal/app"
	"e2fn/internal/config"
	"e2fn/internal/domain"
	appErrors "e2fn/internal/errors"
	"e2fn/internal/infra/exif"
	"e2fn/internal/infra/fs"
	"e2fn/internal/logging"
	"e2fn/internal/presentation"
	"e2fn/internal/tui"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var appVersion = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		exitWithError(err)
	}
}

func newRootCmd() *cobra.Command {
	var flagged config.Config

	rootCmd := &cobra.Command{
		Use:   "e2fn",
		Short: "Copy JPEG images under names built from their EXIF capture time",
		Long: `e2fn reads the EXIF DateTime of every .jpg/.jpeg file in a directory and
copies the file into <source>.<postfix> under a name rendered with a
strftime format, e.g. -f "%Y%m%d_%H%M%S". Clashing names get _01, _02, ...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), flagged)
			if err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "config", flagged.ConfigFile, err)
			}
			job, err := cfg.Job()
			if errors.Is(err, config.ErrSourceNotFound) {
				return appErrors.Wrap(appErrors.NotFound, "stat source", cfg.SourceDir, err)
			}
			if err != nil {
				_ = cmd.Usage()
				return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
			}
			return runJob(cmd.Context(), cmd.OutOrStdout(), cfg, job)
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return appErrors.Wrap(appErrors.InvalidConfig, "flags", "", err)
	})
	config.BindFlags(rootCmd.Flags(), &flagged)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), appVersion)
		},
	})
	return rootCmd
}

func runJob(ctx context.Context, out io.Writer, cfg config.Config, job config.Job) error {
	interactive := !cfg.NoProgress && isatty.IsTerminal(os.Stderr.Fd())

	var console io.Writer = os.Stderr
	if interactive {
		console = io.Discard
	}
	logger, closeLog, err := newLogger(cfg, console)
	if err != nil {
		return err
	}
	defer closeLog()

	filesystem := fs.OSFS{}
	printer := presentation.Printer{Writer: out, Verbose: job.Verbose}
	printer.PrintHeader(job)

	if !job.DryRun {
		if err := filesystem.ResetDir(job.DestDir); err != nil {
			return appErrors.Wrap(appErrors.IOFailure, "prepare destination", job.DestDir, err)
		}
	}

	renamer := &app.Renamer{
		FS:       filesystem,
		Metadata: exif.Reader{},
		Logger:   logger,
	}
	work := func(ctx context.Context, onProgress func(current, total int, name string)) (domain.Report, error) {
		renamer.OnProgress = onProgress
		return renamer.Run(ctx, job)
	}

	var report domain.Report
	if interactive {
		report, err = tui.Run(ctx, tui.Config{
			SourceDir: job.SourceDir,
			DestDir:   job.DestDir,
			DryRun:    job.DryRun,
		}, os.Stderr, work)
	} else {
		report, err = work(ctx, func(current, total int, name string) {
			logger.Infof("[%d/%d] %s", current, total, name)
		})
	}
	if err != nil {
		logger.Warnf("batch stopped: %v", err)
		printer.PrintReport(report, job.DryRun)
		return asAppError(err, job.SourceDir)
	}

	printer.PrintReport(report, job.DryRun)
	return nil
}

func newLogger(cfg config.Config, console io.Writer) (logging.Logger, func(), error) {
	opts := logging.Options{Verbose: cfg.Verbose, JSON: cfg.LogJSON}
	if cfg.LogFile == "" {
		return logging.New(console, opts), func() {}, nil
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return logging.Logger{}, nil, appErrors.Wrap(appErrors.IOFailure, "open log file", cfg.LogFile, err)
	}
	opts.File = file
	return logging.New(console, opts), func() { file.Close() }, nil
}

func asAppError(err error, path string) error {
	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return appErrors.Wrap(appErrors.Canceled, "rename", path, err)
	}
	return appErrors.Wrap(appErrors.Internal, "rename", path, err)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
	os.Exit(1)
}
