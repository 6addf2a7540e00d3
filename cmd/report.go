// =============================================================================
// Coverage Report Generator - Report Commands
// =============================================================================
//
// This file defines the 'area' and 'fleet' commands. Both run the same
// pipeline and differ only in the report kind.
//
// COMMAND USAGE:
//   coverage area  [files...] [flags]
//   coverage fleet [files...] [flags]
//
// FLAGS:
//   --format       : Output formats, overriding the configuration (html,xlsx,json,xml)
//   --summary-only : Print only the overall circle summary (HTML)
//   --circle       : Print a single circle (HTML)
//   --out          : Output directory, overriding the configuration
//   --wards        : Ward list file, overriding the configuration
//   --sheet        : Worksheet to read from .xlsx surveys
//   --watch        : Keep processing new surveys until interrupted
//
// With no file arguments every .csv and .xlsx file in the input directory
// is processed. A failing file does not stop the others, but the command
// exits non-zero when any file failed.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/coverage-report/internal/config"
	"github.com/ginjaninja78/coverage-report/internal/htmlreport"
	"github.com/ginjaninja78/coverage-report/internal/report"
	"github.com/ginjaninja78/coverage-report/internal/types"
	"github.com/ginjaninja78/coverage-report/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// reportFlags holds the flags shared by the report commands.
type reportFlags struct {
	formats     []string
	summaryOnly bool
	circle      string
	outDir      string
	wards       string
	sheet       string
	watch       bool
}

// bind registers the flags on a command.
func (f *reportFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.formats, "format", nil, "Output formats: html, xlsx, json, xml (default from config)")
	cmd.Flags().BoolVar(&f.summaryOnly, "summary-only", false, "Print only the overall circle summary")
	cmd.Flags().StringVar(&f.circle, "circle", "", "Print a single circle")
	cmd.Flags().StringVar(&f.outDir, "out", "", "Output directory (default from config)")
	cmd.Flags().StringVar(&f.wards, "wards", "", "Ward list file (default from config)")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Worksheet to read from .xlsx surveys (default: first sheet)")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "Keep running and process surveys as they arrive in the input directory")
}

var (
	areaFlags  reportFlags
	fleetFlags reportFlags
)

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

var areaCmd = &cobra.Command{
	Use:   "area [files...]",
	Short: "Build the circle > zone > ward coverage report",
	Long: `The area command groups survey records by circle, zone and ward and
reports household totals with coverage percentages.

Wards are assigned to circles using the built-in circle lists unless a ward
list is given. Wards in no circle are reported under the sentinel group.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd.Context(), types.AreaReport, &areaFlags, args)
	},
}

var fleetCmd = &cobra.Command{
	Use:   "fleet [files...]",
	Short: "Build the circle > vehicle coverage report",
	Long: `The fleet command groups survey records by circle and vehicle. Records
without a vehicle number are listed per circle as absent vehicle routes.

The fleet report needs a ward list (--wards or fleet.ward_list).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd.Context(), types.FleetReport, &fleetFlags, args)
	},
}

func init() {
	areaFlags.bind(areaCmd)
	fleetFlags.bind(fleetCmd)
	rootCmd.AddCommand(areaCmd, fleetCmd)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runReport builds one kind of report for every selected survey file.
func runReport(ctx context.Context, kind types.ReportKind, flags *reportFlags, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// =========================================================================
	// STEP 1: APPLY FLAG OVERRIDES
	// =========================================================================
	cfg, err := applyOverrides(*mainConfig, flags)
	if err != nil {
		return err
	}

	if (flags.summaryOnly || flags.circle != "") && !cfg.HasFormat(config.FormatHTML) {
		logger.Warn("--summary-only and --circle only affect HTML output")
	}

	// =========================================================================
	// STEP 2: LOAD MEMBERSHIP AND BUILD THE GENERATOR
	// =========================================================================
	table, err := report.LoadMembership(kind, cfg, flags.wards)
	if err != nil {
		return err
	}
	logger.Debug("Loaded circles", zap.Strings("circles", table.Names()))

	gen, err := report.NewGenerator(kind, cfg, table, report.Options{
		HTML:  htmlreport.Options{SummaryOnly: flags.summaryOnly, Circle: flags.circle},
		Sheet: flags.sheet,
	}, logger)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 3: SELECT INPUT FILES
	// =========================================================================
	paths := args
	if len(paths) == 0 {
		paths, err = gen.Files().DiscoverInputFiles()
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}
	if len(paths) == 0 && !flags.watch {
		fmt.Printf("No survey files found in %s\n", cfg.InputDir)
		return nil
	}

	// =========================================================================
	// STEP 4: PROCESS AND SUMMARIZE
	// =========================================================================
	if len(paths) > 0 {
		if err := processAll(ctx, gen, cfg, paths); err != nil {
			if !flags.watch {
				return err
			}
			logger.Warn("Continuing to watch after failures", zap.Error(err))
		}
	}

	// =========================================================================
	// STEP 5: WATCH FOR NEW SURVEYS
	// =========================================================================
	if flags.watch {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Printf("Watching %s (Ctrl+C to stop)\n", cfg.InputDir)
		return gen.Watch(ctx, report.DefaultSettle, func(r report.Result) {
			fmt.Println(resultLine(r))
		})
	}
	return nil
}

// processAll runs the generator over paths and writes the run summary.
func processAll(ctx context.Context, gen *report.Generator, cfg *config.MainConfig, paths []string) error {
	results, summary := gen.RunAll(ctx, paths)

	for _, r := range results {
		fmt.Println(resultLine(r))
	}

	fmt.Printf("\nProcessed %d file(s): %d succeeded, %d failed\n",
		summary.TotalFiles, summary.SuccessfulFiles, summary.FailedFiles)

	if summaryPath, err := utils.WriteSummaryLog(summary, cfg.OutputDir); err != nil {
		logger.Warn("Failed to write summary log", zap.Error(err))
	} else {
		logger.Info("Wrote summary log", zap.String("path", summaryPath))
	}

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.FailedFiles, summary.TotalFiles)
	}
	return nil
}

// applyOverrides returns a copy of cfg with the command-line flags applied.
func applyOverrides(cfg config.MainConfig, flags *reportFlags) (*config.MainConfig, error) {
	if flags.outDir != "" {
		cfg.OutputDir = flags.outDir
	}
	if len(flags.formats) > 0 {
		formats, err := config.ParseFormats(flags.formats)
		if err != nil {
			return nil, err
		}
		cfg.Formats = formats
	}
	return &cfg, nil
}
