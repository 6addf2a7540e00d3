// =============================================================================
// Coverage Report Generator - Report Pipeline
// =============================================================================
//
// This module runs the report pipeline for a single survey file, from reading
// the file to writing the rendered reports.
//
// PIPELINE:
//   1. Read the survey (.csv or .xlsx) into records
//   2. Apply the configured normalization rules
//   3. Run the data-quality checks (warnings only)
//   4. Classify records into circles and aggregate them
//   5. Flatten the aggregate tree into a report view
//   6. Render and write every enabled output format
//   7. Write the error log and archive the processed files
//
// A read failure stops the pipeline before aggregation, so a report is never
// built from partial input. Data-quality problems never stop it.
//
// CONCURRENCY:
//   A Generator is safe for concurrent use: every Process call builds its
//   own tree and the shared membership index is read-only.
//
// =============================================================================

package report

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/coverage-report/internal/aggregate"
	"github.com/ginjaninja78/coverage-report/internal/config"
	"github.com/ginjaninja78/coverage-report/internal/csvparser"
	"github.com/ginjaninja78/coverage-report/internal/htmlreport"
	"github.com/ginjaninja78/coverage-report/internal/membership"
	"github.com/ginjaninja78/coverage-report/internal/normalize"
	"github.com/ginjaninja78/coverage-report/internal/types"
	"github.com/ginjaninja78/coverage-report/internal/validation"
	"github.com/ginjaninja78/coverage-report/internal/xlsxreport"
	"github.com/ginjaninja78/coverage-report/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single survey file.
type Result struct {
	// FilePath is the survey file that was processed.
	FilePath string

	// OutputFiles are the reports written, in format order.
	OutputFiles []string

	// ErrorLog is the data-quality log, empty when none was written.
	ErrorLog string

	// ArchivePath is where the survey file was moved, or FilePath.
	ArchivePath string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Issues are the data-quality findings of the file and the membership
	// table.
	Issues []*validation.Issue

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RecordsProcessed is the number of non-blank survey records.
	RecordsProcessed int

	// Circles is the number of circles in the report, sentinel included.
	Circles int

	// Households is the grand total of the report.
	Households int

	// UnclassifiedWards lists wards that fell back to the sentinel group.
	UnclassifiedWards []string

	// AbsentRoutes is the number of fleet records without a vehicle.
	AbsentRoutes int

	// NormalizedValues is the number of field values changed by
	// normalization.
	NormalizedValues int

	// Warnings is the number of warning-level issues.
	Warnings int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// GENERATOR
// =============================================================================

// Options configures a Generator beyond the main configuration.
type Options struct {
	// HTML selects the print variant of HTML output.
	HTML htmlreport.Options

	// Sheet is the worksheet read from .xlsx surveys. Empty means the first.
	Sheet string

	// Now returns the generation time. Default: time.Now.
	Now func() time.Time
}

// Generator produces one kind of report from survey files.
type Generator struct {
	kind       types.ReportKind
	cfg        *config.MainConfig
	table      *membership.Table
	index      membership.Index
	normalizer *normalize.Normalizer
	files      *utils.FileManager
	tableCheck *validation.Result
	opts       Options
	logger     *zap.Logger
}

// NewGenerator prepares a generator.
//
// PARAMETERS:
//   - kind: The report to build.
//   - cfg: The main configuration.
//   - table: The circle membership table (see LoadMembership).
//   - opts: Print variant and input options.
//   - logger: The logger. nil disables logging.
//
// RETURNS:
//   - The generator.
//   - An error if the normalization rules do not compile.
func NewGenerator(kind types.ReportKind, cfg *config.MainConfig, table *membership.Table, opts Options, logger *zap.Logger) (*Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	normalizer, err := normalize.New(cfg.Normalization)
	if err != nil {
		return nil, fmt.Errorf("invalid normalization rules: %w", err)
	}

	policy := cfg.AreaPolicy()
	if kind == types.FleetReport {
		policy = cfg.FleetPolicy()
	}

	files := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir, cfg.OutputArchiveDir)
	files.ArchiveInputs = cfg.ArchiveInputs
	files.ArchiveOutputs = cfg.ArchiveOutputs

	g := &Generator{
		kind:       kind,
		cfg:        cfg,
		table:      table,
		index:      table.Index(policy),
		normalizer: normalizer,
		files:      files,
		tableCheck: validation.ValidateMembership(table, policy),
		opts:       opts,
		logger:     logger.With(zap.String("report", string(kind))),
	}

	for _, issue := range g.tableCheck.Issues {
		g.logger.Warn("Ambiguous ward membership", zap.String("ward", issue.Field), zap.String("circles", issue.Value))
	}

	return g, nil
}

// Files returns the file manager built from the configuration.
func (g *Generator) Files() *utils.FileManager {
	return g.files
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Process runs the pipeline for one survey file.
func (g *Generator) Process(ctx context.Context, path string) Result {
	startTime := time.Now()
	result := Result{FilePath: path, ArchivePath: path}
	log := g.logger.With(zap.String("file", path))

	fail := func(err error) Result {
		result.Error = err
		result.Stats.ProcessingTime = time.Since(startTime)
		log.Error("Processing failed", zap.Error(err))
		return result
	}

	log.Info("Processing file")

	// =========================================================================
	// STEP 1: READ SURVEY
	// =========================================================================
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	data, err := g.read(path)
	if err != nil {
		return fail(fmt.Errorf("failed to read survey: %w", err))
	}
	result.Stats.RecordsProcessed = len(data.Rows)
	log.Debug("Parsed survey", zap.Int("records", len(data.Rows)), zap.Strings("headers", data.Headers))

	// =========================================================================
	// STEP 2: NORMALIZE FIELDS
	// =========================================================================
	data.Rows, result.Stats.NormalizedValues = g.normalizer.Apply(data.Rows)
	if result.Stats.NormalizedValues > 0 {
		log.Debug("Normalized field values", zap.Int("changed", result.Stats.NormalizedValues))
	}

	// =========================================================================
	// STEP 3: DATA QUALITY CHECKS
	// =========================================================================
	checks := validation.NewValidator(g.kind, g.cfg.Fields, validation.DefaultOptions()).Validate(data)
	checks.Merge(g.tableCheck)
	result.Issues = checks.Issues
	result.Stats.Warnings = checks.WarningCount
	for _, issue := range checks.Issues {
		if issue.Severity == validation.SeverityWarning {
			log.Warn("Data quality issue", zap.String("rule", issue.Rule), zap.Int("line", issue.LineNumber), zap.String("detail", issue.Error()))
		}
	}

	// =========================================================================
	// STEP 4: CLASSIFY AND AGGREGATE
	// =========================================================================
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	opts := g.cfg.AggregateOptions()
	result.Stats.UnclassifiedWards = unclassifiedWards(data, g.index, opts.Fields.WithDefaults().Ward)
	if len(result.Stats.UnclassifiedWards) > 0 {
		log.Info("Wards without a circle", zap.String("group", opts.Sentinel), zap.Strings("wards", result.Stats.UnclassifiedWards))
	}

	// =========================================================================
	// STEP 5: BUILD REPORT VIEW
	// =========================================================================
	source := filepath.Base(path)
	generatedAt := g.opts.Now()

	var out rendered
	switch g.kind {
	case types.FleetReport:
		tree := aggregate.AggregateFleet(data.Rows, g.index, opts)
		view := tree.View()
		view.Title, view.Source, view.GeneratedAt = g.cfg.Fleet.Title, source, generatedAt
		for _, c := range view.Circles {
			result.Stats.AbsentRoutes += len(c.AbsentRoutes)
		}
		result.Stats.Circles = len(view.Circles)
		result.Stats.Households = view.Overall.Total
		out = fleetOutput(view, g.opts.HTML)
	default:
		tree := aggregate.AggregateArea(data.Rows, g.index, opts)
		view := tree.View()
		view.Title, view.Source, view.GeneratedAt = g.cfg.Area.Title, source, generatedAt
		result.Stats.Circles = len(view.Circles)
		result.Stats.Households = view.Overall.Total
		out = areaOutput(view, g.opts.HTML)
	}
	log.Debug("Aggregated survey", zap.Int("circles", result.Stats.Circles), zap.Int("households", result.Stats.Households))

	// =========================================================================
	// STEP 6: RENDER AND WRITE OUTPUTS
	// =========================================================================
	if err := g.files.EnsureDirectories(); err != nil {
		return fail(err)
	}

	params := map[string]string{"report": string(g.kind), "source": utils.BaseName(path)}
	for _, format := range g.cfg.Formats {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		name := utils.GenerateOutputFileName(g.cfg.OutputNameFormat, params, "."+format, generatedAt)
		outputPath := filepath.Join(g.cfg.OutputDir, name)
		if err := out.write(format, outputPath); err != nil {
			return fail(err)
		}
		result.OutputFiles = append(result.OutputFiles, outputPath)
		log.Info("Wrote report", zap.String("format", format), zap.String("output", outputPath))
	}

	// =========================================================================
	// STEP 7: ERROR LOG AND ARCHIVAL
	// =========================================================================
	if g.cfg.WriteErrorLog && len(result.Issues) > 0 {
		name := utils.GenerateOutputFileName(g.cfg.OutputNameFormat+"_issues", params, ".log", generatedAt)
		logPath := filepath.Join(g.cfg.OutputDir, name)
		if err := validation.WriteErrorLog(path, result.Issues, logPath); err != nil {
			log.Warn("Failed to write error log", zap.Error(err))
		} else {
			result.ErrorLog = logPath
		}
	}

	g.archive(&result, log)

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)
	log.Info("Processing complete",
		zap.Int("records", result.Stats.RecordsProcessed),
		zap.Int("circles", result.Stats.Circles),
		zap.Int("warnings", result.Stats.Warnings),
		zap.Duration("elapsed", result.Stats.ProcessingTime))

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// read loads a survey file by extension.
func (g *Generator) read(path string) (*csvparser.CSVData, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return xlsxreport.ReadSurvey(path, g.opts.Sheet)
	default:
		return csvparser.ParseFile(path)
	}
}

// archive moves the survey and copies the reports. Archival failures are
// logged, not returned: the reports already exist.
func (g *Generator) archive(result *Result, log *zap.Logger) {
	for _, out := range result.OutputFiles {
		if _, err := g.files.ArchiveOutputFile(out); err != nil {
			log.Warn("Failed to archive report", zap.String("output", out), zap.Error(err))
		}
	}

	archived, err := g.files.ArchiveInputFile(result.FilePath)
	if err != nil {
		log.Warn("Failed to archive survey", zap.Error(err))
		return
	}
	result.ArchivePath = archived
}

// unclassifiedWards lists the distinct non-blank wards missing from index,
// in order of first appearance.
func unclassifiedWards(data *csvparser.CSVData, index membership.Index, wardField string) []string {
	missing := &csvparser.CSVData{
		Headers: data.Headers,
		Rows: csvparser.FilterRows(data, func(row csvparser.Record) bool {
			ward := row.Get(wardField)
			if ward == "" {
				return false
			}
			_, ok := index.Lookup(ward)
			return !ok
		}),
	}
	return csvparser.GetUniqueValues(missing, wardField)
}
