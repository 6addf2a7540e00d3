package report

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/coverage-report/pkg/utils"
)

// RunAll processes survey files with at most cfg.MaxConcurrency files in
// flight. A failing file does not stop the others; results keep the order of
// paths.
func (g *Generator) RunAll(ctx context.Context, paths []string) ([]Result, utils.ProcessingSummary) {
	summary := utils.ProcessingSummary{
		Report:     string(g.kind),
		StartTime:  time.Now(),
		TotalFiles: len(paths),
	}
	results := make([]Result, len(paths))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.MaxConcurrency)
	for i, path := range paths {
		eg.Go(func() error {
			results[i] = g.Process(egCtx, path)
			return nil
		})
	}
	_ = eg.Wait()

	for _, r := range results {
		summary.Warnings += r.Stats.Warnings
		if !r.Success {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    r.FilePath,
				ErrorMessage: r.Error.Error(),
			})
			continue
		}
		summary.SuccessfulFiles++
		summary.TotalRecords += r.Stats.RecordsProcessed
		summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:   r.FilePath,
			OutputFiles: r.OutputFiles,
			ArchivePath: r.ArchivePath,
			Records:     r.Stats.RecordsProcessed,
			Circles:     r.Stats.Circles,
			Warnings:    r.Stats.Warnings,
			ProcessTime: r.Stats.ProcessingTime,
		})
	}
	summary.EndTime = time.Now()

	g.logger.Info("Run complete",
		zap.Int("files", summary.TotalFiles),
		zap.Int("succeeded", summary.SuccessfulFiles),
		zap.Int("failed", summary.FailedFiles),
		zap.Duration("elapsed", summary.EndTime.Sub(summary.StartTime)))

	return results, summary
}
