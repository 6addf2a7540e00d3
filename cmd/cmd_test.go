package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/ginjaninja78/coverage-report/internal/config"
	"github.com/ginjaninja78/coverage-report/internal/membership"
	"github.com/ginjaninja78/coverage-report/internal/report"
)

func TestApplyOverrides(t *testing.T) {
	base := config.Default()

	cfg, err := applyOverrides(*base, &reportFlags{outDir: "/tmp/out", formats: []string{"JSON", "xlsx"}})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, []string{config.FormatJSON, config.FormatXLSX}, cfg.Formats)
	assert.Equal(t, "./output", base.OutputDir, "base config must not change")

	_, err = applyOverrides(*base, &reportFlags{formats: []string{"pdf"}})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "warn"
	cfg.LogFile = filepath.Join(t.TempDir(), "run.log")

	l, err := newLogger(cfg, false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	l, err = newLogger(cfg, true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	l.Debug("hello")
	_ = l.Sync()
	assert.FileExists(t, cfg.LogFile)
}

func TestWardsCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wards.txt")
	require.NoError(t, os.WriteFile(path, []byte("North Wards:\n- W1\n- W2\nSouth Wards:\n- W2\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", filepath.Join(dir, "none.yaml"), "wards", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	text := out.String()
	assert.Contains(t, text, "North Wards:\n- W1\n- W2\n")
	assert.Contains(t, text, "2 circle(s), 1 ward(s) listed under several circles")
	assert.Contains(t, text, "W2: North, South (first: North, last: South)")
}

func TestRootHelpNamesBuiltInCircle(t *testing.T) {
	circles := membership.FromLists(membership.DefaultCircles()).Names()

	examples := regexp.MustCompile(`--circle (\S+)`).FindAllStringSubmatch(rootCmd.Long, -1)
	require.NotEmpty(t, examples)
	for _, m := range examples {
		assert.Contains(t, circles, m[1])
	}
}

func TestResultLine(t *testing.T) {
	ok := report.Result{
		FilePath:    "/in/survey.csv",
		OutputFiles: []string{"/out/area_survey.html", "/out/area_survey.xlsx"},
		Success:     true,
		Stats:       report.ProcessingStats{RecordsProcessed: 12},
	}
	line := resultLine(ok)
	assert.Contains(t, line, "survey.csv -> area_survey.html, area_survey.xlsx")
	assert.Contains(t, line, "(12 records)")

	ok.Stats.Warnings = 2
	assert.Contains(t, resultLine(ok), "(2 warnings)")

	failed := report.Result{FilePath: "/in/bad.csv", Error: errors.New("boom")}
	assert.Contains(t, resultLine(failed), "bad.csv: boom")
}
