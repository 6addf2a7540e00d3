package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("Zone,Ward\n"), 0o644))
}

func newTestManager(t *testing.T) *FileManager {
	t.Helper()
	root := t.TempDir()
	return NewFileManager(
		filepath.Join(root, "input"),
		filepath.Join(root, "output"),
		filepath.Join(root, "input_archive"),
		filepath.Join(root, "output_archive"),
	)
}

func TestDiscoverInputFiles(t *testing.T) {
	t.Parallel()

	fm := newTestManager(t)
	touch(t, filepath.Join(fm.InputDir, "b.csv"))
	touch(t, filepath.Join(fm.InputDir, "a.XLSX"))
	touch(t, filepath.Join(fm.InputDir, "notes.txt"))
	touch(t, filepath.Join(fm.InputDir, "~$a.xlsx"))
	touch(t, filepath.Join(fm.InputDir, "nested", "c.csv"))

	files, err := fm.DiscoverInputFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(fm.InputDir, "a.XLSX"),
		filepath.Join(fm.InputDir, "b.csv"),
	}, files)

	csvOnly, err := fm.DiscoverInputFiles(".csv")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(fm.InputDir, "b.csv")}, csvOnly)

	missing := NewFileManager(filepath.Join(t.TempDir(), "none"), "", "", "")
	_, err = missing.DiscoverInputFiles()
	assert.Error(t, err)
}

func TestEnsureDirectories(t *testing.T) {
	t.Parallel()

	fm := newTestManager(t)
	require.NoError(t, fm.EnsureDirectories())
	assert.DirExists(t, fm.OutputDir)
	assert.NoDirExists(t, fm.InputArchiveDir)

	fm.ArchiveInputs = true
	fm.ArchiveOutputs = true
	require.NoError(t, fm.EnsureDirectories())
	assert.DirExists(t, fm.InputArchiveDir)
	assert.DirExists(t, fm.OutputArchiveDir)
}

func TestArchive(t *testing.T) {
	t.Parallel()

	fm := newTestManager(t)
	input := filepath.Join(fm.InputDir, "survey.csv")
	output := filepath.Join(fm.OutputDir, "area_survey.html")
	touch(t, input)
	touch(t, output)

	// Archival disabled: nothing moves.
	path, err := fm.ArchiveInputFile(input)
	require.NoError(t, err)
	assert.Equal(t, input, path)
	assert.FileExists(t, input)

	fm.ArchiveInputs = true
	fm.ArchiveOutputs = true

	path, err = fm.ArchiveInputFile(input)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fm.InputArchiveDir, "survey.csv"), path)
	assert.FileExists(t, path)
	assert.NoFileExists(t, input)

	path, err = fm.ArchiveOutputFile(output)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.FileExists(t, output)

	fm.UseTimestampSubdirs = true
	dated := fm.getArchivePath(fm.InputArchiveDir, "x.csv")
	assert.Regexp(t, regexp.MustCompile(`\d{4}.\d{2}.\d{2}.x\.csv$`), dated)
}

func TestGenerateOutputFileName(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)

	name := GenerateOutputFileName("{report}_{source}_{timestamp}", map[string]string{
		"report": "area",
		"source": "ward/survey",
	}, ".html", now)
	assert.Equal(t, "area_ward_survey_20261019_150405.html", name)

	withID := GenerateOutputFileName("{report}_{uuid}", map[string]string{"report": "fleet"}, ".xlsx", now)
	assert.Regexp(t, `^fleet_[0-9a-f-]{36}\.xlsx$`, withID)

	assert.Equal(t, "x_20261019_150405.json", GenerateOutputFileName("x_{date}_{time}.json", nil, ".json", now))
	assert.Equal(t, "survey", BaseName("/tmp/in/survey.csv"))
}

func TestWriteSummaryLog(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	start := time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)
	summary := ProcessingSummary{
		Report:          "area",
		StartTime:       start,
		EndTime:         start.Add(2 * time.Second),
		TotalFiles:      2,
		SuccessfulFiles: 1,
		FailedFiles:     1,
		TotalRecords:    10,
		ProcessedFiles: []ProcessedFileInfo{
			{InputFile: "a.csv", OutputFiles: []string{"a.html", "a.xlsx"}, Records: 10, Circles: 3},
		},
		FailedFilesList: []FailedFileInfo{{InputFile: "b.csv", ErrorMessage: "boom"}},
	}

	path, err := WriteSummaryLog(summary, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "area_summary_20261019_150002.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "Run Summary (area report)")
	assert.Contains(t, text, "Duration:       2s")
	assert.Contains(t, text, "Output:       a.xlsx")
	assert.Contains(t, text, "Error: boom")
}
