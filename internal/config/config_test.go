package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/coverage-report/internal/membership"
)

func TestLoadMainConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadMainConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, []string{FormatHTML}, cfg.Formats)
	assert.Equal(t, 1, cfg.MaxConcurrency)
	assert.Equal(t, "Other Circles", cfg.Sentinel)
	assert.Equal(t, membership.FirstWins, cfg.AreaPolicy())
	assert.Equal(t, membership.LastWins, cfg.FleetPolicy())
	assert.Equal(t, "circle_ward_names.txt", cfg.Fleet.WardList)
}

func TestLoadMainConfig_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output_dir: ./reports
formats: [HTML, " xlsx", json]
max_concurrency: 3
sentinel: Unmapped
fields:
  ward: Ward Name
fleet:
  ward_list: wards.yaml
  policy: first
normalization:
  - field: Ward
    actions:
      - type: collapse_spaces
`), 0o644))

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "./reports", cfg.OutputDir)
	assert.Equal(t, []string{"html", "xlsx", "json"}, cfg.Formats)
	assert.True(t, cfg.HasFormat(FormatXLSX))
	assert.Equal(t, 3, cfg.MaxConcurrency)
	assert.Equal(t, membership.FirstWins, cfg.FleetPolicy())

	opts := cfg.AggregateOptions()
	assert.Equal(t, "Unmapped", opts.Sentinel)
	assert.Equal(t, "Ward Name", opts.Fields.Ward)

	require.Len(t, cfg.Normalization, 1)
	assert.Equal(t, "collapse_spaces", cfg.Normalization[0].Actions[0].Type)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"bad yaml":   "formats: [",
		"bad format": "formats: [pdf]",
		"bad level":  "log_level: loud",
		"bad policy": "area:\n  policy: random",
		"rule field": "normalization:\n  - actions: []",
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestParseFormats(t *testing.T) {
	t.Parallel()

	formats, err := ParseFormats([]string{"XLSX", " html ", "xlsx"})
	require.NoError(t, err)
	assert.Equal(t, []string{FormatXLSX, FormatHTML}, formats)

	_, err = ParseFormats([]string{"html", "pdf"})
	assert.Error(t, err)
}
