package membership

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wardListText = `
- 99-Orphan Ward

Circle A Wards:
- 01-Alpha
-   02-Beta

  Circle B Wards:
- 03-Gamma
not a member line
-missing space
- 01-Alpha
`

func TestParseWardList(t *testing.T) {
	t.Parallel()

	table := ParseWardList(wardListText)

	assert.Equal(t, []string{"Circle A", "Circle B"}, table.Names())
	assert.Equal(t, []string{"01-Alpha", "02-Beta"}, table.Members("Circle A"))
	assert.Equal(t, []string{"03-Gamma", "01-Alpha"}, table.Members("Circle B"))
	assert.Nil(t, table.Members("Circle C"))
}

func TestParseWardList_OrphanMemberDropped(t *testing.T) {
	t.Parallel()

	idx := ParseWardList(wardListText).Index(LastWins)

	_, ok := idx.Lookup("99-Orphan Ward")
	assert.False(t, ok)
}

func TestParseWardList_ReopenedGroupResets(t *testing.T) {
	t.Parallel()

	table := ParseWardList("X Wards:\n- a\nY Wards:\n- b\nX Wards:\n- c\n")

	assert.Equal(t, []string{"X", "Y"}, table.Names())
	assert.Equal(t, []string{"c"}, table.Members("X"))
}

func TestParseWardList_LongLineKeepsLaterGroups(t *testing.T) {
	t.Parallel()

	long := "- " + strings.Repeat("w", 2*1024*1024)
	table := ParseWardList("A Wards:\n" + long + "\nB Wards:\n- 01-Alpha\n")

	assert.Equal(t, []string{"A", "B"}, table.Names())
	assert.Equal(t, []string{"01-Alpha"}, table.Members("B"))
}

func TestIndex_Policies(t *testing.T) {
	t.Parallel()

	table := ParseWardList(wardListText)

	first := table.Index(FirstWins)
	last := table.Index(LastWins)

	assert.Equal(t, "Circle A", first.Classify("01-Alpha", "Other"))
	assert.Equal(t, "Circle B", last.Classify("01-Alpha", "Other"))
	assert.Equal(t, "Circle B", first.Classify("03-Gamma", "Other"))
	assert.Equal(t, "Other", first.Classify("unknown", "Other"))
}

func TestDuplicates(t *testing.T) {
	t.Parallel()

	dups := ParseWardList(wardListText).Duplicates()

	require.Len(t, dups, 1)
	assert.Equal(t, Duplicate{Member: "01-Alpha", Groups: []string{"Circle A", "Circle B"}}, dups[0])
	assert.Empty(t, FromLists(DefaultCircles()).Duplicates())
}

func TestDefaultCircles(t *testing.T) {
	t.Parallel()

	table := FromLists(DefaultCircles())
	idx := table.Index(FirstWins)

	assert.Equal(t, []string{"Aniket", "Abhinav", "Bharat", "Nishant", "Rahul", "Ranveer"}, table.Names())
	assert.Equal(t, "Aniket", idx.Classify("09-Gandhi Nagar", ""))
	assert.Equal(t, "Ranveer", idx.Classify("60-Jagannath Puri", ""))
	assert.Len(t, idx, 70)
}

func TestFormat_RoundTrip(t *testing.T) {
	t.Parallel()

	table := FromLists(DefaultCircles())
	again := ParseWardList(Format(table))

	assert.Equal(t, table.Groups(), again.Groups())
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	txt := filepath.Join(dir, "circle_ward_names.txt")
	require.NoError(t, os.WriteFile(txt, []byte("North Wards:\n- 01-Alpha\n"), 0o644))

	yml := filepath.Join(dir, "circles.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("circles:\n  - name: North\n    wards: [\"01-Alpha\", \" \"]\n"), 0o644))

	for _, path := range []string{txt, yml} {
		table, err := LoadFile(path)
		require.NoError(t, err, path)
		assert.Equal(t, []Group{{Name: "North", Members: []string{"01-Alpha"}}}, table.Groups(), path)
	}

	_, err := LoadFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("circles: [:"), 0o644))
	_, err = LoadFile(bad)
	assert.Error(t, err)
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	p, err := ParsePolicy("", LastWins)
	require.NoError(t, err)
	assert.Equal(t, LastWins, p)

	p, err = ParsePolicy("First", LastWins)
	require.NoError(t, err)
	assert.Equal(t, FirstWins, p)

	_, err = ParsePolicy("middle", FirstWins)
	assert.Error(t, err)
	assert.Equal(t, "last", LastWins.String())
}
