// =============================================================================
// Coverage Report Generator - Membership Tables
// =============================================================================
//
// A membership table assigns wards to circles. It is configuration data: it
// is built once, before aggregation, and only read afterwards.
//
// SOURCES:
//   1. A literal list of named ward lists (the area report's six circles).
//   2. A ward-list text file:
//
//        Aniket Wards:
//        - 09-Gandhi Nagar
//        - 34-Radhaniwas
//
//        Abhinav Wards:
//        - 08-Atas
//
//   3. A YAML file with the same content (see LoadFile).
//
// CLASSIFICATION:
//   Classification is a single lookup in a reverse index (ward -> circle).
//   When a ward is declared in more than one circle the index resolves the
//   conflict with an explicit policy (FirstWins or LastWins).
//
// =============================================================================

package membership

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// groupSuffix marks a line that opens a new group in the text format.
const groupSuffix = " Wards:"

// memberPrefix marks a member line in the text format.
const memberPrefix = "- "

// =============================================================================
// TABLE STRUCTURES
// =============================================================================

// Group is one named list of members.
type Group struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"wards"`
}

// Table is an ordered set of groups. Group order is declaration order.
type Table struct {
	groups []Group
	pos    map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{pos: make(map[string]int)}
}

// FromLists builds a table from literal lists. Members are trimmed and blank
// members are skipped. A repeated group name replaces the earlier member list
// but keeps the earlier position.
func FromLists(groups []Group) *Table {
	t := NewTable()
	for _, g := range groups {
		t.open(g.Name)
		for _, m := range g.Members {
			t.add(g.Name, m)
		}
	}
	return t
}

// open starts (or restarts) a group.
func (t *Table) open(name string) {
	if i, ok := t.pos[name]; ok {
		t.groups[i].Members = nil
		return
	}
	t.pos[name] = len(t.groups)
	t.groups = append(t.groups, Group{Name: name})
}

func (t *Table) add(group, member string) {
	member = strings.TrimSpace(member)
	if member == "" {
		return
	}
	i := t.pos[group]
	t.groups[i].Members = append(t.groups[i].Members, member)
}

// Groups returns a copy of the groups in declaration order.
func (t *Table) Groups() []Group {
	out := make([]Group, len(t.groups))
	for i, g := range t.groups {
		out[i] = Group{Name: g.Name, Members: append([]string(nil), g.Members...)}
	}
	return out
}

// Names returns the group names in declaration order.
func (t *Table) Names() []string {
	names := make([]string, len(t.groups))
	for i, g := range t.groups {
		names[i] = g.Name
	}
	return names
}

// Members returns the members of a group, or nil if the group is unknown.
func (t *Table) Members(group string) []string {
	i, ok := t.pos[group]
	if !ok {
		return nil
	}
	return append([]string(nil), t.groups[i].Members...)
}

// Len returns the number of groups.
func (t *Table) Len() int {
	return len(t.groups)
}

// =============================================================================
// REVERSE INDEX
// =============================================================================

// Policy decides which group owns a member declared in several groups.
type Policy int

const (
	// FirstWins keeps the first group in declaration order. This matches a
	// sequential chain of membership checks.
	FirstWins Policy = iota

	// LastWins keeps the last group seen. This matches building the index
	// by overwriting map entries while walking the groups.
	LastWins
)

// String returns the config name of the policy.
func (p Policy) String() string {
	switch p {
	case FirstWins:
		return "first"
	case LastWins:
		return "last"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps "first"/"last" to a Policy. Empty means def.
func ParsePolicy(s string, def Policy) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "first", "first_wins":
		return FirstWins, nil
	case "last", "last_wins":
		return LastWins, nil
	default:
		return def, fmt.Errorf("unknown membership policy %q", s)
	}
}

// Index maps a member to its group.
type Index map[string]string

// Index builds the reverse index of the table under the given policy.
func (t *Table) Index(policy Policy) Index {
	idx := make(Index)
	for _, g := range t.groups {
		for _, m := range g.Members {
			if _, taken := idx[m]; taken && policy == FirstWins {
				continue
			}
			idx[m] = g.Name
		}
	}
	return idx
}

// Lookup returns the group of a member.
func (idx Index) Lookup(member string) (string, bool) {
	group, ok := idx[member]
	return group, ok
}

// Classify returns the group of a member, or fallback when it has none.
func (idx Index) Classify(member, fallback string) string {
	if group, ok := idx[member]; ok {
		return group
	}
	return fallback
}

// Duplicate is a member declared in more than one group.
type Duplicate struct {
	Member string
	Groups []string
}

// Duplicates lists members declared in several groups, in order of first
// declaration.
func (t *Table) Duplicates() []Duplicate {
	seenIn := make(map[string][]string)
	var order []string

	for _, g := range t.groups {
		for _, m := range g.Members {
			groups, seen := seenIn[m]
			if !seen {
				order = append(order, m)
			}
			if len(groups) > 0 && groups[len(groups)-1] == g.Name {
				continue
			}
			seenIn[m] = append(groups, g.Name)
		}
	}

	var dups []Duplicate
	for _, m := range order {
		if len(seenIn[m]) > 1 {
			dups = append(dups, Duplicate{Member: m, Groups: seenIn[m]})
		}
	}
	return dups
}

// =============================================================================
// TEXT FORMAT
// =============================================================================

// ParseWardList parses the "<Name> Wards:" / "- member" text format.
//
// RULES:
//   - Lines are trimmed; blank lines are ignored.
//   - A line ending in " Wards:" opens a group named by the rest of the line.
//   - A line starting with "- " adds its trimmed remainder to the open group.
//   - Member lines before the first group header are dropped.
//   - Any other line is ignored.
func ParseWardList(text string) *Table {
	t := NewTable()
	current := ""
	hasCurrent := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasSuffix(line, groupSuffix):
			current = strings.TrimSuffix(line, groupSuffix)
			hasCurrent = true
			t.open(current)
		case strings.HasPrefix(line, memberPrefix):
			if !hasCurrent {
				continue
			}
			t.add(current, line[len(memberPrefix):])
		}
	}

	return t
}

// Format writes the table back in the text format.
func Format(t *Table) string {
	var b strings.Builder
	for i, g := range t.groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(g.Name + groupSuffix + "\n")
		for _, m := range g.Members {
			b.WriteString(memberPrefix + m + "\n")
		}
	}
	return b.String()
}

// yamlFile is the YAML layout of a membership file.
type yamlFile struct {
	Circles []Group `yaml:"circles"`
}

// ParseYAML decodes a YAML membership document.
func ParseYAML(data []byte) (*Table, error) {
	var doc yamlFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse membership yaml: %w", err)
	}
	return FromLists(doc.Circles), nil
}

// LoadFile reads a membership file. Files ending in .yaml or .yml are
// decoded as YAML; everything else uses the ward-list text format.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ward list: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseWardList(string(data)), nil
	}
}
