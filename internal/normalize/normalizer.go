// =============================================================================
// Coverage Report Generator - Field Normalization
// =============================================================================
//
// Survey exports are typed by hand in the field, so the same ward can show up
// as "09-Gandhi Nagar", "09-Gandhi  Nagar" or "9-Gandhi Nagar". Membership
// lookups are exact, which sends such rows to the sentinel group.
// Normalization rules from the configuration clean selected fields before
// aggregation.
//
// Rules are compiled once (regexes included) and applied to copies of the
// records; the parsed input is never modified.
//
// =============================================================================

package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ginjaninja78/coverage-report/internal/config"
	"github.com/ginjaninja78/coverage-report/internal/csvparser"
)

// step is one compiled action.
type step func(value string) string

// Normalizer applies compiled rules to records.
type Normalizer struct {
	fields []string
	steps  map[string][]step
}

// New compiles the rules. Unknown action types and invalid regular
// expressions are configuration errors.
func New(rules []config.NormalizationRule) (*Normalizer, error) {
	n := &Normalizer{steps: make(map[string][]step)}

	for _, rule := range rules {
		if _, seen := n.steps[rule.Field]; !seen {
			n.fields = append(n.fields, rule.Field)
		}
		for _, action := range rule.Actions {
			s, err := compile(action)
			if err != nil {
				return nil, fmt.Errorf("field %q: action %q: %w", rule.Field, action.Type, err)
			}
			n.steps[rule.Field] = append(n.steps[rule.Field], s)
		}
	}

	return n, nil
}

// Empty reports whether the normalizer has no rules.
func (n *Normalizer) Empty() bool {
	return n == nil || len(n.fields) == 0
}

// Value applies the rules of a field to a single value.
func (n *Normalizer) Value(field, value string) string {
	if n == nil {
		return value
	}
	for _, s := range n.steps[field] {
		value = s(value)
	}
	return value
}

// Apply returns normalized copies of the records. The second result is the
// number of field values that changed.
func (n *Normalizer) Apply(records []csvparser.Record) ([]csvparser.Record, int) {
	if n.Empty() {
		return records, 0
	}

	changed := 0
	out := make([]csvparser.Record, len(records))
	for i, rec := range records {
		cp := make(csvparser.Record, len(rec))
		for k, v := range rec {
			cp[k] = v
		}
		for _, field := range n.fields {
			old, ok := cp[field]
			if !ok {
				continue
			}
			if v := n.Value(field, old); v != old {
				cp[field] = v
				changed++
			}
		}
		out[i] = cp
	}
	return out, changed
}

// =============================================================================
// ACTION COMPILATION
// =============================================================================

var spaceRun = regexp.MustCompile(`\s+`)

// compile turns a configured action into a step.
func compile(action config.NormalizationAction) (step, error) {
	switch action.Type {

	case "trim":
		return strings.TrimSpace, nil

	case "uppercase":
		return strings.ToUpper, nil

	case "lowercase":
		return strings.ToLower, nil

	case "collapse_spaces":
		// "09-Gandhi   Nagar " -> "09-Gandhi Nagar"
		return func(v string) string {
			return strings.TrimSpace(spaceRun.ReplaceAllString(v, " "))
		}, nil

	case "prepend_string":
		return func(v string) string { return action.Value + v }, nil

	case "append_string":
		return func(v string) string { return v + action.Value }, nil

	case "replace":
		if action.Find == "" {
			return nil, fmt.Errorf("replace needs find")
		}
		return func(v string) string {
			return strings.ReplaceAll(v, action.Find, action.Value)
		}, nil

	case "regex_replace":
		re, err := regexp.Compile(action.Find)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern: %w", err)
		}
		return func(v string) string {
			return re.ReplaceAllString(v, action.Value)
		}, nil

	case "pad_zeros_to_length":
		length, err := strconv.Atoi(action.Value)
		if err != nil || length <= 0 {
			return nil, fmt.Errorf("invalid length %q", action.Value)
		}
		return func(v string) string { return PadLeft(v, length, '0') }, nil

	case "remove_leading_zeros":
		return func(v string) string {
			trimmed := strings.TrimLeft(v, "0")
			if trimmed == "" && v != "" {
				return "0"
			}
			return trimmed
		}, nil

	case "lookup":
		table := action.LookupTable
		return func(v string) string {
			if replacement, ok := table[v]; ok {
				return replacement
			}
			return v
		}, nil

	default:
		return nil, fmt.Errorf("unknown action type")
	}
}

// PadLeft pads s on the left with padChar up to length runes.
func PadLeft(s string, length int, padChar rune) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	return strings.Repeat(string(padChar), length-n) + s
}
