// Package params implements the per-node-type parameter and field model:
// editing affordances, total coercions, structured list handling, and field
// visibility. Every operation here is a total function; invalid input is
// resolved to a documented default, never an error.
package params

import (
	"math"
	"strconv"
	"strings"
)

// EnsureParameters lazily initializes the "parameters" sub-map of a node
// config. Idempotent: running it on an already-initialized config returns the
// existing map untouched.
func EnsureParameters(config map[string]any) map[string]any {
	if config == nil {
		return map[string]any{}
	}

	if p, ok := config["parameters"].(map[string]any); ok {
		return p
	}

	p := map[string]any{}
	config["parameters"] = p

	return p
}

// CoerceNumber parses any scalar into a float64, falling back to 0 on
// malformed input.
func CoerceNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}

		return parsed
	default:
		return 0
	}
}

// CoerceString renders any scalar as a string, with "" for nil.
func CoerceString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case nil:
		return ""
	default:
		return ""
	}
}

// GetPath reads a dotted path (e.g. "mode.dailyTime") out of a parameter
// map. Missing segments yield nil.
func GetPath(parameters map[string]any, path string) any {
	segments := strings.Split(path, ".")
	current := any(parameters)

	for _, seg := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}

		current = m[seg]
	}

	return current
}

// SetPath writes a dotted path into a parameter map, creating intermediate
// maps as needed. Sibling keys of every touched object are preserved.
func SetPath(parameters map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := parameters

	for _, seg := range segments[:len(segments)-1] {
		next, ok := current[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[seg] = next
		}

		current = next
	}

	current[segments[len(segments)-1]] = value
}

// MB/byte conversion for size fields. Sizes are stored in bytes and edited
// in MB; integer MB inputs round-trip exactly.
const bytesPerMB = 1048576

func MBFromBytes(bytes float64) float64 {
	return bytes / bytesPerMB
}

func BytesFromMB(mb float64) float64 {
	return math.Round(mb * bytesPerMB)
}

// SplitCommaList turns a single text field into a trimmed list, dropping
// empty entries.
func SplitCommaList(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

// JoinCommaList renders a list field back into its single-text editing form.
func JoinCommaList(items []string) string {
	return strings.Join(items, ", ")
}
