package params

import (
	"maps"
	"slices"
)

// Structured list fields are edited as ordered lists of sub-records:
// "formFields" on form nodes and "fields" on database nodes. Legacy configs
// stored these as maps keyed by the record's identifying attribute; they are
// normalized into lists at the read boundary and never propagated as maps.

// listKeyAttrs maps list field names to the sub-record attribute that legacy
// map keys are folded into.
var listKeyAttrs = map[string]string{
	"formFields": "label",
	"fields":     "name",
}

// defaultRecords maps list field names to the record shape appended by the
// editor's "add" affordance.
var defaultRecords = map[string]map[string]any{
	"formFields": {"label": "", "type": "text", "required": false},
	"fields":     {"name": "", "type": "string", "value": ""},
}

// NormalizeList coerces a stored list field value into an ordered list of
// records. Lists pass through (non-map elements are dropped); legacy
// map-shaped values are converted with keys sorted for a stable order, the
// key becoming the record's identifying attribute.
func NormalizeList(field string, value any) []map[string]any {
	switch v := value.(type) {
	case []map[string]any:
		return v
	case []any:
		records := make([]map[string]any, 0, len(v))

		for _, item := range v {
			if record, ok := item.(map[string]any); ok {
				records = append(records, record)
			}
		}

		return records
	case map[string]any:
		keyAttr := listKeyAttrs[field]
		keys := slices.Sorted(maps.Keys(v))
		records := make([]map[string]any, 0, len(keys))

		for _, key := range keys {
			record, ok := v[key].(map[string]any)
			if !ok {
				record = map[string]any{}
			}

			if keyAttr != "" {
				record[keyAttr] = key
			}

			records = append(records, record)
		}

		return records
	default:
		return []map[string]any{}
	}
}

// AppendRecord appends the field's documented default record shape.
func AppendRecord(field string, records []map[string]any) []map[string]any {
	defaults, ok := defaultRecords[field]
	if !ok {
		defaults = map[string]any{}
	}

	record := make(map[string]any, len(defaults))
	maps.Copy(record, defaults)

	return append(records, record)
}

// RemoveRecord removes the record at index. Out-of-range indexes are a
// no-op.
func RemoveRecord(records []map[string]any, index int) []map[string]any {
	if index < 0 || index >= len(records) {
		return records
	}

	return append(records[:index:index], records[index+1:]...)
}

// UpdateRecord merges a partial update into the record at index without
// touching its other attributes. Out-of-range indexes are a no-op.
func UpdateRecord(records []map[string]any, index int, partial map[string]any) []map[string]any {
	if index < 0 || index >= len(records) {
		return records
	}

	maps.Copy(records[index], partial)

	return records
}
