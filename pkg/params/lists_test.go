package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeList_PassThrough(t *testing.T) {
	records := []map[string]any{{"label": "Email", "type": "text"}}

	assert.Equal(t, records, NormalizeList("formFields", records))
}

func TestNormalizeList_AnySliceDropsNonRecords(t *testing.T) {
	value := []any{
		map[string]any{"name": "id"},
		"stray string",
		map[string]any{"name": "amount"},
	}

	records := NormalizeList("fields", value)

	require.Len(t, records, 2)
	assert.Equal(t, "id", records[0]["name"])
	assert.Equal(t, "amount", records[1]["name"])
}

func TestNormalizeList_LegacyMapShape(t *testing.T) {
	legacy := map[string]any{
		"Name":  map[string]any{"type": "text", "required": true},
		"Email": map[string]any{"type": "email"},
	}

	records := NormalizeList("formFields", legacy)

	require.Len(t, records, 2)
	assert.Equal(t, "Email", records[0]["label"])
	assert.Equal(t, "email", records[0]["type"])
	assert.Equal(t, "Name", records[1]["label"])
	assert.Equal(t, true, records[1]["required"])
}

func TestNormalizeList_LegacyMapUsesFieldKeyAttr(t *testing.T) {
	legacy := map[string]any{"amount": map[string]any{"type": "number"}}

	records := NormalizeList("fields", legacy)

	require.Len(t, records, 1)
	assert.Equal(t, "amount", records[0]["name"])
}

func TestNormalizeList_ScalarBecomesEmpty(t *testing.T) {
	assert.Empty(t, NormalizeList("formFields", "garbage"))
	assert.Empty(t, NormalizeList("formFields", nil))
}

func TestAppendRecord_DefaultShapes(t *testing.T) {
	forms := AppendRecord("formFields", nil)
	require.Len(t, forms, 1)
	assert.Equal(t, map[string]any{"label": "", "type": "text", "required": false}, forms[0])

	fields := AppendRecord("fields", nil)
	require.Len(t, fields, 1)
	assert.Equal(t, map[string]any{"name": "", "type": "string", "value": ""}, fields[0])
}

func TestAppendRecord_CopiesDefaults(t *testing.T) {
	first := AppendRecord("formFields", nil)
	first[0]["label"] = "Name"

	second := AppendRecord("formFields", nil)

	assert.Equal(t, "", second[0]["label"])
}

func TestRemoveRecord(t *testing.T) {
	records := []map[string]any{
		{"name": "a"}, {"name": "b"}, {"name": "c"},
	}

	trimmed := RemoveRecord(records, 1)

	require.Len(t, trimmed, 2)
	assert.Equal(t, "a", trimmed[0]["name"])
	assert.Equal(t, "c", trimmed[1]["name"])

	assert.Len(t, RemoveRecord(trimmed, 5), 2)
	assert.Len(t, RemoveRecord(trimmed, -1), 2)
}

func TestUpdateRecord_MergesPartial(t *testing.T) {
	records := []map[string]any{{"label": "Email", "type": "text", "required": false}}

	updated := UpdateRecord(records, 0, map[string]any{"required": true})

	assert.Equal(t, true, updated[0]["required"])
	assert.Equal(t, "Email", updated[0]["label"])

	assert.Equal(t, updated, UpdateRecord(updated, 2, map[string]any{"label": "x"}))
}
