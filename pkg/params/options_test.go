package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOption_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    any
		expected string
	}{
		{"valid operator", "operator", "!=", "!="},
		{"invalid operator", "operator", "equals", "=="},
		{"nil operator", "operator", nil, "=="},
		{"invalid method", "method", "FETCH", "POST"},
		{"valid method", "method", "GET", "GET"},
		{"invalid timezone", "timezone", "Mars/Olympus", "Asia/Seoul"},
		{"invalid status code", "statusCode", "999", "200"},
		{"invalid format", "format", "xml", "json"},
		{"unknown field passes through", "prompt", "anything", "anything"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveOption(tt.field, tt.value))
		})
	}
}

func TestOptionsFor(t *testing.T) {
	assert.Contains(t, OptionsFor("language"), "vi")
	assert.Nil(t, OptionsFor("prompt"))
}

func TestOptionsFor_ReturnsCopy(t *testing.T) {
	values := OptionsFor("mode")
	require.NotEmpty(t, values)

	values[0] = "mutated"

	assert.Equal(t, "daily", OptionsFor("mode")[0])
}

func TestValidCronExpr(t *testing.T) {
	assert.True(t, ValidCronExpr("*/5 * * * *"))
	assert.True(t, ValidCronExpr("0 9 * * 1-5"))
	assert.False(t, ValidCronExpr("every tuesday"))
	assert.False(t, ValidCronExpr(""))
}

func TestNormalizeScheduleMode(t *testing.T) {
	t.Run("nil becomes daily default", func(t *testing.T) {
		mode := NormalizeScheduleMode(nil)

		assert.Equal(t, "daily", mode["mode"])
		assert.Equal(t, "09:00:00", mode["dailyTime"])
	})

	t.Run("valid cron kept", func(t *testing.T) {
		mode := NormalizeScheduleMode(map[string]any{
			"mode":       "cron",
			"expression": "*/10 * * * *",
		})

		assert.Equal(t, "cron", mode["mode"])
	})

	t.Run("broken cron falls back to daily", func(t *testing.T) {
		mode := NormalizeScheduleMode(map[string]any{
			"mode":       "cron",
			"expression": "not a cron spec",
		})

		assert.Equal(t, "daily", mode["mode"])
		assert.Equal(t, "09:00:00", mode["dailyTime"])
	})

	t.Run("existing daily time preserved", func(t *testing.T) {
		mode := NormalizeScheduleMode(map[string]any{
			"mode":      "daily",
			"dailyTime": "14:00:00",
		})

		assert.Equal(t, "14:00:00", mode["dailyTime"])
	})
}
