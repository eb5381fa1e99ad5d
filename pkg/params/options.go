package params

import (
	"slices"

	cron "github.com/robfig/cron/v3"
)

// OptionSet is a fixed list of allowed values for an enumerated field plus
// the default applied when a stored value is missing or invalid.
type OptionSet struct {
	Values  []string
	Default string
}

// Resolve returns value when it is a member of the set, else the default.
func (o OptionSet) Resolve(value string) string {
	if slices.Contains(o.Values, value) {
		return value
	}

	return o.Default
}

var (
	Timezones = OptionSet{
		Values: []string{
			"Asia/Seoul", "Asia/Tokyo", "Asia/Ho_Chi_Minh", "Asia/Singapore",
			"UTC", "America/New_York", "America/Los_Angeles", "Europe/London",
		},
		Default: "Asia/Seoul",
	}

	ScheduleModes = OptionSet{
		Values:  []string{"daily", "interval", "cron"},
		Default: "daily",
	}

	Languages = OptionSet{
		Values:  []string{"ko", "en", "ja", "vi"},
		Default: "ko",
	}

	Operators = OptionSet{
		Values:  []string{"==", "!=", ">", "<", ">=", "<=", "contains"},
		Default: "==",
	}

	HTTPMethods = OptionSet{
		Values:  []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		Default: "POST",
	}

	StatusCodes = OptionSet{
		Values:  []string{"200", "201", "204", "400", "401", "404", "500"},
		Default: "200",
	}

	FormatTypes = OptionSet{
		Values:  []string{"json", "text", "html"},
		Default: "json",
	}
)

// optionSets maps enumerated field names to their option sets.
var optionSets = map[string]OptionSet{
	"timezone":   Timezones,
	"mode":       ScheduleModes,
	"language":   Languages,
	"operator":   Operators,
	"method":     HTTPMethods,
	"statusCode": StatusCodes,
	"format":     FormatTypes,
}

// ResolveOption resolves a stored value for an enumerated field against its
// option set. Unknown fields pass the value through unchanged.
func ResolveOption(field string, value any) string {
	set, ok := optionSets[field]
	if !ok {
		return CoerceString(value)
	}

	return set.Resolve(CoerceString(value))
}

// OptionsFor lists the allowed values of an enumerated field, or nil when
// the field is not enumerated.
func OptionsFor(field string) []string {
	set, ok := optionSets[field]
	if !ok {
		return nil
	}

	return slices.Clone(set.Values)
}

// ValidCronExpr reports whether a schedule "cron" mode expression parses as
// a standard 5-field cron spec.
func ValidCronExpr(expr string) bool {
	_, err := cron.ParseStandard(expr)

	return err == nil
}

// NormalizeScheduleMode resolves a schedule node's nested mode object to a
// consistent shape: mode falls back through the option set, and a cron mode
// with an unparseable expression drops back to the daily default rather than
// persisting a spec the scheduler cannot compile.
func NormalizeScheduleMode(mode map[string]any) map[string]any {
	if mode == nil {
		mode = map[string]any{}
	}

	resolved := ScheduleModes.Resolve(CoerceString(mode["mode"]))

	if resolved == "cron" && !ValidCronExpr(CoerceString(mode["expression"])) {
		resolved = ScheduleModes.Default
	}

	mode["mode"] = resolved

	if resolved == "daily" && CoerceString(mode["dailyTime"]) == "" {
		mode["dailyTime"] = "09:00:00"
	}

	return mode
}
