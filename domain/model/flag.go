package model

import "strings"

// FlagName identifies one of the two per-room feature flags.
type FlagName string

const (
	FlagHistory  FlagName = "history"
	FlagGreeting FlagName = "greeting"
)

// FlagToBool normalizes any stored or submitted flag representation to a
// boolean. Only boolean true and the case-insensitive, trimmed string "true"
// count as enabled; every other value (including absent) is disabled.
func FlagToBool(v any) bool {
	switch flag := v.(type) {
	case bool:
		return flag
	case string:
		return strings.EqualFold(strings.TrimSpace(flag), "true")
	default:
		return false
	}
}
