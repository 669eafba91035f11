package mission

import "strings"

// wire names used by the HTTP layer and persisted payloads.
var typeNames = map[string]Type{
	"attack":    Attack,
	"transport": Transport,
	"spy":       Spy,
	"station":   Station,
	"colonize":  Colonize,
}

// ParseType resolves a wire-format mission type name.
func ParseType(s string) (Type, bool) {
	t, ok := typeNames[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}
