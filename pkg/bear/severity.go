package bear

import "fmt"

// Severity classifies how important a diagnostic is. The enumeration is
// closed: Info, Normal, Major.
type Severity int

const (
	// Info marks purely informational findings.
	Info Severity = iota + 1
	// Normal is the severity of tool output that does not say otherwise.
	Normal
	// Major marks findings that need attention before anything else.
	Major
)

// String returns the canonical wire label for the severity.
func (s Severity) String() string {
	switch s {
	case Info:
		return "INFO"
	case Normal:
		return "NORMAL"
	case Major:
		return "MAJOR"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// severityTable holds the exact labels external tools may emit. Lookup is
// case-sensitive on purpose: "Info" is a tool bug, not INFO.
var severityTable = map[string]Severity{
	"MAJOR":  Major,
	"NORMAL": Normal,
	"INFO":   Info,
}

// MapSeverity normalizes the severity label of a raw diagnostic. An absent
// label defaults to Normal; a present but unrecognized one is a lookup
// error, never coerced.
func MapSeverity(raw RawDiagnostic) (Severity, error) {
	if raw.Severity == nil {
		return Normal, nil
	}
	sev, ok := severityTable[*raw.Severity]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSeverity, *raw.Severity)
	}
	return sev, nil
}
