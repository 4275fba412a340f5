package bear

// Diagnostic is the canonical, severity-classified issue handed to the
// framework. Instances are plain values, immutable by convention; equality
// is structural over all fields, which the test suites rely on.
type Diagnostic struct {
	Origin   string
	File     string
	Line     int
	Message  string
	Severity Severity

	// DebugMessage is nil when the tool reported none; an empty string is a
	// reported-but-empty message, which is a different thing.
	DebugMessage *string
}

// buildDiagnostic assembles the canonical diagnostic for one raw record,
// attaching the adapter identity as origin. The raw record is discarded
// afterwards.
func (b *Bear) buildDiagnostic(raw RawDiagnostic, filename string) (Diagnostic, error) {
	sev, err := MapSeverity(raw)
	if err != nil {
		return Diagnostic{}, err
	}
	return Diagnostic{
		Origin:       b.spec.Name,
		File:         filename,
		Line:         *raw.Line,
		Message:      *raw.Message,
		Severity:     sev,
		DebugMessage: raw.DebugMsg,
	}, nil
}
