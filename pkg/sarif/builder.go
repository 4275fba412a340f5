package sarif

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"bearwrap/pkg/bear"
)

const schemaURL = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json"

// severityLevel maps the closed severity enumeration onto SARIF levels.
var severityLevel = map[bear.Severity]string{
	bear.Info:   "note",
	bear.Normal: "warning",
	bear.Major:  "error",
}

// FromDiagnostics builds a single-run SARIF document from canonical
// diagnostics. The origin becomes the driver name; the debug message, when
// present, is appended to the result text.
func FromDiagnostics(origin, version string, diags []bear.Diagnostic) *Document {
	run := Run{
		Tool:    Tool{Driver: Driver{Name: origin, Version: version}},
		Results: make([]Result, 0, len(diags)),
	}
	for _, d := range diags {
		text := d.Message
		if d.DebugMessage != nil {
			text = fmt.Sprintf("%s (debug: %s)", text, *d.DebugMessage)
		}
		run.Results = append(run.Results, Result{
			Level:   severityLevel[d.Severity],
			Message: Message{Text: text},
			Locations: []Location{{
				PhysicalLocation: PhysicalLocation{
					ArtifactLocation: ArtifactLocation{URI: d.File},
					Region:           Region{StartLine: d.Line},
				},
			}},
		})
	}
	return &Document{Version: "2.1.0", Schema: schemaURL, Runs: []Run{run}}
}

// Write encodes the document as indented JSON.
func Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode sarif: %w", err)
	}
	return nil
}

// WriteFile writes the document to a file.
func WriteFile(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sarif file: %w", err)
	}
	defer f.Close()

	return Write(f, doc)
}
