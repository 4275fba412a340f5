// Package render draws diagnostic reports for terminals: one section per
// analyzed file, one line per diagnostic, severity-styled.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bearwrap/pkg/bear"
)

// DefaultWidth is the fallback terminal width when detection fails.
const DefaultWidth = 80

var titleCaser = cases.Title(language.English)

// Report renders diagnostics grouped per file.
type Report struct {
	w     io.Writer
	theme Theme
	width int
}

// NewReport creates a report writer. Width <= 0 falls back to DefaultWidth.
func NewReport(w io.Writer, theme Theme, width int) *Report {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Report{w: w, theme: theme, width: width}
}

// Write renders the full report for one adapter's diagnostics.
func (r *Report) Write(origin string, diags []bear.Diagnostic) {
	heading := titleCaser.String(origin)
	fmt.Fprintln(r.w, r.theme.Bold.Render(heading))

	if len(diags) == 0 {
		fmt.Fprintf(r.w, "  %s no issues\n", r.theme.Icons.Clean)
		return
	}

	for _, group := range groupByFile(diags) {
		fmt.Fprintf(r.w, "  %s\n", r.theme.Muted.Render(group.file))
		for _, d := range group.diags {
			r.writeLine(d)
		}
	}

	fmt.Fprintln(r.w, r.summary(diags))
}

func (r *Report) writeLine(d bear.Diagnostic) {
	icon, style := r.severityLook(d.Severity)
	label := fmt.Sprintf("%4d  %s %-6s ", d.Line, icon, d.Severity)
	msg := truncate(d.Message, r.width-len("    ")-runewidth.StringWidth(label))
	fmt.Fprintf(r.w, "    %s%s\n", style.Render(label), msg)
	if d.DebugMessage != nil {
		fmt.Fprintf(r.w, "          %s\n", r.theme.Muted.Render(*d.DebugMessage))
	}
}

func (r *Report) severityLook(s bear.Severity) (string, lipgloss.Style) {
	switch s {
	case bear.Major:
		return r.theme.Icons.Error, r.theme.Error
	case bear.Info:
		return r.theme.Icons.Info, r.theme.Info
	default:
		return r.theme.Icons.Warn, r.theme.Warn
	}
}

func (r *Report) summary(diags []bear.Diagnostic) string {
	var major, normal, info int
	for _, d := range diags {
		switch d.Severity {
		case bear.Major:
			major++
		case bear.Info:
			info++
		default:
			normal++
		}
	}
	return r.theme.Muted.Render(
		fmt.Sprintf("  %d issue(s): %d major, %d normal, %d info", len(diags), major, normal, info))
}

// truncate shortens a message to the available display width, ellipsized.
func truncate(s string, width int) string {
	if width < 4 {
		width = 4
	}
	return runewidth.Truncate(s, width, "…")
}

type fileGroup struct {
	file  string
	diags []bear.Diagnostic
}

// groupByFile keeps the first-seen file order stable.
func groupByFile(diags []bear.Diagnostic) []fileGroup {
	index := make(map[string]int)
	var groups []fileGroup
	for _, d := range diags {
		i, seen := index[d.File]
		if !seen {
			i = len(groups)
			index[d.File] = i
			groups = append(groups, fileGroup{file: d.File})
		}
		groups[i].diags = append(groups[i].diags, d)
	}
	return groups
}

// PlainString renders one diagnostic as a single unstyled line, for logs and
// non-interactive pipes.
func PlainString(d bear.Diagnostic) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:%d: [%s] %s", d.File, d.Line, d.Severity, d.Message)
	if d.DebugMessage != nil {
		fmt.Fprintf(&sb, " (%s)", *d.DebugMessage)
	}
	return sb.String()
}
