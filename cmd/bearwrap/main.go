// bearwrap runs externally wrapped analysis tools ("bears") against files
// and renders their diagnostics.
//
// Usage:
//
//	bearwrap -defs bears.yaml -bear pyspell src/a.txt src/b.txt
//	bearwrap -defs bears.yaml -bear pyspell -set use_spaces=true src/a.txt
//	bearwrap -defs bears.yaml -bear pyspell -sarif out.sarif src/...
//	bearwrap -defs bears.yaml -list
//
// Exit codes: 0 clean, 1 when any MAJOR diagnostic was found, 2 on
// configuration or run errors.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"

	"golang.org/x/term"

	"bearwrap/internal/dashboard"
	"bearwrap/internal/deffile"
	"bearwrap/internal/render"
	"bearwrap/internal/version"
	"bearwrap/pkg/bear"
	"bearwrap/pkg/sarif"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// overrideFlags collects repeated -set name=value flags.
type overrideFlags map[string]any

func (o overrideFlags) String() string { return fmt.Sprintf("%v", map[string]any(o)) }

func (o overrideFlags) Set(kv string) error {
	name, value, ok := strings.Cut(kv, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", kv)
	}
	o[name] = value
	return nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bearwrap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	defsFlag := fs.String("defs", "bears.yaml", "Bear definitions file")
	bearFlag := fs.String("bear", "", "Bear to run (defaults to the only one defined)")
	sarifFlag := fs.String("sarif", "", "Write diagnostics to this SARIF file")
	dashFlag := fs.Bool("dash", false, "Show a live dashboard while analyzing")
	listFlag := fs.Bool("list", false, "List defined bears and their settings")
	themeFlag := fs.String("theme", "", "Report theme: default, mono")
	versionFlag := fs.Bool("version", false, "Print version and exit")
	overrides := overrideFlags{}
	fs.Var(overrides, "set", "Setting override as name=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "bearwrap %s (%s, %s)\n", version.Version, version.CommitHash, version.BuildDate)
		return 0
	}

	specs, err := deffile.Load(*defsFlag)
	if err != nil {
		fmt.Fprintf(stderr, "bearwrap: %v\n", err)
		return 2
	}

	if *listFlag {
		listBears(stdout, specs)
		return 0
	}

	b, err := pickBear(specs, *bearFlag)
	if err != nil {
		fmt.Fprintf(stderr, "bearwrap: %v\n", err)
		return 2
	}

	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintln(stderr, "bearwrap: no files to analyze")
		return 2
	}

	runFile := func(ctx context.Context, path string) ([]bear.Diagnostic, error) {
		content, err := readLines(path)
		if err != nil {
			return nil, err
		}
		return b.Run(ctx, path, content, overrides)
	}

	var diags []bear.Diagnostic
	var failed bool
	if *dashFlag {
		var tasks []*dashboard.Task
		if isTTY(stdout) {
			tasks, err = dashboard.Run(ctx, files, runFile)
			if err != nil {
				fmt.Fprintf(stderr, "bearwrap: %v\n", err)
				return 2
			}
		} else {
			tasks = dashboard.RunNonTTY(ctx, files, runFile, stdout)
		}
		for _, task := range tasks {
			if task.Err() != nil {
				failed = true
				continue
			}
			diags = append(diags, task.Diagnostics()...)
		}
	} else {
		diags, failed = runAll(ctx, files, runFile, stderr)
		report := render.NewReport(stdout, pickTheme(*themeFlag, stdout), terminalWidth(stdout))
		report.Write(b.Name(), diags)
	}

	if *sarifFlag != "" {
		if err := sarif.WriteFile(*sarifFlag, sarif.FromDiagnostics(b.Name(), version.Version, diags)); err != nil {
			fmt.Fprintf(stderr, "bearwrap: %v\n", err)
			return 2
		}
	}

	return exitCode(diags, failed)
}

// runAll analyzes every file concurrently, one independent run each, and
// returns diagnostics in input file order.
func runAll(ctx context.Context, files []string, runFile dashboard.RunFunc, stderr io.Writer) ([]bear.Diagnostic, bool) {
	perFile := make([][]bear.Diagnostic, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	wg.Add(len(files))
	for i, path := range files {
		go func(i int, path string) {
			defer wg.Done()
			perFile[i], errs[i] = runFile(ctx, path)
		}(i, path)
	}
	wg.Wait()

	var diags []bear.Diagnostic
	var failed bool
	for i, path := range files {
		if errs[i] != nil {
			fmt.Fprintf(stderr, "bearwrap: %s: %v\n", path, errs[i])
			failed = true
			continue
		}
		diags = append(diags, perFile[i]...)
	}
	return diags, failed
}

func pickBear(specs map[string]bear.Spec, name string) (*bear.Bear, error) {
	if name == "" {
		if len(specs) != 1 {
			return nil, fmt.Errorf("-bear is required with %d bears defined", len(specs))
		}
		for only := range specs {
			name = only
		}
	}
	spec, ok := specs[name]
	if !ok {
		return nil, fmt.Errorf("bear %q is not defined", name)
	}
	return bear.New(spec)
}

func listBears(w io.Writer, specs map[string]bear.Spec) {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b, err := bear.New(specs[name])
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", name, err)
			continue
		}
		meta := b.Metadata()
		fmt.Fprintf(w, "%s (%s)\n", meta.Name, b.Executable())
		writeParams(w, "required", meta.NonOptional)
		writeParams(w, "optional", meta.Optional)
	}
}

func writeParams(w io.Writer, label string, params map[string]bear.ParamHelp) {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s %s (%s): %s\n", label, name, params[name].Type, params[name].Help)
	}
}

// readLines loads a file as lines with their endings kept, the shape bears
// feed to their tools.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return splitLines(string(data)), nil
}

// splitLines splits keeping line endings; no trailing phantom line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func exitCode(diags []bear.Diagnostic, failed bool) int {
	if failed {
		return 2
	}
	for _, d := range diags {
		if d.Severity == bear.Major {
			return 1
		}
	}
	return 0
}

func pickTheme(name string, stdout io.Writer) render.Theme {
	if name != "" {
		return render.ThemeByName(name)
	}
	if !isTTY(stdout) {
		return render.MonoTheme()
	}
	return render.DefaultTheme()
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return render.DefaultWidth
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
