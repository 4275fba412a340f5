// Package bear adapts external command-line analysis tools into uniform,
// introspectable analysis components. A Bear declares the settings its tool
// accepts, builds the tool invocation from the resolved configuration, runs
// the tool against one file, and translates the JSON it prints into
// severity-classified diagnostics.
//
// One call to Run is one blocking pipeline; a Bear holds no per-run state,
// so independent runs may proceed concurrently.
package bear

import (
	"context"
	"fmt"
	"path/filepath"
)

// Spec declares everything needed to wrap one external tool.
type Spec struct {
	// Name identifies the adapter and becomes the Origin of every
	// diagnostic. Empty defaults to the executable's base name.
	Name string

	// Executable is the tool binary, resolved through PATH when relative.
	Executable string

	// Settings declares the configuration options the tool accepts, in the
	// order they should be presented to users.
	Settings []SettingDescriptor

	// CreateArguments builds the argument tokens for one run. Nil means the
	// tool is invoked with no arguments and works from stdin and its own
	// defaults.
	CreateArguments ArgumentsFunc

	// UseStdin feeds the run payload (filename, file content, resolved
	// settings as one JSON object) to the tool's standard input.
	UseStdin bool

	// Env is appended to the inherited environment of every run.
	Env []string
}

// Bear is a constructed adapter. All fields are read-only after New, so a
// single Bear may serve concurrent runs.
type Bear struct {
	spec        Spec
	descriptors map[string]SettingDescriptor
	order       []string
}

// New validates a declaration and constructs the adapter. Declaration
// problems (empty executable, duplicate or untyped settings) are reported
// here, never deferred to run time.
func New(spec Spec) (*Bear, error) {
	if spec.Executable == "" {
		return nil, fmt.Errorf("%w: executable must not be empty", ErrBadDeclaration)
	}
	if spec.Name == "" {
		spec.Name = filepath.Base(spec.Executable)
	}

	descriptors := make(map[string]SettingDescriptor, len(spec.Settings))
	order := make([]string, 0, len(spec.Settings))
	for _, d := range spec.Settings {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: setting with empty name", ErrBadDeclaration)
		}
		if _, dup := descriptors[d.Name]; dup {
			return nil, fmt.Errorf("%w: setting %q declared twice", ErrBadDeclaration, d.Name)
		}
		if !d.Type.valid() {
			return nil, fmt.Errorf("%w: setting %q has type tag %d", ErrInvalidType, d.Name, int(d.Type))
		}
		descriptors[d.Name] = d
		order = append(order, d.Name)
	}

	return &Bear{spec: spec, descriptors: descriptors, order: order}, nil
}

// Name returns the adapter identity used as diagnostic origin.
func (b *Bear) Name() string { return b.spec.Name }

// Executable returns the wrapped tool's binary path.
func (b *Bear) Executable() string { return b.spec.Executable }

// Run executes one full analysis pass over a file: resolve settings, build
// the invocation, spawn the tool, parse its output and emit canonical
// diagnostics. Any failure aborts the run with a typed error; nothing is
// retried here.
func (b *Bear) Run(ctx context.Context, filename string, file []string, overrides map[string]any) ([]Diagnostic, error) {
	settings, err := b.ResolveSettings(overrides)
	if err != nil {
		return nil, err
	}

	inv, err := b.BuildInvocation(filename, file, settings)
	if err != nil {
		return nil, err
	}

	output, _, err := b.runProcess(ctx, inv, filename, file, settings)
	if err != nil {
		return nil, err
	}

	// Validate eagerly: the scanner is lazy, but a run either produces a
	// fully parsed diagnostic list or a typed error.
	scanner := ParseOutput(output, filename)
	var diags []Diagnostic
	for scanner.Scan() {
		d, err := b.buildDiagnostic(scanner.Diagnostic(), filename)
		if err != nil {
			return nil, err
		}
		diags = append(diags, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return diags, nil
}
