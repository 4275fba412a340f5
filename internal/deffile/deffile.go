// Package deffile loads bear declarations from YAML definition files.
//
// A definitions file declares one entry per wrapped tool:
//
//	bears:
//	  pyspell:
//	    executable: ./tools/pyspell
//	    stdin: true
//	    settings:
//	      use_spaces:
//	        description: Prefer spaces over tabs.
//	        type: bool
//	      max_line_length:
//	        type: int
//	        default: 80
//
// Decoding is strict: keys the schema does not know are declaration errors,
// not silently ignored extras.
package deffile

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"bearwrap/pkg/bear"
)

// File is the top-level shape of a definitions file.
type File struct {
	Bears map[string]Definition `yaml:"bears"`
}

// Definition declares one bear.
type Definition struct {
	Executable string `yaml:"executable"`

	// Stdin feeds the run payload to the tool's standard input.
	Stdin bool `yaml:"stdin"`

	// Args are static argument tokens. The token {file} is replaced by the
	// analyzed file's path. Empty means the tool is invoked bare.
	Args []string `yaml:"args"`

	// Env entries ("KEY=value") are appended to the tool's environment.
	Env []string `yaml:"env"`

	Settings map[string]SettingDef `yaml:"settings"`
}

// SettingDef declares one setting of a bear. Default is kept as a raw node
// so that an explicit null default stays distinguishable from no default.
type SettingDef struct {
	Description string     `yaml:"description"`
	Type        string     `yaml:"type"`
	Default     *yaml.Node `yaml:"default"`
}

// Load reads and parses a definitions file into constructible bear specs,
// keyed by bear name.
func Load(path string) (map[string]bear.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definitions: %w", err)
	}
	return Parse(data)
}

// Parse parses definitions from raw YAML.
func Parse(data []byte) (map[string]bear.Spec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if strings.Contains(err.Error(), "not found in type") {
			return nil, fmt.Errorf("%w: %v", bear.ErrUnknownSetting, err)
		}
		return nil, fmt.Errorf("decode definitions: %w", err)
	}

	specs := make(map[string]bear.Spec, len(f.Bears))
	for name, def := range f.Bears {
		spec, err := def.toSpec(name)
		if err != nil {
			return nil, fmt.Errorf("bear %q: %w", name, err)
		}
		specs[name] = spec
	}
	return specs, nil
}

func (def Definition) toSpec(name string) (bear.Spec, error) {
	spec := bear.Spec{
		Name:       name,
		Executable: def.Executable,
		UseStdin:   def.Stdin,
		Env:        def.Env,
	}

	// Deterministic descriptor order regardless of map iteration.
	names := make([]string, 0, len(def.Settings))
	for settingName := range def.Settings {
		names = append(names, settingName)
	}
	sort.Strings(names)

	for _, settingName := range names {
		sd := def.Settings[settingName]
		typ, err := bear.ParseSettingType(sd.Type)
		if err != nil {
			return bear.Spec{}, fmt.Errorf("setting %q: %w", settingName, err)
		}
		descriptor := bear.SettingDescriptor{
			Name:        settingName,
			Description: sd.Description,
			Type:        typ,
		}
		if sd.Default != nil {
			descriptor.HasDefault = true
			if sd.Default.Tag != "!!null" {
				var v any
				if err := sd.Default.Decode(&v); err != nil {
					return bear.Spec{}, fmt.Errorf("setting %q default: %w", settingName, err)
				}
				descriptor.Default = v
			}
		}
		spec.Settings = append(spec.Settings, descriptor)
	}

	if len(def.Args) > 0 {
		tokens := append([]string(nil), def.Args...)
		spec.CreateArguments = func(filename string, _ []string, _ bear.Settings) any {
			args := make([]string, len(tokens))
			for i, tok := range tokens {
				args[i] = strings.ReplaceAll(tok, "{file}", filename)
			}
			return args
		}
	}

	return spec, nil
}
