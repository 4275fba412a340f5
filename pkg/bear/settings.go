package bear

import (
	"fmt"
	"math"
	"strconv"
)

// SettingType tags the value type a declared setting accepts.
type SettingType int

const (
	TypeBool SettingType = iota + 1
	TypeInt
	TypeFloat
	TypeString
)

func (t SettingType) valid() bool {
	return t >= TypeBool && t <= TypeString
}

func (t SettingType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	}
	return fmt.Sprintf("SettingType(%d)", int(t))
}

// ParseSettingType resolves a type tag as written in bear declarations.
func ParseSettingType(tag string) (SettingType, error) {
	switch tag {
	case "bool":
		return TypeBool, nil
	case "int":
		return TypeInt, nil
	case "float":
		return TypeFloat, nil
	case "string":
		return TypeString, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidType, tag)
}

// NoDescription is the help text used for settings declared without one.
const NoDescription = "No description given."

// optionalFormat is appended to the help text of settings with a default.
const optionalFormat = "(Optional, the default value is %s.)"

// SettingDescriptor declares one configuration option the wrapped tool
// accepts. A descriptor without a default marks the setting as required; a
// nil default is still a default.
type SettingDescriptor struct {
	Name        string
	Description string
	Type        SettingType
	Default     any
	HasDefault  bool
}

// HelpText renders the user-facing description, falling back to the
// NoDescription placeholder and appending the optional-default suffix when a
// default exists.
func (d SettingDescriptor) HelpText() string {
	desc := d.Description
	if desc == "" {
		desc = NoDescription
	}
	if d.HasDefault {
		desc += " " + fmt.Sprintf(optionalFormat, formatDefault(d.Default))
	}
	return desc
}

// formatDefault keeps a nil default distinguishable from false or the empty
// string in help text.
func formatDefault(v any) string {
	if v == nil {
		return "none"
	}
	return fmt.Sprintf("%v", v)
}

// ParamHelp describes one declared setting for option listings.
type ParamHelp struct {
	Help    string
	Type    SettingType
	Default any
}

// Metadata describes the options an adapter accepts, split into required and
// optional, for the orchestration layer to present to users.
type Metadata struct {
	Name        string
	NonOptional map[string]ParamHelp
	Optional    map[string]ParamHelp
}

// Metadata returns the option metadata for this adapter. The maps are built
// fresh on every call; runs never mutate the underlying descriptors.
func (b *Bear) Metadata() Metadata {
	meta := Metadata{
		Name:        b.spec.Name,
		NonOptional: make(map[string]ParamHelp),
		Optional:    make(map[string]ParamHelp),
	}
	for _, name := range b.order {
		d := b.descriptors[name]
		info := ParamHelp{Help: d.HelpText(), Type: d.Type, Default: d.Default}
		if d.HasDefault {
			meta.Optional[name] = info
		} else {
			meta.NonOptional[name] = info
		}
	}
	return meta
}

// Settings holds the resolved configuration for one analysis run.
type Settings map[string]any

// Bool returns the named setting as a bool, false when unset or mistyped.
func (s Settings) Bool(name string) bool {
	v, _ := s[name].(bool)
	return v
}

// Int returns the named setting as an int, 0 when unset or mistyped.
func (s Settings) Int(name string) int {
	v, _ := s[name].(int)
	return v
}

// Float returns the named setting as a float64, 0 when unset or mistyped.
func (s Settings) Float(name string) float64 {
	v, _ := s[name].(float64)
	return v
}

// String returns the named setting as a string, "" when unset or mistyped.
func (s Settings) String(name string) string {
	v, _ := s[name].(string)
	return v
}

// ResolveSettings merges caller overrides over the declared defaults and
// coerces every value to its declared type. It fails before any process is
// spawned: unknown keys, uncoercible values and unset required settings are
// configuration errors.
func (b *Bear) ResolveSettings(overrides map[string]any) (Settings, error) {
	resolved := make(Settings, len(b.descriptors))
	for name, d := range b.descriptors {
		if d.HasDefault {
			resolved[name] = d.Default
		}
	}

	for name, v := range overrides {
		d, ok := b.descriptors[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSetting, name)
		}
		coerced, err := coerce(v, d.Type)
		if err != nil {
			return nil, fmt.Errorf("setting %q: %w", name, err)
		}
		resolved[name] = coerced
	}

	for _, name := range b.order {
		if _, ok := resolved[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingSetting, name)
		}
	}
	return resolved, nil
}

// coerce converts a caller-supplied value to the declared setting type.
// String inputs are parsed so values read from definition files or CLI
// flags work without the caller pre-typing them. Only a declared default
// may be nil; a nil override never satisfies a typed setting.
func coerce(v any, t SettingType) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil is not a %s", ErrBadValue, t)
	}
	switch t {
	case TypeBool:
		switch val := v.(type) {
		case bool:
			return val, nil
		case string:
			parsed, err := strconv.ParseBool(val)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a bool", ErrBadValue, val)
			}
			return parsed, nil
		}
	case TypeInt:
		switch val := v.(type) {
		case int:
			return val, nil
		case int64:
			return int(val), nil
		case float64:
			if val != math.Trunc(val) {
				return nil, fmt.Errorf("%w: %v is not an integer", ErrBadValue, val)
			}
			return int(val), nil
		case string:
			parsed, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not an int", ErrBadValue, val)
			}
			return parsed, nil
		}
	case TypeFloat:
		switch val := v.(type) {
		case float64:
			return val, nil
		case int:
			return float64(val), nil
		case string:
			parsed, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a float", ErrBadValue, val)
			}
			return parsed, nil
		}
	case TypeString:
		if val, ok := v.(string); ok {
			return val, nil
		}
	}
	return nil, fmt.Errorf("%w: got %T, want %s", ErrBadValue, v, t)
}
