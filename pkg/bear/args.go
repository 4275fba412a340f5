package bear

import (
	"fmt"
	"reflect"
)

// Invocation is the fully resolved command line for one analysis run. It is
// complete before the process starts; building it never spawns anything.
type Invocation struct {
	Executable string
	Args       []string
}

// ArgumentsFunc builds the argument tokens for one run from the target file
// and the resolved settings. The returned value must be an ordered sequence
// of string tokens ([]string, or any slice or array of strings); returning
// anything else fails the run with ErrNotIterable before the tool is
// spawned.
type ArgumentsFunc func(filename string, file []string, settings Settings) any

// BuildInvocation resolves the invocation for one run. With no
// CreateArguments declared, the tool gets the bare executable and no
// positional arguments.
func (b *Bear) BuildInvocation(filename string, file []string, settings Settings) (Invocation, error) {
	inv := Invocation{Executable: b.spec.Executable}
	if b.spec.CreateArguments == nil {
		return inv, nil
	}

	args, err := argTokens(b.spec.CreateArguments(filename, file, settings))
	if err != nil {
		return Invocation{}, fmt.Errorf("bear %q: %w", b.spec.Name, err)
	}
	inv.Args = args
	return inv, nil
}

// argTokens converts a CreateArguments return value into argument tokens.
func argTokens(v any) ([]string, error) {
	switch args := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return args, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: got %T", ErrNotIterable, v)
	}
	out := make([]string, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		el := rv.Index(i).Interface()
		s, ok := el.(string)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T, want string", ErrNotIterable, i, el)
		}
		out[i] = s
	}
	return out, nil
}
