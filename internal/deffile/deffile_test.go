package deffile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bearwrap/internal/deffile"
	"bearwrap/pkg/bear"
)

const sampleDefs = `
bears:
  pyspell:
    executable: ./tools/pyspell
    stdin: true
    env:
      - PYSPELL_NO_COLOR=1
    settings:
      use_spaces:
        description: Prefer spaces over tabs.
        type: bool
      max_line_length:
        type: int
        default: 80
      dialect:
        type: string
        default: null
`

func TestParse_FullDefinition(t *testing.T) {
	t.Parallel()

	specs, err := deffile.Parse([]byte(sampleDefs))
	require.NoError(t, err)
	require.Contains(t, specs, "pyspell")

	spec := specs["pyspell"]
	assert.Equal(t, "pyspell", spec.Name)
	assert.Equal(t, "./tools/pyspell", spec.Executable)
	assert.True(t, spec.UseStdin)
	assert.Equal(t, []string{"PYSPELL_NO_COLOR=1"}, spec.Env)

	b, err := bear.New(spec)
	require.NoError(t, err)

	meta := b.Metadata()
	require.Contains(t, meta.NonOptional, "use_spaces")
	assert.Equal(t, "Prefer spaces over tabs.", meta.NonOptional["use_spaces"].Help)

	require.Contains(t, meta.Optional, "max_line_length")
	assert.Equal(t, 80, meta.Optional["max_line_length"].Default)

	// "default: null" is a default, with a nil value.
	require.Contains(t, meta.Optional, "dialect")
	assert.Nil(t, meta.Optional["dialect"].Default)
}

func TestParse_ArgsTemplate(t *testing.T) {
	t.Parallel()

	specs, err := deffile.Parse([]byte(`
bears:
  linty:
    executable: linty
    args: ["--format=json", "{file}"]
`))
	require.NoError(t, err)

	b, err := bear.New(specs["linty"])
	require.NoError(t, err)

	inv, err := b.BuildInvocation("src/main.c", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"--format=json", "src/main.c"}, inv.Args)
}

func TestParse_NoArgsMeansBareInvocation(t *testing.T) {
	t.Parallel()

	specs, err := deffile.Parse([]byte(`
bears:
  quiet:
    executable: quiet
`))
	require.NoError(t, err)

	b, err := bear.New(specs["quiet"])
	require.NoError(t, err)

	inv, err := b.BuildInvocation("some_file", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, inv.Args)
}

func TestParse_UnknownKeyRejected(t *testing.T) {
	t.Parallel()

	_, err := deffile.Parse([]byte(`
bears:
  broken:
    executable: broken
    invalid_arg: 88
`))
	require.ErrorIs(t, err, bear.ErrUnknownSetting)
}

func TestParse_InvalidTypeTag(t *testing.T) {
	t.Parallel()

	_, err := deffile.Parse([]byte(`
bears:
  broken:
    executable: broken
    settings:
      x:
        type: quaternion
`))
	require.ErrorIs(t, err, bear.ErrInvalidType)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := deffile.Load("does/not/exist.yaml")
	require.Error(t, err)
}
