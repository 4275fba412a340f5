package bear_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bearwrap/pkg/bear"
)

func TestNew_EmptyExecutable(t *testing.T) {
	t.Parallel()

	_, err := bear.New(bear.Spec{})
	require.ErrorIs(t, err, bear.ErrBadDeclaration)
}

func TestNew_InvalidTypeTag(t *testing.T) {
	t.Parallel()

	_, err := bear.New(bear.Spec{
		Executable: "exec",
		Settings:   []bear.SettingDescriptor{{Name: "broken", Type: bear.SettingType(99)}},
	})
	require.ErrorIs(t, err, bear.ErrInvalidType)
}

func TestNew_DuplicateSetting(t *testing.T) {
	t.Parallel()

	_, err := bear.New(bear.Spec{
		Executable: "exec",
		Settings: []bear.SettingDescriptor{
			{Name: "twice", Type: bear.TypeBool},
			{Name: "twice", Type: bear.TypeInt},
		},
	})
	require.ErrorIs(t, err, bear.ErrBadDeclaration)
}

func TestNew_NameDefaultsToExecutableBase(t *testing.T) {
	t.Parallel()

	b, err := bear.New(bear.Spec{Executable: "/usr/local/bin/pyspell"})
	require.NoError(t, err)
	assert.Equal(t, "pyspell", b.Name())
}

func TestMetadata_HelpTextAndRequiredSplit(t *testing.T) {
	t.Parallel()

	b, err := bear.New(bear.Spec{
		Executable: "exec",
		Settings: []bear.SettingDescriptor{
			{Name: "asetting", Type: bear.TypeBool},
			{Name: "bsetting", Type: bear.TypeBool, Default: true, HasDefault: true},
			{Name: "csetting", Description: "My desc.", Type: bear.TypeBool, Default: false, HasDefault: true},
			{Name: "dsetting", Description: "Another desc", Type: bear.TypeBool},
			{Name: "esetting", Type: bear.TypeInt, Default: nil, HasDefault: true},
		},
	})
	require.NoError(t, err)

	meta := b.Metadata()

	require.Contains(t, meta.NonOptional, "asetting")
	assert.Equal(t, bear.NoDescription, meta.NonOptional["asetting"].Help)

	require.Contains(t, meta.Optional, "bsetting")
	assert.Equal(t, bear.NoDescription+" (Optional, the default value is true.)",
		meta.Optional["bsetting"].Help)

	require.Contains(t, meta.Optional, "csetting")
	assert.Equal(t, "My desc. (Optional, the default value is false.)",
		meta.Optional["csetting"].Help)

	require.Contains(t, meta.NonOptional, "dsetting")
	assert.Equal(t, "Another desc", meta.NonOptional["dsetting"].Help)

	// A nil default is still a default, and renders unlike false.
	require.Contains(t, meta.Optional, "esetting")
	assert.Equal(t, bear.NoDescription+" (Optional, the default value is none.)",
		meta.Optional["esetting"].Help)
}

func TestParseSettingType(t *testing.T) {
	t.Parallel()

	for tag, want := range map[string]bear.SettingType{
		"bool":   bear.TypeBool,
		"int":    bear.TypeInt,
		"float":  bear.TypeFloat,
		"string": bear.TypeString,
	} {
		got, err := bear.ParseSettingType(tag)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := bear.ParseSettingType("complex128")
	require.ErrorIs(t, err, bear.ErrInvalidType)
}

func TestResolveSettings_DefaultsAndOverrides(t *testing.T) {
	t.Parallel()

	b, err := bear.New(bear.Spec{
		Executable: "exec",
		Settings: []bear.SettingDescriptor{
			{Name: "a", Type: bear.TypeBool},
			{Name: "b", Type: bear.TypeBool, Default: false, HasDefault: true},
			{Name: "limit", Type: bear.TypeInt, Default: 80, HasDefault: true},
		},
	})
	require.NoError(t, err)

	settings, err := b.ResolveSettings(map[string]any{"a": true, "limit": "120"})
	require.NoError(t, err)
	assert.Equal(t, true, settings.Bool("a"))
	assert.Equal(t, false, settings.Bool("b"))
	assert.Equal(t, 120, settings.Int("limit"))
}

func TestResolveSettings_UnknownKey(t *testing.T) {
	t.Parallel()

	b, err := bear.New(bear.Spec{Executable: "exec"})
	require.NoError(t, err)

	_, err = b.ResolveSettings(map[string]any{"invalid_arg": 88})
	require.ErrorIs(t, err, bear.ErrUnknownSetting)
}

func TestResolveSettings_MissingRequired(t *testing.T) {
	t.Parallel()

	b, err := bear.New(bear.Spec{
		Executable: "exec",
		Settings:   []bear.SettingDescriptor{{Name: "a", Type: bear.TypeBool}},
	})
	require.NoError(t, err)

	_, err = b.ResolveSettings(nil)
	require.ErrorIs(t, err, bear.ErrMissingSetting)
}

func TestResolveSettings_WrongValueType(t *testing.T) {
	t.Parallel()

	b, err := bear.New(bear.Spec{
		Executable: "exec",
		Settings:   []bear.SettingDescriptor{{Name: "a", Type: bear.TypeBool}},
	})
	require.NoError(t, err)

	_, err = b.ResolveSettings(map[string]any{"a": "definitely not a bool"})
	require.ErrorIs(t, err, bear.ErrBadValue)
}

func TestResolveSettings_NilOverrideRejected(t *testing.T) {
	t.Parallel()

	b, err := bear.New(bear.Spec{
		Executable: "exec",
		Settings:   []bear.SettingDescriptor{{Name: "a", Type: bear.TypeBool}},
	})
	require.NoError(t, err)

	// A nil value must not stand in for a required setting.
	_, err = b.ResolveSettings(map[string]any{"a": nil})
	require.ErrorIs(t, err, bear.ErrBadValue)
}

func TestResolveSettings_NilDefaultCountsAsSet(t *testing.T) {
	t.Parallel()

	b, err := bear.New(bear.Spec{
		Executable: "exec",
		Settings:   []bear.SettingDescriptor{{Name: "e", Type: bear.TypeInt, Default: nil, HasDefault: true}},
	})
	require.NoError(t, err)

	settings, err := b.ResolveSettings(nil)
	require.NoError(t, err)
	v, ok := settings["e"]
	require.True(t, ok)
	assert.Nil(t, v)
}
