package bear_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bearwrap/pkg/bear"
)

func strptr(s string) *string { return &s }

func TestMapSeverity_ExactLabels(t *testing.T) {
	t.Parallel()

	for label, want := range map[string]bear.Severity{
		"MAJOR":  bear.Major,
		"NORMAL": bear.Normal,
		"INFO":   bear.Info,
	} {
		got, err := bear.MapSeverity(bear.RawDiagnostic{Severity: strptr(label)})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestMapSeverity_AbsentDefaultsToNormal(t *testing.T) {
	t.Parallel()

	got, err := bear.MapSeverity(bear.RawDiagnostic{})
	require.NoError(t, err)
	assert.Equal(t, bear.Normal, got)
}

func TestMapSeverity_WrongCaseFails(t *testing.T) {
	t.Parallel()

	// Case must match exactly; "Info" is a tool bug, not INFO.
	_, err := bear.MapSeverity(bear.RawDiagnostic{Severity: strptr("Info")})
	require.ErrorIs(t, err, bear.ErrUnknownSeverity)
}

func TestMapSeverity_UnknownLabelFails(t *testing.T) {
	t.Parallel()

	_, err := bear.MapSeverity(bear.RawDiagnostic{Severity: strptr("CATASTROPHIC")})
	require.ErrorIs(t, err, bear.ErrUnknownSeverity)
}

func TestSeverityString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "INFO", bear.Info.String())
	assert.Equal(t, "NORMAL", bear.Normal.String())
	assert.Equal(t, "MAJOR", bear.Major.String())
}
