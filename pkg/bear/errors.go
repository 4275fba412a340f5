package bear

import "errors"

// Error kinds surfaced by the adapter. Every pipeline failure wraps exactly
// one of these so callers can tell configuration mistakes from runtime
// failures with errors.Is, and decide whether to report, skip or abort.
var (
	// ErrBadDeclaration reports a malformed adapter declaration.
	ErrBadDeclaration = errors.New("invalid bear declaration")

	// ErrInvalidType reports a declared setting type that is not a
	// recognized type specifier.
	ErrInvalidType = errors.New("invalid type specification")

	// ErrUnknownSetting reports a configuration key the adapter never
	// declared.
	ErrUnknownSetting = errors.New("unsupported configuration key")

	// ErrMissingSetting reports a required setting left unset at run time.
	ErrMissingSetting = errors.New("required setting not provided")

	// ErrBadValue reports a setting value that cannot be coerced to the
	// declared type.
	ErrBadValue = errors.New("setting value has wrong type")

	// ErrNotIterable reports a CreateArguments func that returned something
	// other than an ordered sequence of argument tokens.
	ErrNotIterable = errors.New("arguments are not an iterable sequence")

	// ErrSpawn reports a missing or non-runnable executable. Fatal for the
	// run; never retried.
	ErrSpawn = errors.New("cannot spawn analysis tool")

	// ErrParse reports tool output that is not the expected JSON array of
	// diagnostic records.
	ErrParse = errors.New("cannot parse tool output")

	// ErrUnknownSeverity reports a severity label outside the closed
	// enumeration.
	ErrUnknownSeverity = errors.New("unknown severity label")
)
