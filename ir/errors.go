package ir

import "errors"

// Sentinel errors for the ir package. Callers branch on these with
// errors.Is; messages are never matched as strings.
var (
	// ErrEmptyAtomName indicates an atom or real variable was interned
	// under the empty string.
	ErrEmptyAtomName = errors.New("ir: atom/variable name is empty")

	// ErrUnknownAtom indicates an AtomID not produced by this Pool was
	// referenced (e.g. in a substitution map or literal constructor).
	ErrUnknownAtom = errors.New("ir: unknown atom id")

	// ErrUnknownReal indicates a RealID not produced by this Pool was
	// referenced.
	ErrUnknownReal = errors.New("ir: unknown real variable id")

	// ErrEmptyNary indicates And/Or was called with zero children and no
	// caller-supplied identity element context.
	ErrEmptyNary = errors.New("ir: nary operator requires at least one child")

	// ErrNotDetermined indicates a constant was required from a formula
	// that is not fully determined (IsDetermined reports ok == false).
	ErrNotDetermined = errors.New("ir: formula is not determined")
)
