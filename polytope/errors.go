package polytope

import "errors"

// ErrNotLRAAtom indicates an AtomID that InternLRA never produced — a
// plain Boolean atom has no half-space. Build does not return it: it
// skips such atoms.
var ErrNotLRAAtom = errors.New("polytope: atom id does not name an LRA atom")
