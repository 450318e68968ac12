package decompose

import "errors"

// ErrUnsupportedWeight indicates a weight term contains a leaf that is
// not ITE-free-polynomial reachable: anything other than
// Const/Var/Plus/Minus/Times/Ite. Reported to the caller; the query
// aborts (spec.md §7).
var ErrUnsupportedWeight = errors.New("decompose: weight leaf is not polynomial/ite")

// ErrLeafUnderdetermined indicates LeafOf was asked to resolve a label
// polarity vector that leaves at least one condition label
// unassigned. The decomposer guarantees every label appears in the
// skeleton, so a correct enumerator never triggers this; seeing it is
// a bug in the enumerator, not user error (spec.md §4.4, §7).
var ErrLeafUnderdetermined = errors.New("decompose: label vector is underdetermined")
