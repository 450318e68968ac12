package poly

import "errors"

// ErrNonPolynomialLeaf indicates FromTerm reached a term node that is
// not purely Const/Var/Plus/Minus/Times — i.e. an un-eliminated ITE.
// Reaching this from the weight decomposer's leaf registry is a bug
// (spec.md §4.4's LeafUnderdetermined); reaching it from a raw,
// undecomposed weight term is user error (UnsupportedWeight). Callers
// pick the wrapping that fits their context.
var ErrNonPolynomialLeaf = errors.New("poly: term is not a polynomial (unresolved ITE)")
