// Package decompose implements the weight decomposer: it splits a
// weight term w into a Boolean skeleton S over fresh condition labels
// plus a lazily-evaluated leaf registry, per spec.md §4.1.
//
// The recursive walk mirrors the shape of lvlath/builder.BuildGraph's
// single-orchestrator-over-validated-steps composition: one function
// walks the term bottom-up, and every distinct ITE condition it finds
// contributes one label and one skeleton clause (ITEs sharing a
// condition share its label; ITEs with identical branches add none),
// accumulated into one Decomposition value handed back to the caller.
package decompose
