// Package solo contains single-outcome, synchronous helpers that operate on
// the (cor.Outcome, error) pair returned by a submission. They are how a
// caller renders or reacts to an outcome without branching by hand.
//
// Highlights:
// - Finally: reduce to a concrete value via resolved/unresolved/invalid handlers
// - Submit: submit one request and reduce it in one call
// - Tee/DoubleTee: side-effect helpers that return the outcome unchanged
package solo
