// Package chain assembles cor.Handlers into an ordered, validated chain.
//
// Key operations:
// - Of: link an ordered list of handlers and return the validated head
// - New/Then/Build: the same through a fluent builder
// - Validate: detect empty chains, self links, cycles and duplicate names
// - Walk/Handlers/Len: ordered traversal that stops on a revisit
package chain
