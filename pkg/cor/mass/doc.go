// Package mass submits many requests concurrently against one shared
// pipeline. The chain must be frozen before fan-out, which the pipeline
// package does on the first Submit; mass only reads it.
//
// Results come back in input order regardless of how many workers ran.
package mass
