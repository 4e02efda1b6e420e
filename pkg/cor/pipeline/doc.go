// Package pipeline is the single entry point hiding chain traversal from
// callers. A Pipeline validates its chain on construction, freezes it on the
// first Submit and then resolves one request per call, synchronously.
//
// An optional cor.Validator rejects malformed requests before they reach the
// chain; such requests come back as an error wrapping cor.ErrInvalidRequest.
// An Unresolved outcome is not an error.
package pipeline
