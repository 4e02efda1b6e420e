// Package admission evaluates a Rego policy to decide whether a request may
// enter a chain. A request the policy does not allow is an invalid request.
package admission
