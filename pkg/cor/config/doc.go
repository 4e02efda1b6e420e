// Package config reads chain definitions from YAML and turns them into
// handlers. A definition names its classification kind (amount or category),
// lists handlers in chain order with exactly one rule each, and may carry a
// Rego admission policy.
package config
