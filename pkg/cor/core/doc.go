// Package core contains the plumbing used to submit many requests at once:
// channel helpers, worker configuration via context, and the locomotive that
// drives a worker. It holds no chain logic of its own.
package core
