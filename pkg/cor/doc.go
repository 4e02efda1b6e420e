// Package cor contains the building blocks of a sequential responsibility
// chain: the immutable Request, the Outcome of a submission, acceptance Rules
// and the Handler that either resolves a request or forwards it to its
// successor.
//
// Handlers are evaluated strictly in chain order and the first one whose rule
// accepts wins. A chain that is exhausted yields an Unresolved outcome, which
// is data, not an error.
//
//	supervisor := cor.NewHandler("Supervisor", cor.AtMost(1000.0))
//	manager := cor.NewHandler("Manager", cor.AtMost(5000.0))
//	director := cor.NewHandler("Director", cor.Always[float64]())
//	supervisor.Link(manager).Link(director)
//
//	out := supervisor.Handle(ctx, cor.Of(3000.0)) // Resolved(Manager)
//
// Chain assembly with validation lives in the chain package, the submission
// facade in the pipeline package.
package cor
