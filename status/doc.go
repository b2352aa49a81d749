// Package status defines the closed set of error kinds reported by spinsym.
//
// Every fallible operation in the module returns either nil or an error that
// matches exactly one of the sentinels below via errors.Is. Glue layers that
// cannot carry Go errors (C bindings, RPC) translate with CodeOf and Message:
//
//	if err := b.Build(ctx); err != nil {
//		code := status.CodeOf(err)       // e.g. status.BasisIsEmpty
//		msg := status.Message(code)      // "basis is empty"
//		...
//	}
//
// Codes are stable integers; Success is always 0.
package status
