// Package workers runs the client's long-lived background loops.
//
// Each Worker blocks in Run until its context is cancelled; Workers starts
// them together and waits for all of them to return.
package workers

import "context"

// Worker is a background loop bound to ctx.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}

// Func adapts a function to [Worker].
type Func func(ctx context.Context)

func (f Func) Run(ctx context.Context) {
	f(ctx)
}
