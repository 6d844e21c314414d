package pkgroutine

import "context"

// Task is a unit of work executed by the Pool.
type Task interface {
	Run(ctx context.Context) error
}

// TaskFunc adapts a plain function to Task.
type TaskFunc func(ctx context.Context) error

// Run calls f(ctx).
func (f TaskFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Decorator wraps a task at submission time. ctx is the submitter's context;
// the returned task later runs with the worker's context.
type Decorator func(ctx context.Context, t Task) Task

// ChainDecorators composes decorators. The first one is the outermost wrapper,
// so it runs its setup first and its teardown last.
func ChainDecorators(decorators ...Decorator) Decorator {
	return func(ctx context.Context, t Task) Task {
		for i := len(decorators) - 1; i >= 0; i-- {
			if decorators[i] == nil {
				continue
			}
			t = decorators[i](ctx, t)
		}
		return t
	}
}
