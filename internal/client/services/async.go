package services

import (
	"context"
	"fmt"
)

// Result carries the outcome of an asynchronous call. Err is nil on success.
type Result[T any] struct {
	Value T
	Err   error
}

// Async runs fn in its own goroutine. The returned channel delivers exactly
// one Result and is then closed; a panic in fn is delivered as an error.
func Async[T any](ctx context.Context, fn func(context.Context) (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)

	go func() {
		defer close(ch)

		var res Result[T]
		func() {
			defer func() {
				if r := recover(); r != nil {
					res = Result[T]{Err: fmt.Errorf("panic: %v", r)}
				}
			}()
			res.Value, res.Err = fn(ctx)
		}()

		ch <- res
	}()

	return ch
}
