package engine

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultEvalTimeout is the hard limit for a single evaluation unless
// overridden with WithTimeout.
const DefaultEvalTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when a script runs past the engine timeout.
	ErrTimeout = errors.New("evaluation timed out")
	// ErrSuperseded is returned when a newer evaluation started before
	// this one finished.
	ErrSuperseded = errors.New("evaluation superseded by newer request")
)

// outcome is what a sandbox goroutine reports back to Evaluate.
type outcome struct {
	result *Result
	errors []EvalError
	err    error
}

func (e *Engine) isCurrent(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return gen == e.generation
}

// await blocks until out delivers, parent is done or the engine timeout
// elapses. An abandoned sandbox runs to completion in the background and
// its outcome is dropped into the buffered channel.
func (e *Engine) await(parent context.Context, gen uint64, out <-chan outcome) (*Result, []EvalError, error) {
	ctx, cancel := context.WithTimeout(parent, e.timeout)
	defer cancel()

	select {
	case o := <-out:
		if !e.isCurrent(gen) {
			return nil, nil, ErrSuperseded
		}
		return o.result, o.errors, o.err
	case <-ctx.Done():
		if err := parent.Err(); err != nil {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, e.timeout)
	}
}
