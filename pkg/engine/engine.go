// Package engine provides the Lisp evaluation engine for datum scripts.
// It wraps zygomys in a sandboxed environment with the geometry algebra
// registered as builtins and returns the value of the last expression.
package engine

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/datum/pkg/kernel"
	"github.com/chazu/datum/pkg/kernel/sdfx"
	zygo "github.com/glycerine/zygomys/zygo"
	"go.uber.org/zap"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Result is the outcome of a successful evaluation.
type Result struct {
	// Value is the Go value of the last expression: a geom value, a
	// kernel.Solid, float64, int64, string, bool, or nil.
	Value any
	// Text is the printed form of the last expression.
	Text string
}

// Engine wraps the zygomys interpreter for datum evaluation.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	logger  *zap.Logger
	timeout time.Duration
	kernel  kernel.Kernel
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTimeout sets the hard limit for a single evaluation.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithKernel sets the solid-modelling kernel behind the solid builtins.
func WithKernel(k kernel.Kernel) Option {
	return func(e *Engine) {
		if k != nil {
			e.kernel = k
		}
	}
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:  zap.NewNop(),
		timeout: DefaultEvalTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.kernel == nil {
		e.kernel = sdfx.New()
	}
	return e
}

// Kernel returns the kernel solids are built with.
func (e *Engine) Kernel() kernel.Kernel {
	return e.kernel
}

// Evaluate runs Lisp source code and returns the value of its last
// expression. Each call creates a fresh zygomys sandbox for deterministic
// evaluation.
//
// Return semantics:
//   - On success: returns result + nil errors + nil error
//   - On parse/eval failure: returns nil result + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*Result, []EvalError, error) {
	return e.EvaluateContext(context.Background(), source)
}

// EvaluateContext is Evaluate bounded by ctx as well as the engine
// timeout. Cancelling ctx returns ctx.Err(); timeouts wrap ErrTimeout.
func (e *Engine) EvaluateContext(ctx context.Context, source string) (*Result, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	log := e.logger.With(zap.Uint64("generation", gen))
	start := time.Now()

	ch := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res, evalErrs, err := e.evaluate(source)
		ch <- outcome{result: res, errors: evalErrs, err: err}
	}()

	res, evalErrs, err := e.await(ctx, gen, ch)
	switch {
	case err != nil:
		log.Warn("evaluation failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
	case len(evalErrs) > 0:
		log.Info("script error", zap.String("error", evalErrs[0].Error()), zap.Int("errors", len(evalErrs)))
	default:
		log.Debug("evaluated", zap.String("result", res.Text), zap.Duration("elapsed", time.Since(start)))
	}
	return res, evalErrs, err
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Result, []EvalError, error) {
	// Empty source is a valid program with no value.
	if strings.TrimSpace(source) == "" {
		return &Result{}, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, e.kernel)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	last, err := env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	return toResult(last), nil, nil
}

// toResult converts the final Sexp of a script into a Result.
func toResult(s zygo.Sexp) *Result {
	if s == nil {
		return &Result{}
	}
	res := &Result{Text: s.SexpString(nil)}
	switch v := s.(type) {
	case *sexpGeom:
		res.Value = v.val
	case *sexpSolid:
		res.Value = v.solid
	case *zygo.SexpFloat:
		res.Value = v.Val
	case *zygo.SexpInt:
		res.Value = v.Val
	case *zygo.SexpStr:
		res.Value = v.S
	case *zygo.SexpBool:
		res.Value = v.Val
	}
	return res
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
