// Package embed provides the Go embedding API for the calculator.
//
// Pass a token script, get the final calculator state.
//
// Basic usage:
//
//	result, err := embed.Execute(`5 ENT 3 +`)
//	fmt.Println(result.Stack[0]) // 8
//
// With options:
//
//	result, err := embed.ExecuteWithOptions(`FF ENT 1 +`,
//	    embed.WithBase(16),
//	    embed.WithStrict(),
//	)
package embed

import (
	"context"
	"os"
	"strings"

	"github.com/juju/errors"

	"github.com/doug-101/rpcalc/pkg/calc"
)

// Common errors
var (
	ErrRejected   = errors.New("token rejected")
	ErrTokenLimit = errors.New("token limit exceeded")
)

// Result is the calculator state after a script has run.
type Result struct {
	Display  string                   `json:"display"`
	Mode     string                   `json:"mode"`
	Base     int                      `json:"base"`
	Stack    [calc.StackSize]float64  `json:"stack"`
	Memory   [calc.MemorySize]float64 `json:"memory"`
	History  []calc.HistoryEntry      `json:"history"`
	Rejected []string                 `json:"rejected,omitempty"`
}

// X returns the X register.
func (r *Result) X() float64 { return r.Stack[calc.RegX] }

// Execute runs a script against a fresh engine with default settings.
func Execute(script string) (*Result, error) {
	return ExecuteWithOptions(script)
}

// ExecuteFile reads a script file and executes it.
func ExecuteFile(path string, opts ...Option) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return ExecuteWithOptions(string(data), opts...)
}

// Options configures execution behavior for ExecuteWithOptions.
type Options struct {
	// Settings for a fresh engine. Ignored when Engine is set.
	Settings calc.Settings

	// Engine runs the script against existing state instead of a fresh engine.
	Engine *calc.Engine

	// Stack and Memory preload the registers. Nil leaves them as they are.
	Stack  *[calc.StackSize]float64
	Memory *[calc.MemorySize]float64

	// Base selects the entry base. Zero keeps the engine's base.
	Base int

	// Strict stops at the first rejected token with ErrRejected.
	Strict bool

	// MaxTokens limits the number of tokens executed.
	// Zero means unlimited.
	MaxTokens int

	// Context for cancellation. If nil, context.Background() is used.
	Context context.Context
}

// Option is a functional option for configuring execution.
type Option func(*Options)

// WithSettings sets the settings of the fresh engine.
func WithSettings(s calc.Settings) Option {
	return func(o *Options) {
		o.Settings = s
	}
}

// WithEngine runs against an existing engine, which is left in its final state.
func WithEngine(e *calc.Engine) Option {
	return func(o *Options) {
		o.Engine = e
	}
}

// WithStack preloads X, Y, Z and T.
func WithStack(stack [calc.StackSize]float64) Option {
	return func(o *Options) {
		o.Stack = &stack
	}
}

// WithMemory preloads the memory slots.
func WithMemory(mem [calc.MemorySize]float64) Option {
	return func(o *Options) {
		o.Memory = &mem
	}
}

// WithBase sets the entry base.
func WithBase(base int) Option {
	return func(o *Options) {
		o.Base = base
	}
}

// WithStrict enables strict mode.
func WithStrict() Option {
	return func(o *Options) {
		o.Strict = true
	}
}

// WithMaxTokens sets the token limit.
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithContext sets the context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		o.Context = ctx
	}
}

// ExecuteWithOptions runs script with advanced configuration.
//
// Example:
//
//	result, err := embed.ExecuteWithOptions(script,
//	    embed.WithStack([4]float64{2, 3, 0, 0}),
//	    embed.WithMaxTokens(1000),
//	)
func ExecuteWithOptions(script string, opts ...Option) (*Result, error) {
	options := &Options{
		Settings: calc.DefaultSettings(),
		Context:  context.Background(),
	}
	for _, opt := range opts {
		opt(options)
	}

	e := options.Engine
	if e == nil {
		e = calc.NewEngine(options.Settings)
	}
	if options.Stack != nil || options.Memory != nil {
		st := e.State()
		if options.Stack != nil {
			st.Stack = *options.Stack
		}
		if options.Memory != nil {
			st.Mem = *options.Memory
		}
		e.Restore(st.Stack, st.Mem)
	}
	if options.Base != 0 {
		if err := e.SetBase(options.Base); err != nil {
			return nil, errors.Trace(err)
		}
	}

	var rejected []string
	for i, tok := range Tokenize(script) {
		if err := options.Context.Err(); err != nil {
			return nil, errors.Trace(err)
		}
		if options.MaxTokens > 0 && i >= options.MaxTokens {
			return nil, ErrTokenLimit
		}
		if e.Cmd(tok) {
			continue
		}
		if options.Strict {
			return nil, errors.Annotatef(ErrRejected, "token %d %q in %v mode", i+1, tok, e.Mode())
		}
		rejected = append(rejected, tok)
	}

	st := e.State()
	return &Result{
		Display:  e.Display(),
		Mode:     e.Mode().String(),
		Base:     e.Base(),
		Stack:    st.Stack,
		Memory:   st.Mem,
		History:  e.History(),
		Rejected: rejected,
	}, nil
}

// Tokenize splits a script into calculator tokens. Words are separated by
// white space and a '#' starts a comment running to the end of the line.
// A word that is not itself a command, but whose every character is, is
// split into characters, so "12.5" reads as "1", "2", ".", "5". Other words
// are kept whole.
func Tokenize(script string) []string {
	var tokens []string
	for _, line := range strings.Split(script, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, word := range strings.Fields(line) {
			tokens = append(tokens, splitWord(word)...)
		}
	}
	return tokens
}

func splitWord(word string) []string {
	if _, ok := calc.ParseCommand(word); ok {
		return []string{word}
	}
	chars := make([]string, 0, len(word))
	for _, r := range word {
		ch := string(r)
		if _, ok := calc.ParseCommand(ch); !ok {
			return []string{word}
		}
		chars = append(chars, ch)
	}
	return chars
}
