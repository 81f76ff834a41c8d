package props

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Function is a helper callable from expressions. Arguments arrive as the
// engine hands them over: header scalars, []any for arrays.
type Function func(args ...any) (any, error)

// FunctionRegistry maps case-insensitive names to functions. It is safe for
// concurrent use.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry returns an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{functions: map[string]Function{}}
}

// Register adds fn under the lower-cased name. Empty names, nil functions
// and names already taken are rejected with ErrInvalidParameter.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	key := strings.ToLower(strings.TrimSpace(name))
	switch {
	case key == "":
		return &PropertyError{Op: "register", Name: name, Err: fmt.Errorf("%w: empty function name", ErrInvalidParameter)}
	case fn == nil:
		return &PropertyError{Op: "register", Name: name, Err: fmt.Errorf("%w: nil function", ErrInvalidParameter)}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = map[string]Function{}
	}
	if _, taken := r.functions[key]; taken {
		return &PropertyError{Op: "register", Name: name, Err: fmt.Errorf("%w: already registered", ErrInvalidParameter)}
	}
	r.functions[key] = fn
	return nil
}

// Clone returns an independent registry holding the same functions.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &FunctionRegistry{functions: maps.Clone(r.functions)}
}

// Call runs the function registered under name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, notFound("call", name)
	}
	r.mu.RLock()
	fn, ok := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, notFound("call", name)
	}
	return fn(args...)
}

// Names returns the registered names in sorted order.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.functions))
}

func (r *FunctionRegistry) binding(name string) func(...any) (any, error) {
	return func(args ...any) (any, error) {
		return r.Call(name, args...)
	}
}

// WithFunctionRegistry installs a copy of registry on the list's default
// evaluator.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *listConfig) {
		if registry != nil {
			cfg.functions = registry.Clone()
		}
	}
}

// WithCustomFunction registers one function for the list's default
// evaluator. A name that is already taken keeps its first function.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *listConfig) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}

// WithHeaderFunctions registers the helpers of HeaderFunctions for the
// list's default evaluator.
func WithHeaderFunctions() Option {
	return func(cfg *listConfig) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		for name, fn := range headerFunctions {
			_ = cfg.functions.Register(name, fn)
		}
	}
}

// HeaderFunctions returns a registry with helpers for common header rules:
//
//	mjd(t)          Modified Julian Date of a time or RFC 3339 string
//	firstof(v)      first element of an array, or v itself
//	lastof(v)       last element of an array, or v itself
//	deg2rad(x)      degrees to radians
//	rad2deg(x)      radians to degrees
func HeaderFunctions() *FunctionRegistry {
	r := NewFunctionRegistry()
	for name, fn := range headerFunctions {
		_ = r.Register(name, fn)
	}
	return r
}
