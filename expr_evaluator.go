package props

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprEvaluatorOption configures an expr evaluator instance.
type ExprEvaluatorOption func(*exprEvaluator)

// ExprWithProgramCache shares compiled programs through cache.
func ExprWithProgramCache(cache ProgramCache) ExprEvaluatorOption {
	return func(e *exprEvaluator) {
		e.cache = cache
	}
}

// ExprWithFunctionRegistry exposes every function of registry by name, and
// through call("name", args...).
func ExprWithFunctionRegistry(registry *FunctionRegistry) ExprEvaluatorOption {
	return func(e *exprEvaluator) {
		if registry != nil {
			e.registry = registry.Clone()
		}
	}
}

// ExprAsPredicate restricts expressions to boolean results, so a header
// rule such as `EXPTIME > 30` fails at compile time when it cannot yield a
// bool and at run time when it does not.
func ExprAsPredicate() ExprEvaluatorOption {
	return func(e *exprEvaluator) {
		e.predicate = true
	}
}

// exprEvaluator runs header rules with github.com/expr-lang/expr. Header
// names are not known at compile time, so programs are compiled against an
// open environment and reused for any list.
type exprEvaluator struct {
	cache     ProgramCache
	registry  *FunctionRegistry
	predicate bool
}

// NewExprEvaluator constructs an Evaluator backed by expr-lang/expr.
func NewExprEvaluator(opts ...ExprEvaluatorOption) Evaluator {
	e := &exprEvaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *exprEvaluator) Evaluate(ctx RuleContext, expression string) (any, error) {
	program, err := e.prepare(expression)
	if err != nil {
		return nil, err
	}
	return e.run(ctx.withDefaults(), expression, program)
}

func (e *exprEvaluator) Compile(expression string, _ ...CompileOption) (CompiledRule, error) {
	program, err := e.prepare(expression)
	if err != nil {
		return nil, err
	}
	return &exprCompiledRule{evaluator: e, program: program, expression: expression}, nil
}

func (e *exprEvaluator) prepare(expression string) (*exprvm.Program, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("expr", fmt.Errorf("expression must not be empty"))
	}
	engine := "expr"
	if e.predicate {
		engine = "expr?"
	}
	key := cacheKey(engine, expression)
	if e.cache != nil {
		if program, ok := e.cache.Get(key); ok {
			if program, ok := program.(*exprvm.Program); ok {
				return program, nil
			}
		}
	}

	program, err := exprlang.Compile(expression, e.compileOptions()...)
	if err != nil {
		return nil, wrapEvaluationError("expr", expression, "", err)
	}
	if e.cache != nil {
		e.cache.Set(key, program)
	}
	return program, nil
}

func (e *exprEvaluator) compileOptions() []exprlang.Option {
	options := []exprlang.Option{
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	}
	if e.predicate {
		options = append(options, exprlang.AsBool())
	}
	for _, name := range e.registry.Names() {
		options = append(options, exprlang.Function(name, e.registry.binding(name)))
	}
	return options
}

func (e *exprEvaluator) run(ctx RuleContext, expression string, program *exprvm.Program) (any, error) {
	result, err := exprlang.Run(program, e.environment(ctx))
	if err != nil {
		return nil, wrapEvaluationError("expr", expression, ctx.label(), err)
	}
	if _, ok := result.(bool); e.predicate && !ok {
		return nil, wrapEvaluationError("expr", expression, ctx.label(),
			fmt.Errorf("%w: predicate yielded %T", ErrTypeMismatch, result))
	}
	return result, nil
}

// environment layers the header snapshot over the standard bindings, so a
// header named "label" hides the list label.
func (e *exprEvaluator) environment(ctx RuleContext) map[string]any {
	env := ctx.bindings()
	if snapshot, ok := ctx.Snapshot.(map[string]any); ok {
		for key, value := range snapshot {
			env[key] = value
		}
	}
	if e.registry != nil {
		env["call"] = func(name string, args ...any) (any, error) {
			return e.registry.Call(name, args...)
		}
	}
	return env
}

type exprCompiledRule struct {
	evaluator  *exprEvaluator
	program    *exprvm.Program
	expression string
}

func (r *exprCompiledRule) Evaluate(ctx RuleContext) (any, error) {
	if r.evaluator == nil {
		return nil, wrapEvaluatorError("expr", fmt.Errorf("compiled rule missing evaluator"))
	}
	return r.evaluator.run(ctx.withDefaults(), r.expression, r.program)
}
