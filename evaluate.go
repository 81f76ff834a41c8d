package props

import (
	"errors"
	"fmt"
	"time"
)

var ErrNoEvaluator = errors.New("props: evaluator not configured")

// Evaluate runs expr against the list using the configured evaluator, the
// expr-lang engine by default.
//
//	resp, err := header.Evaluate(`exptime > 30 && "r" in filters`)
func (l *List) Evaluate(expr string) (Response[any], error) {
	return l.EvaluateWith(RuleContext{}, expr)
}

// EvaluateWith runs expr using ctx. A nil Snapshot or Header is filled from
// the list and an empty Label from WithLabel.
func (l *List) EvaluateWith(ctx RuleContext, expr string) (Response[any], error) {
	if expr == "" {
		return Response[any]{}, fmt.Errorf("props: expression must not be empty")
	}
	evaluator, err := l.resolveEvaluator()
	if err != nil {
		return Response[any]{}, err
	}
	if ctx.Snapshot == nil {
		ctx.Snapshot = l.ToMap()
	}
	if ctx.Header == nil {
		ctx.Header = l.flat()
	}
	if ctx.Label == "" {
		ctx.Label = l.cfg.label
	}
	ctx = ctx.withDefaults()

	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expr)
	duration := time.Since(start)
	evalErr = wrapEvaluationError(engine, expr, ctx.label(), evalErr)
	l.cfg.evaluatorLogger().LogEvaluation(EvaluatorLogEvent{
		Engine:   engine,
		Expr:     expr,
		Label:    ctx.label(),
		Entries:  len(l.order),
		Duration: duration,
		Result:   value,
		Err:      evalErr,
	})
	if evalErr != nil {
		return Response[any]{}, evalErr
	}
	return Response[any]{Value: value}, nil
}

func (l *List) resolveEvaluator() (Evaluator, error) {
	if l.cfg.evaluator != nil {
		return l.cfg.evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if l.cfg.programCache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(l.cfg.programCache))
	}
	if l.cfg.functions != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(l.cfg.functions))
	}
	defaultEvaluator := NewExprEvaluator(exprOpts...)
	if defaultEvaluator == nil {
		return nil, ErrNoEvaluator
	}
	l.cfg.evaluator = defaultEvaluator
	return defaultEvaluator, nil
}

func (l *List) flat() map[string]any {
	out := make(map[string]any, len(l.order))
	for name, value := range l.All() {
		out[name] = plain(value)
	}
	return out
}

func evaluatorEngineName(e Evaluator) string {
	switch e.(type) {
	case nil:
		return "unknown"
	case *exprEvaluator:
		return "expr"
	case *celEvaluator:
		return "cel"
	case *jsEvaluator:
		return "js"
	default:
		return "custom"
	}
}
