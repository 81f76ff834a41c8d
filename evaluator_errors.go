package props

import (
	"errors"
	"fmt"
	"strings"
)

// EvaluationError reports a failed header rule together with the engine that
// ran it and the label of the list it ran against.
type EvaluationError struct {
	Engine string
	Expr   string
	Label  string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("props: ")
	b.WriteString(e.Engine)
	if e.Expr == "" {
		b.WriteString(" rule <empty>")
	} else {
		fmt.Fprintf(&b, " rule %q", e.Expr)
	}
	if e.Label != "" {
		fmt.Fprintf(&b, " on %s", e.Label)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// wrapEvaluatorError prefixes engine setup failures that carry no
// expression. Errors already from this package pass through unchanged.
func wrapEvaluatorError(engine string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) || strings.HasPrefix(err.Error(), "props:") {
		return err
	}
	return fmt.Errorf("props: %s evaluator: %w", engine, err)
}

// wrapEvaluationError attaches engine, expression and label to err. An
// existing EvaluationError keeps what it has and only gains empty fields.
func wrapEvaluationError(engine, expr, label string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		return &EvaluationError{Engine: engine, Expr: expr, Label: label, Err: err}
	}
	fill(&evalErr.Engine, engine)
	fill(&evalErr.Expr, expr)
	fill(&evalErr.Label, label)
	return evalErr
}

func fill(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
