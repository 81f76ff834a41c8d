package props

import (
	"errors"
	"testing"
)

func TestWrapEvaluationErrorCreatesMetadata(t *testing.T) {
	base := errors.New("boom")
	err := wrapEvaluationError("expr", "exptime > 30 && missing", "raw/0", base)

	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T", err)
	}
	if evalErr.Engine != "expr" || evalErr.Expr != "exptime > 30 && missing" || evalErr.Label != "raw/0" {
		t.Fatalf("unexpected metadata: %+v", evalErr)
	}
	if !errors.Is(err, base) {
		t.Fatalf("wrapped error should unwrap to base error")
	}
	if got, want := err.Error(), `props: expr rule "exptime > 30 && missing" on raw/0: boom`; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := (&EvaluationError{Engine: "cel", Err: base}).Error(); got != "props: cel rule <empty>: boom" {
		t.Fatalf("unexpected message for empty rule %q", got)
	}
}

func TestWrapEvaluationErrorAugmentsExisting(t *testing.T) {
	base := errors.New("compile failure")
	existing := &EvaluationError{Engine: "expr", Err: base}

	err := wrapEvaluationError("cel", "airmass < 2", "raw/1", existing)
	if !errors.Is(err, base) {
		t.Fatalf("expected base error to unwrap")
	}
	if existing.Engine != "expr" {
		t.Fatalf("existing engine should not be overwritten, got %q", existing.Engine)
	}
	if existing.Expr != "airmass < 2" || existing.Label != "raw/1" {
		t.Fatalf("empty fields should be filled, got %+v", existing)
	}
}

func TestWrapEvaluatorErrorPrefixesOnce(t *testing.T) {
	err := wrapEvaluatorError("js", errors.New("expression must not be empty"))
	if err.Error() != "props: js evaluator: expression must not be empty" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if again := wrapEvaluatorError("js", err); again != err {
		t.Fatalf("prefixed errors must pass through unchanged")
	}
	if wrapEvaluatorError("js", nil) != nil {
		t.Fatalf("nil must stay nil")
	}
}
