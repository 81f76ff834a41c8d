package props

import "time"

// EvaluatorLogEvent describes one rule evaluation against a list.
type EvaluatorLogEvent struct {
	Engine string
	Expr   string
	Label  string
	// Entries is the number of ordered names the rule could see.
	Entries  int
	Duration time.Duration
	Result   any
	Err      error
}

// EvaluatorLogger receives one event per List.Evaluate call. The package
// itself never writes logs; callers forward events to their own logger.
type EvaluatorLogger interface {
	LogEvaluation(EvaluatorLogEvent)
}

// EvaluatorLoggerFunc adapts a function to EvaluatorLogger.
type EvaluatorLoggerFunc func(EvaluatorLogEvent)

func (f EvaluatorLoggerFunc) LogEvaluation(event EvaluatorLogEvent) {
	if f != nil {
		f(event)
	}
}

// WithEvaluatorLogger routes evaluation events to logger. Nil discards them.
func WithEvaluatorLogger(logger EvaluatorLogger) Option {
	return func(cfg *listConfig) {
		cfg.logger = logger
	}
}

func (cfg *listConfig) evaluatorLogger() EvaluatorLogger {
	if cfg.logger == nil {
		return EvaluatorLoggerFunc(nil)
	}
	return cfg.logger
}
