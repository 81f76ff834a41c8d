package props

import (
	"strings"
	"time"

	"github.com/goliatone/go-props/pkg/activity"
)

// SchemaFormat identifies the representation a schema document encodes.
type SchemaFormat string

const (
	// SchemaFormatDescriptors represents the flattened field descriptors.
	SchemaFormatDescriptors SchemaFormat = "descriptors"
	// SchemaFormatOpenAPI represents OpenAPI-compatible JSON Schema documents.
	SchemaFormatOpenAPI SchemaFormat = "openapi"
)

// SchemaDocument encapsulates a generated schema output alongside its format
// identifier. Implementations must ensure Document is JSON-serialisable.
type SchemaDocument struct {
	Format   SchemaFormat
	Document any
	Label    string
}

// SchemaGenerator describes the entries of a list. Implementations must be
// safe for concurrent use and return an empty document for a nil list.
type SchemaGenerator interface {
	Generate(list *List) (SchemaDocument, error)
}

// Response stores a typed result produced by an evaluator.
type Response[T any] struct {
	Value T
}

// RuleContext carries inputs needed when evaluating an expression against a
// header snapshot. Snapshot holds the nested view of the list, so "a.b" is
// reachable as a.b; Header holds the flat view keyed by full name.
type RuleContext struct {
	Snapshot any
	Header   map[string]any
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
	Label    string
}

func (ctx RuleContext) withDefaults() RuleContext {
	return ctx.withDefaultNow().withDefaultMaps()
}

func (ctx RuleContext) withDefaultNow() RuleContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	if ctx.Header == nil {
		ctx.Header = map[string]any{}
	}
	return ctx
}

// bindings returns the variables every engine exposes besides the snapshot.
func (ctx RuleContext) bindings() map[string]any {
	return map[string]any{
		"now":      ctx.timestamp(),
		"args":     ctx.Args,
		"metadata": ctx.Metadata,
		"header":   ctx.Header,
		"label":    ctx.label(),
	}
}

func (ctx RuleContext) label() string {
	if label := strings.TrimSpace(ctx.Label); label != "" {
		return label
	}
	return "unknown"
}

// Evaluator executes expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// Option configures a List.
type Option func(*listConfig)

type listConfig struct {
	label           string
	evaluator       Evaluator
	programCache    ProgramCache
	functions       *FunctionRegistry
	logger          EvaluatorLogger
	schemaGenerator SchemaGenerator
	activityHooks   activity.Hooks
	activityChannel string
	emitter         *activity.Emitter
}

func applyOptions(opts []Option) listConfig {
	cfg := listConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if len(cfg.activityHooks) > 0 {
		cfg.emitter = activity.NewEmitter(cfg.activityHooks, cfg.activityChannel)
	}
	return cfg
}

// WithLabel names the list. The label identifies the list in evaluation
// errors, schema documents and activity events.
func WithLabel(label string) Option {
	return func(cfg *listConfig) {
		cfg.label = strings.TrimSpace(label)
	}
}

// WithSchemaGenerator configures a custom schema generator implementation.
func WithSchemaGenerator(generator SchemaGenerator) Option {
	return func(cfg *listConfig) {
		cfg.schemaGenerator = generator
	}
}

// WithEvaluator replaces the default expr-lang evaluator.
func WithEvaluator(evaluator Evaluator) Option {
	return func(cfg *listConfig) {
		cfg.evaluator = evaluator
	}
}

func (cfg *listConfig) generator() SchemaGenerator {
	if cfg.schemaGenerator != nil {
		return cfg.schemaGenerator
	}
	return DefaultSchemaGenerator()
}
