package props

import (
	"context"

	"github.com/goliatone/go-props/pkg/activity"
)

// WithActivityHooks attaches hooks notified after every successful mutation.
// Nil hooks are dropped. A failing hook never undoes the mutation.
func WithActivityHooks(hooks activity.Hooks) Option {
	compacted := hooks.Compact()
	return func(cfg *listConfig) {
		cfg.activityHooks = compacted
	}
}

// WithActivityChannel sets the channel stamped on emitted events.
func WithActivityChannel(channel string) Option {
	return func(cfg *listConfig) {
		cfg.activityChannel = channel
	}
}

// ActivityHooks returns a copy of the hooks configured on the list.
func (l *List) ActivityHooks() activity.Hooks {
	if l == nil {
		return nil
	}
	return l.cfg.activityHooks.Compact()
}

func (l *List) emit(build func(activity.EntryEventInput) activity.Event, name string, extra map[string]any) {
	if !l.cfg.emitter.Enabled() {
		return
	}
	input := activity.EntryEventInput{
		List:     l.cfg.label,
		Name:     name,
		Metadata: extra,
	}
	if v, ok := l.set.values[name]; ok {
		input.Kind = v.Kind().String()
		input.Count = v.Len()
	}
	if c, ok := l.comments[name]; ok {
		input.Comment = c
	}
	_ = l.cfg.emitter.Emit(context.Background(), build(input))
}
