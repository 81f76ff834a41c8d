package activity

import (
	"context"
	"strings"
)

// DefaultChannel is stamped on events emitted without an explicit channel.
const DefaultChannel = "props"

// Emitter is the per-list sender: it owns a compacted copy of the hooks and
// the channel stamped on every event that does not carry one.
type Emitter struct {
	hooks   Hooks
	channel string
}

// NewEmitter builds an emitter for hooks. An empty channel selects
// DefaultChannel.
func NewEmitter(hooks Hooks, channel string) *Emitter {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = DefaultChannel
	}
	return &Emitter{hooks: hooks.Compact(), channel: channel}
}

// Enabled reports whether any hook would receive an event. A nil emitter is
// disabled.
func (e *Emitter) Enabled() bool {
	return e != nil && len(e.hooks) > 0
}

// Emit stamps the default channel and notifies the hooks.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	if strings.TrimSpace(event.Channel) == "" {
		event.Channel = e.channel
	}
	return e.hooks.Notify(ctx, event)
}
