package activity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Event describes one mutation of a header list. Actor, user and tenant IDs
// are plain strings; sinks parse them into whatever identity type they use.
type Event struct {
	Verb       string
	ActorID    string
	UserID     string
	TenantID   string
	ObjectType string
	ObjectID   string
	// List is the label of the list that changed.
	List       string
	Channel    string
	Metadata   map[string]any
	OccurredAt time.Time
}

// Valid reports whether the event names a verb and an object.
func (e Event) Valid() bool {
	return e.Verb != "" && e.ObjectType != "" && e.ObjectID != ""
}

// Normalize returns a copy of e with trimmed identifiers, detached metadata
// and a timestamp.
func (e Event) Normalize() Event {
	for _, field := range []*string{
		&e.Verb, &e.ActorID, &e.UserID, &e.TenantID,
		&e.ObjectType, &e.ObjectID, &e.List, &e.Channel,
	} {
		*field = strings.TrimSpace(*field)
	}
	e.Metadata = cloneMap(e.Metadata)
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	return e
}

// ActivityHook receives normalized activity events.
type ActivityHook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc allows plain functions to satisfy ActivityHook.
type HookFunc func(ctx context.Context, event Event) error

// Notify dispatches to the underlying function.
func (fn HookFunc) Notify(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// Hooks fans out events to zero or more hooks.
type Hooks []ActivityHook

// Enabled reports whether there are any hooks to notify.
func (h Hooks) Enabled() bool {
	return len(h) > 0
}

// Compact returns a copy of h without nil hooks, or nil when none remain.
func (h Hooks) Compact() Hooks {
	var out Hooks
	for _, hook := range h {
		if hook != nil {
			out = append(out, hook)
		}
	}
	return out
}

// Notify normalizes event and forwards it to every hook. Invalid events are
// dropped. Every hook runs even when an earlier one fails; failures are
// joined and tagged with the hook position.
func (h Hooks) Notify(ctx context.Context, event Event) error {
	if len(h) == 0 {
		return nil
	}
	normalized := event.Normalize()
	if !normalized.Valid() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var errs []error
	for i, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, normalized); err != nil {
			errs = append(errs, fmt.Errorf("activity: hook %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
