package activity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestEventNormalizeTrimsClonesAndDefaults(t *testing.T) {
	meta := map[string]any{"name": "exptime"}
	evt := Event{
		Verb:       " props.set ",
		ActorID:    " pipeline ",
		TenantID:   " survey ",
		ObjectType: " props.entry ",
		ObjectID:   " exptime ",
		List:       " raw/0 ",
		Channel:    " headers ",
		Metadata:   meta,
	}

	got := evt.Normalize()

	if got.Verb != "props.set" || got.ObjectType != "props.entry" || got.ObjectID != "exptime" {
		t.Fatalf("unexpected normalized fields: %+v", got)
	}
	if got.ActorID != "pipeline" || got.TenantID != "survey" || got.Channel != "headers" || got.List != "raw/0" {
		t.Fatalf("unexpected trimming: %+v", got)
	}
	if got.OccurredAt.IsZero() {
		t.Fatalf("expected OccurredAt to be set")
	}
	got.Metadata["name"] = "changed"
	if evt.Metadata["name"] != "exptime" {
		t.Fatalf("expected original metadata untouched: %+v", evt.Metadata)
	}
	if !got.Valid() || (Event{Verb: "props.set"}).Valid() {
		t.Fatalf("unexpected validity")
	}
}

func TestHooksNotifySkipsIncompleteEvents(t *testing.T) {
	capture := &CaptureHook{}
	hooks := Hooks{capture}
	if err := hooks.Notify(context.Background(), Event{Verb: "props.set"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events captured, got %d", len(capture.Events))
	}
}

func TestHooksNotifyFanOutAndJoinErrors(t *testing.T) {
	capture := &CaptureHook{}
	first := errors.New("sink offline")
	second := errors.New("quota exceeded")
	var ctxSeen bool
	hooks := Hooks{
		HookFunc(func(ctx context.Context, _ Event) error {
			ctxSeen = ctx != nil
			return nil
		}),
		capture,
		HookFunc(func(context.Context, Event) error { return first }),
		nil,
		HookFunc(func(context.Context, Event) error { return second }),
	}

	err := hooks.Notify(nil, Event{Verb: "props.removed", ObjectType: ObjectTypeEntry, ObjectID: "airmass"})
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if !strings.Contains(err.Error(), "activity: hook 2: sink offline") || !strings.Contains(err.Error(), "activity: hook 4: quota exceeded") {
		t.Fatalf("expected hook positions in error, got %q", err.Error())
	}
	if !ctxSeen {
		t.Fatalf("expected context fallback to be non-nil")
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected event to be captured once, got %d", len(capture.Events))
	}
}

func TestEmitterDisabledAndEnabled(t *testing.T) {
	capture := &CaptureHook{}
	event := Event{Verb: "props.added", ObjectType: ObjectTypeEntry, ObjectID: "filters"}

	disabled := NewEmitter(Hooks{nil}, "")
	if disabled.Enabled() {
		t.Fatalf("expected emitter without hooks to be disabled")
	}
	if err := disabled.Emit(context.Background(), event); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events captured when disabled")
	}

	enabled := NewEmitter(Hooks{capture}, " ")
	if err := enabled.Emit(context.Background(), event); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected one event captured, got %d", len(capture.Events))
	}
	if capture.Events[0].Channel != DefaultChannel {
		t.Fatalf("expected default channel applied, got %q", capture.Events[0].Channel)
	}
}

func TestEmitterPreservesExplicitChannelAndTime(t *testing.T) {
	capture := &CaptureHook{}
	emitter := NewEmitter(Hooks{capture}, "headers")
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	err := emitter.Emit(context.Background(), Event{
		Verb:       "props.set",
		ObjectType: ObjectTypeEntry,
		ObjectID:   "object",
		Channel:    "ingest",
		OccurredAt: at,
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if capture.Events[0].Channel != "ingest" {
		t.Fatalf("expected explicit channel preserved, got %q", capture.Events[0].Channel)
	}
	if !capture.Events[0].OccurredAt.Equal(at) {
		t.Fatalf("expected occurred_at preserved, got %v", capture.Events[0].OccurredAt)
	}
}

func TestNilEmitterIsDisabled(t *testing.T) {
	var emitter *Emitter
	if emitter.Enabled() {
		t.Fatalf("nil emitter must report disabled")
	}
	if err := emitter.Emit(context.Background(), Event{}); err != nil {
		t.Fatalf("nil emitter emit: %v", err)
	}
}

func TestHooksCompact(t *testing.T) {
	hook := HookFunc(func(context.Context, Event) error { return nil })
	if got := (Hooks{nil, nil}).Compact(); got != nil {
		t.Fatalf("expected nil for all-nil hooks, got %v", got)
	}
	original := Hooks{nil, hook}
	compacted := original.Compact()
	if len(compacted) != 1 {
		t.Fatalf("expected 1 hook, got %d", len(compacted))
	}
	compacted[0] = nil
	if original[1] == nil {
		t.Fatalf("compact must copy")
	}
}
