// Package usersink forwards list mutation events to a go-users activity sink.
package usersink

import (
	"context"
	"strings"

	"github.com/goliatone/go-props/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook adapts activity events to a go-users ActivitySink.
type Hook struct {
	Sink usertypes.ActivitySink
	// QualifyEntries prefixes entry object IDs with the list label, so
	// "exptime" on list "raw/0" is recorded as "raw/0:exptime".
	QualifyEntries bool
}

// Notify maps the event into an ActivityRecord and forwards it to the sink.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}

	normalized := event.Normalize()
	if !normalized.Valid() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	record := usertypes.ActivityRecord{
		ActorID:    parseUUID(normalized.ActorID),
		UserID:     parseUUID(normalized.UserID),
		TenantID:   parseUUID(normalized.TenantID),
		Verb:       normalized.Verb,
		ObjectType: normalized.ObjectType,
		ObjectID:   h.objectID(normalized),
		Channel:    normalized.Channel,
		Data:       normalized.Metadata,
		OccurredAt: normalized.OccurredAt,
	}
	if normalized.List != "" {
		record.Data = withData(record.Data, "list", normalized.List)
	}

	return h.Sink.Log(ctx, record)
}

func (h Hook) objectID(event activity.Event) string {
	if !h.QualifyEntries || event.ObjectType != activity.ObjectTypeEntry {
		return event.ObjectID
	}
	if event.List == "" {
		return event.ObjectID
	}
	return event.List + ":" + event.ObjectID
}

func withData(data map[string]any, key string, value any) map[string]any {
	if data == nil {
		data = map[string]any{}
	}
	data[key] = value
	return data
}

func parseUUID(input string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(input))
	if err != nil {
		return uuid.Nil
	}
	return id
}
