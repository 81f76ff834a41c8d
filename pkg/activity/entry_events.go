package activity

import (
	"strings"
	"time"
)

const (
	// ObjectTypeEntry marks events about a single header entry.
	ObjectTypeEntry = "props.entry"
	// ObjectTypeList marks events about a whole list.
	ObjectTypeList = "props.list"
)

// EntryEventInput describes the common fields for list mutation events.
type EntryEventInput struct {
	ActorID    string
	UserID     string
	TenantID   string
	List       string
	Channel    string
	Metadata   map[string]any
	Name       string
	Kind       string
	Count      int
	Comment    string
	SnapshotID string
	OccurredAt time.Time
}

// BuildEntrySetEvent constructs the event for a replaced or created entry.
func BuildEntrySetEvent(input EntryEventInput) Event {
	return buildEntryEvent("props.set", ObjectTypeEntry, input)
}

// BuildEntryAddedEvent constructs the event for values appended to an entry.
func BuildEntryAddedEvent(input EntryEventInput) Event {
	return buildEntryEvent("props.added", ObjectTypeEntry, input)
}

// BuildEntryRemovedEvent constructs the event for a removed entry or subtree.
func BuildEntryRemovedEvent(input EntryEventInput) Event {
	return buildEntryEvent("props.removed", ObjectTypeEntry, input)
}

// BuildEntryCopiedEvent constructs the event for an entry copied from
// another container.
func BuildEntryCopiedEvent(input EntryEventInput) Event {
	return buildEntryEvent("props.copied", ObjectTypeEntry, input)
}

// BuildListCombinedEvent constructs the event for a merge of another
// container into the list.
func BuildListCombinedEvent(input EntryEventInput) Event {
	return buildEntryEvent("props.combined", ObjectTypeList, input)
}

func buildEntryEvent(verb, objectType string, input EntryEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Name != "" {
		metadata = ensureMetadata(metadata)
		metadata["name"] = input.Name
	}
	if input.Kind != "" {
		metadata = ensureMetadata(metadata)
		metadata["kind"] = input.Kind
		metadata["count"] = input.Count
	}
	if input.Comment != "" {
		metadata = ensureMetadata(metadata)
		metadata["comment"] = input.Comment
	}
	if input.SnapshotID != "" {
		metadata = ensureMetadata(metadata)
		metadata["snapshot_id"] = input.SnapshotID
	}

	list := strings.TrimSpace(input.List)
	objectID := strings.TrimSpace(input.Name)
	if objectType == ObjectTypeList || objectID == "" {
		objectID = list
	}
	if objectID == "" {
		objectID = strings.TrimSpace(input.SnapshotID)
	}
	if objectID == "" {
		objectID = objectType
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: objectType,
		ObjectID:   objectID,
		List:       list,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
