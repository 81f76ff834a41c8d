package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	props "github.com/goliatone/go-props"
	"github.com/goliatone/go-props/layering"
)

var ErrETagMismatch = errors.New("state: etag mismatch")

// InheritKeyword is the name an extension header uses to opt out of
// inheriting its primary header: a stored false disables inheritance.
const InheritKeyword = "INHERIT"

// Ref identifies one persisted header: HDU 0 is the primary header and
// higher numbers are extensions.
type Ref struct {
	Dataset string
	HDU     int
}

// Identifier returns the deterministic storage key for r.
func (r Ref) Identifier() (string, error) {
	if r.Dataset == "" {
		return "", fmt.Errorf("state: dataset is required")
	}
	if r.HDU < 0 {
		return "", fmt.Errorf("state: hdu %d out of range", r.HDU)
	}
	return fmt.Sprintf("%s/hdu/%d", r.Dataset, r.HDU), nil
}

func (r Ref) primary() Ref {
	return Ref{Dataset: r.Dataset}
}

// Meta is storage-owned metadata used for audit and concurrency control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store loads and saves one list per Ref. Implementations must not retain
// the lists they are handed or return lists they still reference.
type Store interface {
	Load(ctx context.Context, ref Ref) (list *props.List, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, list *props.List, meta Meta) (Meta, error)
}

// Resolver loads headers from a Store and layers extensions over their
// primary header.
type Resolver struct {
	Store Store
}

// Mutator edits a loaded list in place.
type Mutator func(*props.List) error

// Resolution is an effective header together with the stack it came from.
type Resolution struct {
	List  *props.List
	Stack *layering.Stack
}

// Trace reports which layer supplies name.
func (r Resolution) Trace(name string) layering.Trace {
	return r.Stack.Trace(name)
}

// Resolve returns the effective header for ref. For an extension the
// primary header is inherited unless the extension stores INHERIT = false.
func (r Resolver) Resolve(ctx context.Context, ref Ref, opts ...props.Option) (Resolution, error) {
	if r.Store == nil {
		return Resolution{}, fmt.Errorf("state: store is required")
	}
	if _, err := ref.Identifier(); err != nil {
		return Resolution{}, err
	}

	refs := []Ref{ref}
	priorities := []int{layering.PriorityExtension}
	if ref.HDU == 0 {
		priorities[0] = layering.PriorityPrimary
	}

	var layers []layering.Layer
	for i := 0; i < len(refs); i++ {
		current := refs[i]
		list, meta, ok, err := r.Store.Load(ctx, current)
		if err != nil {
			return Resolution{}, fmt.Errorf("state: load %s hdu %d: %w", current.Dataset, current.HDU, err)
		}
		if !ok {
			continue
		}
		layers = append(layers, layering.NewLayer(layerName(current), priorities[i], list, layering.WithSnapshotID(meta.SnapshotID)))
		if current.HDU > 0 && inherits(list) {
			refs = append(refs, current.primary())
			priorities = append(priorities, layering.PriorityPrimary)
		}
	}
	if len(layers) == 0 {
		return Resolution{}, fmt.Errorf("state: no header found for %s hdu %d", ref.Dataset, ref.HDU)
	}

	stack, err := layering.NewStack(layers...)
	if err != nil {
		return Resolution{}, fmt.Errorf("state: stack: %w", err)
	}
	merged, err := stack.Merge(opts...)
	if err != nil {
		return Resolution{}, fmt.Errorf("state: merge: %w", err)
	}
	return Resolution{List: merged, Stack: stack}, nil
}

// Mutate loads the list stored at ref, applies fn to a copy and saves the
// result. A non-empty meta.ETag must match the stored ETag. Nothing is saved
// when fn fails.
func (r Resolver) Mutate(ctx context.Context, ref Ref, meta Meta, fn Mutator) (*props.List, Meta, error) {
	if r.Store == nil {
		return nil, Meta{}, fmt.Errorf("state: store is required")
	}
	if _, err := ref.Identifier(); err != nil {
		return nil, Meta{}, err
	}
	if fn == nil {
		return nil, Meta{}, fmt.Errorf("state: mutator is required")
	}

	list, loadedMeta, ok, err := r.Store.Load(ctx, ref)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("state: load %s hdu %d: %w", ref.Dataset, ref.HDU, err)
	}
	if !ok {
		list = props.NewList()
		loadedMeta = Meta{}
	}

	if meta.ETag != "" && loadedMeta.ETag != "" && meta.ETag != loadedMeta.ETag {
		return nil, loadedMeta, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, loadedMeta.ETag)
	}

	working := list.DeepCopy()
	if err := fn(working); err != nil {
		return nil, loadedMeta, err
	}

	saveMeta := mergeMeta(loadedMeta, meta)
	saveMeta.UpdatedAt = meta.UpdatedAt
	savedMeta, err := r.Store.Save(ctx, ref, working, saveMeta)
	if err != nil {
		return nil, loadedMeta, fmt.Errorf("state: save %s hdu %d: %w", ref.Dataset, ref.HDU, err)
	}
	return working, savedMeta, nil
}

func inherits(list *props.List) bool {
	inherit, err := props.GetOr(list, InheritKeyword, true)
	return err != nil || inherit
}

func layerName(ref Ref) string {
	if ref.HDU == 0 {
		return "primary"
	}
	return fmt.Sprintf("hdu%d", ref.HDU)
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}
