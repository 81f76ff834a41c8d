package layering_test

import (
	"errors"
	"testing"

	props "github.com/goliatone/go-props"
	"github.com/goliatone/go-props/layering"
	"github.com/google/go-cmp/cmp"
)

func TestNewStackSortsStrongestFirst(t *testing.T) {
	stack, err := layering.NewStack(
		layering.NewLayer("primary", layering.PriorityPrimary, mustList(t, "a", 1)),
		layering.NewLayer("override", layering.PriorityOverride, mustList(t, "a", 3)),
		layering.NewLayer("extension", layering.PriorityExtension, mustList(t, "a", 2)),
	)
	if err != nil {
		t.Fatalf("new stack: %v", err)
	}
	var names []string
	for _, layer := range stack.Layers() {
		names = append(names, layer.Name)
	}
	if diff := cmp.Diff([]string{"override", "extension", "primary"}, names); diff != "" {
		t.Fatalf("layer order mismatch (-want +got):\n%s", diff)
	}
}

func TestNewStackValidation(t *testing.T) {
	cases := []struct {
		name   string
		layers []layering.Layer
		want   error
	}{
		{
			name:   "missing name",
			layers: []layering.Layer{layering.NewLayer("", 1, nil)},
			want:   layering.ErrLayerNameRequired,
		},
		{
			name: "duplicate name",
			layers: []layering.Layer{
				layering.NewLayer("primary", 1, nil),
				layering.NewLayer("primary", 2, nil),
			},
			want: layering.ErrDuplicateLayerName,
		},
		{
			name: "shared priority",
			layers: []layering.Layer{
				layering.NewLayer("primary", 5, nil),
				layering.NewLayer("extension", 5, nil),
			},
			want: layering.ErrPriorityOrder,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := layering.NewStack(tc.layers...); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestStackLayersAreDetached(t *testing.T) {
	source := mustList(t, "object", "M31")
	stack, err := layering.NewStack(layering.NewLayer("primary", layering.PriorityPrimary, source))
	if err != nil {
		t.Fatalf("new stack: %v", err)
	}
	if err := source.Set("object", "M33"); err != nil {
		t.Fatalf("set: %v", err)
	}
	merged, err := stack.Merge(props.WithLabel("merged"))
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if got, _ := props.Get[string](merged, "object"); got != "M31" {
		t.Fatalf("stack must hold its own copy, got %q", got)
	}
	if merged.Label() != "merged" {
		t.Fatalf("options must apply to the merged list")
	}
}

func TestStackMergeEmpty(t *testing.T) {
	stack, err := layering.NewStack()
	if err != nil {
		t.Fatalf("new stack: %v", err)
	}
	if _, err := stack.Merge(); !errors.Is(err, layering.ErrEmptyStack) {
		t.Fatalf("expected ErrEmptyStack, got %v", err)
	}
}

func TestStackTraceReportsEffectiveLayer(t *testing.T) {
	primary := mustList(t, "exptime", 30.0, "wcs", "none")
	if err := primary.Set("exptime", 30.0, props.WithComment("primary exposure")); err != nil {
		t.Fatalf("set: %v", err)
	}
	stack, err := layering.NewStack(
		layering.NewLayer("primary", layering.PriorityPrimary, primary, layering.WithSnapshotID("snap-1")),
		layering.NewLayer("extension", layering.PriorityExtension, mustList(t, "wcs.crval1", 1.5)),
	)
	if err != nil {
		t.Fatalf("new stack: %v", err)
	}

	trace := stack.Trace("exptime")
	want := layering.Trace{
		Name: "exptime",
		Layers: []layering.Provenance{
			{Layer: "extension", Priority: layering.PriorityExtension},
			{Layer: "primary", Priority: layering.PriorityPrimary, SnapshotID: "snap-1", Found: true, Effective: true, Value: "30", Comment: "primary exposure"},
		},
	}
	if diff := cmp.Diff(want, trace); diff != "" {
		t.Fatalf("trace mismatch (-want +got):\n%s", diff)
	}

	shadow := stack.Trace("wcs")
	if winner, ok := shadow.Winner(); ok {
		t.Fatalf("a leaf shadowed by a stronger subtree must not win, got %+v", winner)
	}

	payload, err := trace.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	decoded, err := layering.TraceFromJSON(payload)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	if diff := cmp.Diff(trace, decoded); diff != "" {
		t.Fatalf("json round trip mismatch (-want +got):\n%s", diff)
	}
}
