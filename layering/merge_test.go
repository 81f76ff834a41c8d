package layering_test

import (
	"testing"

	props "github.com/goliatone/go-props"
	"github.com/goliatone/go-props/layering"
	"github.com/google/go-cmp/cmp"
)

func mustList(t *testing.T, entries ...any) *props.List {
	t.Helper()
	list := props.NewList()
	for i := 0; i+1 < len(entries); i += 2 {
		if err := list.Set(entries[i].(string), entries[i+1]); err != nil {
			t.Fatalf("set %v: %v", entries[i], err)
		}
	}
	return list
}

func TestMergeStrongestWins(t *testing.T) {
	extension := mustList(t, "extname", "SCI", "exptime", 45.0)
	primary := mustList(t, "telescop", "LSST", "exptime", 30.0, "observer", "vera")
	if err := primary.Set("telescop", "LSST", props.WithComment("telescope")); err != nil {
		t.Fatalf("comment: %v", err)
	}

	merged, err := layering.Merge(extension, primary)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	want := []string{"extname", "exptime", "telescop", "observer"}
	if diff := cmp.Diff(want, merged.OrderedNames()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	exptime, err := props.Get[float64](merged, "exptime")
	if err != nil || exptime != 45.0 {
		t.Fatalf("expected extension exptime 45, got %v (%v)", exptime, err)
	}
	if c, _ := merged.Comment("telescop"); c != "telescope" {
		t.Fatalf("expected inherited comment, got %q", c)
	}
	if primary.Len() != 3 || extension.Len() != 2 {
		t.Fatalf("inputs must not change")
	}
}

func TestMergeLeafShadowsWeakerSubtree(t *testing.T) {
	strong := mustList(t, "wcs", "none")
	weak := mustList(t, "wcs.crval1", 10.5, "wcs.crval2", -3.25, "date", "2024-01-01")

	merged, err := layering.Merge(strong, weak)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if diff := cmp.Diff([]string{"wcs", "date"}, merged.OrderedNames()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeSubtreesCombinePerName(t *testing.T) {
	strong := mustList(t, "wcs.crval1", 1.0)
	weak := mustList(t, "wcs.crval1", 2.0, "wcs.crval2", 3.0)

	merged, err := layering.Merge(strong, nil, weak)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	got := merged.ToMap()
	want := map[string]any{"wcs": map[string]any{"crval1": 1.0, "crval2": 3.0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merged map mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeNoLayers(t *testing.T) {
	merged, err := layering.Merge()
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if merged.Len() != 0 {
		t.Fatalf("expected empty list, got %d names", merged.Len())
	}
}
