package openapi

import (
	"testing"
	"time"

	props "github.com/goliatone/go-props"
	"github.com/google/go-cmp/cmp"
)

func TestNewGeneratorOptions(t *testing.T) {
	custom := NewGenerator(
		WithOpenAPIVersion("3.1.0"),
		WithInfo(Info{Title: "Raw Frames", Version: "2.0.0", Description: "camera headers"}),
		WithComponentName("RawHeader"),
		WithOrderExtension("x-keyword-order"),
	)

	internal, ok := custom.(generator)
	if !ok {
		t.Fatalf("expected generator implementation, got %T", custom)
	}
	if got := internal.config.openAPIVersion; got != "3.1.0" {
		t.Fatalf("expected openapi version 3.1.0, got %q", got)
	}
	if got := internal.config.info.Title; got != "Raw Frames" {
		t.Fatalf("expected info title Raw Frames, got %q", got)
	}
	if got := internal.config.info.Description; got != "camera headers" {
		t.Fatalf("expected info description, got %q", got)
	}
	if got := internal.config.componentName; got != "RawHeader" {
		t.Fatalf("expected component name RawHeader, got %q", got)
	}
	if got := internal.config.orderKey; got != "x-keyword-order" {
		t.Fatalf("expected order key x-keyword-order, got %q", got)
	}

	defaults := NewGenerator(WithOpenAPIVersion(""), WithComponentName(""), WithInfo(Info{})).(generator)
	if diff := cmp.Diff(defaultGeneratorConfig(), defaults.config, cmp.AllowUnexported(generatorConfig{})); diff != "" {
		t.Fatalf("empty options must keep defaults (-want +got):\n%s", diff)
	}
}

func TestGenerateHeaderSchema(t *testing.T) {
	list := props.NewList(props.WithLabel("raw/1"), Option())
	steps := []struct {
		name    string
		value   any
		comment string
	}{
		{name: "SIMPLE", value: true},
		{name: "NAXIS", value: []int32{2048, 4096}, comment: "axis lengths"},
		{name: "wcs.crval1", value: 10.5},
		{name: "DATE-OBS", value: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "wcs.ctype", value: "RA---TAN", comment: "projection"},
	}
	for _, step := range steps {
		var opts []props.EntryOption
		if step.comment != "" {
			opts = append(opts, props.WithComment(step.comment))
		}
		if err := list.Set(step.name, step.value, opts...); err != nil {
			t.Fatalf("set %q: %v", step.name, err)
		}
	}

	doc, err := list.Schema()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if doc.Format != props.SchemaFormatOpenAPI || doc.Label != "raw/1" {
		t.Fatalf("unexpected document metadata: %+v", doc)
	}

	document := doc.Document.(map[string]any)
	header := document["components"].(map[string]any)["schemas"].(map[string]any)["Header"]
	want := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"SIMPLE": map[string]any{"type": "boolean"},
			"NAXIS": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "integer", "format": "int32"},
				"minItems":    2,
				"description": "axis lengths",
			},
			"wcs": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"crval1": map[string]any{"type": "number", "format": "double"},
					"ctype":  map[string]any{"type": "string", "description": "projection"},
				},
				"x-order": []string{"crval1", "ctype"},
			},
			"DATE-OBS": map[string]any{"type": "string", "format": "date-time"},
		},
		"x-order": []string{"SIMPLE", "NAXIS", "wcs", "DATE-OBS"},
	}
	if diff := cmp.Diff(want, header); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
	if document["openapi"] != "3.0.3" {
		t.Fatalf("unexpected openapi version %v", document["openapi"])
	}
}

func TestGenerateNilList(t *testing.T) {
	doc, err := NewGenerator().Generate(nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	schemas := doc.Document.(map[string]any)["components"].(map[string]any)["schemas"].(map[string]any)
	want := map[string]any{
		"type":       "object",
		"properties": map[string]any{},
		"x-order":    []string{},
	}
	if diff := cmp.Diff(want, schemas["Header"]); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateWithoutOrderExtension(t *testing.T) {
	list := props.NewList()
	if err := list.Set("wcs.crval1", 10.5); err != nil {
		t.Fatalf("set: %v", err)
	}
	doc, err := NewGenerator(WithOrderExtension("")).Generate(list)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	header := doc.Document.(map[string]any)["components"].(map[string]any)["schemas"].(map[string]any)["Header"]
	want := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"wcs": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"crval1": map[string]any{"type": "number", "format": "double"},
				},
			},
		},
	}
	if diff := cmp.Diff(want, header); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}
