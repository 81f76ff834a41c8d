// Package openapi describes header lists as OpenAPI documents: the list is
// published as one object schema under components.schemas, nested by name
// segment, with comments as descriptions and list order kept in x-order.
package openapi

import (
	"strings"

	props "github.com/goliatone/go-props"
)

type generator struct {
	config generatorConfig
}

// NewGenerator constructs an OpenAPI-compatible schema generator.
func NewGenerator(opts ...GeneratorOption) props.SchemaGenerator {
	cfg := defaultGeneratorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return generator{config: cfg}
}

// Option returns a props.Option that installs the OpenAPI generator on a list.
func Option(opts ...GeneratorOption) props.Option {
	return props.WithSchemaGenerator(NewGenerator(opts...))
}

func (g generator) Generate(list *props.List) (props.SchemaDocument, error) {
	root := &schemaNode{}
	label := ""
	if list != nil {
		label = list.Label()
		for name, value := range list.All() {
			comment, _ := list.Comment(name)
			root.insert(strings.Split(name, props.Separator), value, comment)
		}
	}

	info := map[string]any{
		"title":   g.config.info.Title,
		"version": g.config.info.Version,
	}
	if g.config.info.Description != "" {
		info["description"] = g.config.info.Description
	}

	document := map[string]any{
		"openapi": g.config.openAPIVersion,
		"info":    info,
		"paths":   map[string]any{},
		"components": map[string]any{
			"schemas": map[string]any{
				g.config.componentName: root.schema(g.config.orderKey),
			},
		},
	}
	return props.SchemaDocument{
		Format:   props.SchemaFormatOpenAPI,
		Document: document,
		Label:    label,
	}, nil
}
