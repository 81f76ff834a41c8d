package openapi

import (
	props "github.com/goliatone/go-props"
)

type schemaNode struct {
	key      string
	value    props.Value
	comment  string
	children []*schemaNode
}

func (n *schemaNode) insert(segments []string, value props.Value, comment string) {
	current := n
	for _, segment := range segments {
		current = current.child(segment)
	}
	current.value = value
	current.comment = comment
}

func (n *schemaNode) child(key string) *schemaNode {
	for _, c := range n.children {
		if c.key == key {
			return c
		}
	}
	c := &schemaNode{key: key}
	n.children = append(n.children, c)
	return c
}

func (n *schemaNode) schema(orderKey string) map[string]any {
	if n.value != nil {
		out := scalarSchema(n.value.Kind())
		if n.value.IsArray() {
			out = map[string]any{
				"type":     "array",
				"items":    out,
				"minItems": n.value.Len(),
			}
		}
		if n.comment != "" {
			out["description"] = n.comment
		}
		return out
	}

	properties := make(map[string]any, len(n.children))
	order := make([]string, 0, len(n.children))
	for _, c := range n.children {
		properties[c.key] = c.schema(orderKey)
		order = append(order, c.key)
	}
	out := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if orderKey != "" {
		out[orderKey] = order
	}
	return out
}

func scalarSchema(kind props.Kind) map[string]any {
	switch kind {
	case props.KindBool:
		return map[string]any{"type": "boolean"}
	case props.KindInt8, props.KindInt16, props.KindInt32:
		return map[string]any{"type": "integer", "format": "int32"}
	case props.KindInt, props.KindInt64:
		return map[string]any{"type": "integer", "format": "int64"}
	case props.KindUint32, props.KindUint64:
		return map[string]any{"type": "integer", "format": "int64", "minimum": 0}
	case props.KindFloat32:
		return map[string]any{"type": "number", "format": "float"}
	case props.KindFloat64:
		return map[string]any{"type": "number", "format": "double"}
	case props.KindBytes:
		return map[string]any{"type": "string", "format": "byte"}
	case props.KindTime:
		return map[string]any{"type": "string", "format": "date-time"}
	default:
		return map[string]any{"type": "string"}
	}
}
