package hydrate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	props "github.com/goliatone/go-props"
)

// Header is the read side of a list needed for encoding.
type Header interface {
	OrderedNames() []string
	Value(name string) (props.Value, error)
	Comment(name string) (string, error)
	HasComment(name string) bool
}

type node struct {
	key      string
	value    props.Value
	children []*node
}

func (n *node) child(key string) *node {
	for _, c := range n.children {
		if c.key == key {
			return c
		}
	}
	c := &node{key: key}
	n.children = append(n.children, c)
	return c
}

// Encode writes h as an indented JSON object. Dotted names nest in the order
// their first segment appears, and comments are collected under
// DefaultCommentsKey.
func Encode(w io.Writer, h Header) error {
	root := &node{}
	comments := map[string]string{}
	var commented []string
	for _, name := range h.OrderedNames() {
		value, err := h.Value(name)
		if err != nil {
			return fmt.Errorf("hydrate: encode %q: %w", name, err)
		}
		current := root
		for _, segment := range strings.Split(name, props.Separator) {
			current = current.child(segment)
		}
		current.value = value
		if h.HasComment(name) {
			comment, _ := h.Comment(name)
			comments[name] = comment
			commented = append(commented, name)
		}
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeChildren(&buf, root); err != nil {
		return err
	}
	if len(commented) > 0 {
		if len(root.children) > 0 {
			buf.WriteByte(',')
		}
		writeKey(&buf, DefaultCommentsKey)
		buf.WriteByte('{')
		for i, name := range commented {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeKey(&buf, name)
			raw, _ := json.Marshal(comments[name])
			buf.Write(raw)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("hydrate: indent: %w", err)
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(w)
	return err
}

func writeChildren(buf *bytes.Buffer, n *node) error {
	for i, c := range n.children {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(buf, c.key)
		if c.value == nil {
			buf.WriteByte('{')
			if err := writeChildren(buf, c); err != nil {
				return err
			}
			buf.WriteByte('}')
			continue
		}
		var payload any = c.value.Interfaces()
		if !c.value.IsArray() {
			payload = c.value.Index(0)
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("hydrate: encode %q: %w", c.key, err)
		}
		buf.Write(raw)
	}
	return nil
}

func writeKey(buf *bytes.Buffer, key string) {
	raw, _ := json.Marshal(key)
	buf.Write(raw)
	buf.WriteByte(':')
}
