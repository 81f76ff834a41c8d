package layering

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	props "github.com/goliatone/go-props"
)

// Recommended priorities for header inheritance. Higher numbers win.
const (
	PriorityDefaults  = 100
	PriorityPrimary   = 200
	PriorityExtension = 300
	PriorityOverride  = 400
)

var (
	// ErrLayerNameRequired indicates a layer without a name.
	ErrLayerNameRequired = errors.New("layering: name must be provided")
	// ErrDuplicateLayerName indicates several layers share a name.
	ErrDuplicateLayerName = errors.New("layering: names must be unique")
	// ErrPriorityOrder indicates two layers share a priority.
	ErrPriorityOrder = errors.New("layering: priorities must be strictly ordered")
	// ErrEmptyStack indicates a merge over no layers.
	ErrEmptyStack = errors.New("layering: stack must include at least one layer")
)

// Layer pairs a named precedence bucket with the list captured for it.
type Layer struct {
	Name       string
	Priority   int
	List       *props.List
	SnapshotID string
}

// LayerOption configures optional metadata for a layer.
type LayerOption func(*Layer)

// WithSnapshotID records the snapshot the layer was loaded from.
func WithSnapshotID(id string) LayerOption {
	return func(layer *Layer) {
		layer.SnapshotID = id
	}
}

// NewLayer builds a layer holding a deep copy of list.
func NewLayer(name string, priority int, list *props.List, opts ...LayerOption) Layer {
	layer := Layer{Name: name, Priority: priority, List: copyList(list)}
	for _, opt := range opts {
		if opt != nil {
			opt(&layer)
		}
	}
	return layer
}

// Stack is an immutable set of layers ordered strongest first.
type Stack struct {
	layers []Layer
}

// NewStack validates the layers and sorts them by descending priority.
func NewStack(layers ...Layer) (*Stack, error) {
	seen := make(map[string]struct{}, len(layers))
	copied := make([]Layer, len(layers))
	for i, layer := range layers {
		if layer.Name == "" {
			return nil, ErrLayerNameRequired
		}
		if _, ok := seen[layer.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLayerName, layer.Name)
		}
		seen[layer.Name] = struct{}{}
		copied[i] = cloneLayer(layer)
	}

	sort.Slice(copied, func(i, j int) bool {
		if copied[i].Priority == copied[j].Priority {
			return copied[i].Name < copied[j].Name
		}
		return copied[i].Priority > copied[j].Priority
	})
	for i := 1; i < len(copied); i++ {
		if copied[i-1].Priority == copied[i].Priority {
			return nil, fmt.Errorf("%w: %d", ErrPriorityOrder, copied[i].Priority)
		}
	}
	return &Stack{layers: copied}, nil
}

// Layers returns copies of the layers, strongest first.
func (s *Stack) Layers() []Layer {
	if s == nil || len(s.layers) == 0 {
		return nil
	}
	out := make([]Layer, len(s.layers))
	for i := range s.layers {
		out[i] = cloneLayer(s.layers[i])
	}
	return out
}

// Len returns the number of layers in the stack.
func (s *Stack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.layers)
}

// Merge resolves the stack into one list configured by opts.
func (s *Stack) Merge(opts ...props.Option) (*props.List, error) {
	if s.Len() == 0 {
		return nil, ErrEmptyStack
	}
	return mergeInto(props.NewList(opts...), s.lists())
}

// Trace reports how each layer answers for name, strongest first.
func (s *Stack) Trace(name string) Trace {
	trace := Trace{Name: name}
	if s == nil {
		return trace
	}
	lists := s.lists()
	for i, layer := range s.layers {
		stronger, err := mergeInto(props.NewList(), lists[:i])
		if err != nil {
			return trace
		}
		p := Provenance{
			Layer:      layer.Name,
			Priority:   layer.Priority,
			SnapshotID: layer.SnapshotID,
		}
		if v, err := layer.List.Value(name); err == nil {
			p.Found = true
			p.Value = v.String()
			p.Comment, _ = layer.List.Comment(name)
			p.Effective = !shadowed(stronger, name)
		}
		trace.Layers = append(trace.Layers, p)
	}
	return trace
}

func (s *Stack) lists() []*props.List {
	out := make([]*props.List, len(s.layers))
	for i := range s.layers {
		out[i] = s.layers[i].List
	}
	return out
}

// Trace captures which layers define a name and which one supplied the
// effective value.
type Trace struct {
	Name   string       `json:"name"`
	Layers []Provenance `json:"layers"`
}

// Provenance details how one layer contributed to a traced name.
type Provenance struct {
	Layer      string `json:"layer"`
	Priority   int    `json:"priority"`
	SnapshotID string `json:"snapshot_id,omitempty"`
	Found      bool   `json:"found"`
	Effective  bool   `json:"effective,omitempty"`
	Value      string `json:"value,omitempty"`
	Comment    string `json:"comment,omitempty"`
}

// Winner returns the layer supplying the effective value.
func (t Trace) Winner() (Provenance, bool) {
	for _, p := range t.Layers {
		if p.Effective {
			return p, true
		}
	}
	return Provenance{}, false
}

// ToJSON serialises the trace for logging or transport.
func (t Trace) ToJSON() ([]byte, error) {
	return json.Marshal(t)
}

// TraceFromJSON decodes a payload produced by ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	var trace Trace
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return trace, nil
}

func cloneLayer(layer Layer) Layer {
	layer.List = copyList(layer.List)
	return layer
}

func copyList(list *props.List) *props.List {
	if list == nil {
		return props.NewList()
	}
	return list.DeepCopy()
}
