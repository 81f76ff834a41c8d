package props

// FieldDescriptor describes one ordered entry of a list.
type FieldDescriptor struct {
	Path    string `json:"path"`
	Kind    Kind   `json:"kind"`
	Array   bool   `json:"array,omitempty"`
	Count   int    `json:"count"`
	Comment string `json:"comment,omitempty"`
}

// DefaultSchemaGenerator returns the built-in descriptor-based schema generator.
func DefaultSchemaGenerator() SchemaGenerator {
	return descriptorGenerator{}
}

type descriptorGenerator struct{}

func (descriptorGenerator) Generate(list *List) (SchemaDocument, error) {
	descriptors := Describe(list)
	if descriptors == nil {
		descriptors = []FieldDescriptor{}
	}
	doc := SchemaDocument{
		Format:   SchemaFormatDescriptors,
		Document: descriptors,
	}
	if list != nil {
		doc.Label = list.Label()
	}
	return doc, nil
}

// Describe returns one descriptor per entry of list, in list order.
func Describe(list *List) []FieldDescriptor {
	if list == nil {
		return nil
	}
	var fields []FieldDescriptor
	for name, value := range list.All() {
		fields = append(fields, FieldDescriptor{
			Path:    name,
			Kind:    value.Kind(),
			Array:   value.IsArray(),
			Count:   value.Len(),
			Comment: list.comments[name],
		})
	}
	return fields
}

// Schema describes the list with the configured SchemaGenerator.
func (l *List) Schema() (SchemaDocument, error) {
	return l.cfg.generator().Generate(l)
}
