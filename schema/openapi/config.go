package openapi

// Info is the OpenAPI info block of generated documents.
type Info struct {
	Title       string
	Version     string
	Description string
}

// DefaultOrderExtension is the schema extension listing properties in list
// order, since JSON objects do not keep it.
const DefaultOrderExtension = "x-order"

type generatorConfig struct {
	openAPIVersion string
	info           Info
	componentName  string
	orderKey       string
}

func defaultGeneratorConfig() generatorConfig {
	return generatorConfig{
		openAPIVersion: "3.0.3",
		info:           Info{Title: "Header Schema", Version: "1.0.0"},
		componentName:  "Header",
		orderKey:       DefaultOrderExtension,
	}
}

// GeneratorOption configures the OpenAPI generator.
type GeneratorOption func(*generatorConfig)

// WithOpenAPIVersion sets the openapi field. Empty keeps 3.0.3.
func WithOpenAPIVersion(version string) GeneratorOption {
	return func(cfg *generatorConfig) {
		if version != "" {
			cfg.openAPIVersion = version
		}
	}
}

// WithInfo replaces the non-empty fields of the info block.
func WithInfo(info Info) GeneratorOption {
	return func(cfg *generatorConfig) {
		if info.Title != "" {
			cfg.info.Title = info.Title
		}
		if info.Version != "" {
			cfg.info.Version = info.Version
		}
		if info.Description != "" {
			cfg.info.Description = info.Description
		}
	}
}

// WithComponentName names the schema under components.schemas. Empty keeps
// "Header".
func WithComponentName(name string) GeneratorOption {
	return func(cfg *generatorConfig) {
		if name != "" {
			cfg.componentName = name
		}
	}
}

// WithOrderExtension renames the order extension; an empty key omits it.
func WithOrderExtension(key string) GeneratorOption {
	return func(cfg *generatorConfig) {
		cfg.orderKey = key
	}
}
