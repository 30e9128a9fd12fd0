package edischema

// FactoryOptions configures a SchemaFactory. The zero value selects
// defaults for every field.
type FactoryOptions struct {
	maxTypes            int
	legacyPropertySet   bool
	supportedProperties []string
}

// NewFactoryOptions returns options with defaults.
func NewFactoryOptions() FactoryOptions {
	return FactoryOptions{}
}

// WithMaxTypes caps the number of type declarations accepted from a
// single schema document. Zero selects the default.
func (o FactoryOptions) WithMaxTypes(n int) FactoryOptions {
	o.maxTypes = n
	return o
}

// WithLegacyPropertySet makes SetProperty report failure even after a
// successful store, for compatibility with historical implementations.
func (o FactoryOptions) WithLegacyPropertySet(enabled bool) FactoryOptions {
	o.legacyPropertySet = enabled
	return o
}

// WithSupportedProperties declares the property names the factory
// accepts. The supported set is fixed once the factory is constructed.
func (o FactoryOptions) WithSupportedProperties(names ...string) FactoryOptions {
	combined := make([]string, 0, len(o.supportedProperties)+len(names))
	combined = append(combined, o.supportedProperties...)
	combined = append(combined, names...)
	o.supportedProperties = combined
	return o
}
