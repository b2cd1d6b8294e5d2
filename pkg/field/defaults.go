package field

// DefaultsFilter receives the field defaults table and returns the table to
// use. Filters run once, when a Defaults value is constructed.
type DefaultsFilter func(defaults Field) Field

// Defaults is the immutable table of values merged under every field
// declaration. The zero value holds BaseDefaults.
type Defaults struct {
	table Field
}

// BaseDefaults returns a fresh copy of the built-in field defaults.
func BaseDefaults() Field {
	return Field{
		AttrType:             TypeText,
		"instructions":       "",
		"required":           0,
		AttrConditionalLogic: 0,
		"default_value":      "",
		"placeholder":        "",
		"wrapper": map[string]any{
			"width": "",
		},
	}
}

// NewDefaults builds the defaults table, passing it through each filter in
// order. A filter returning nil leaves the table unchanged.
func NewDefaults(filters ...DefaultsFilter) Defaults {
	table := BaseDefaults()
	for _, filter := range filters {
		if filter == nil {
			continue
		}
		if out := filter(table.Clone()); out != nil {
			table = out
		}
	}
	return Defaults{table: table.Clone()}
}

// Table returns a deep copy of the defaults so callers can merge into it
// without affecting other fields.
func (d Defaults) Table() Field {
	if d.table == nil {
		return BaseDefaults()
	}
	return d.table.Clone()
}

// Override returns a filter that sets the given values on top of the
// defaults. Useful for wiring configuration-provided overrides.
func Override(values map[string]any) DefaultsFilter {
	return func(defaults Field) Field {
		for key, value := range values {
			defaults[key] = cloneValue(value)
		}
		return defaults
	}
}
