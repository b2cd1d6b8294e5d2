package field

import (
	"fmt"
	"strings"
)

// Normalizer prepares raw declarations for registration using a fixed
// defaults table.
type Normalizer struct {
	defaults Defaults
}

// NewNormalizer creates a Normalizer merging the supplied defaults.
func NewNormalizer(defaults Defaults) Normalizer {
	return Normalizer{defaults: defaults}
}

// NormalizeAll normalizes every declaration under prefix. Declarations
// without a name are skipped.
func (n Normalizer) NormalizeAll(fields []Field, prefix KeyPath, parent string) ([]Field, error) {
	out := make([]Field, 0, len(fields))
	for _, raw := range fields {
		if raw.Name() == "" {
			continue
		}
		normalized, err := n.Normalize(raw, prefix, parent)
		if err != nil {
			return nil, err
		}
		out = append(out, normalized)
	}
	return out, nil
}

// Normalize merges the defaults into raw, derives its key from prefix and
// normalizes conditional logic and nested fields. parent names the enclosing
// repeater (or group) and enables the "outside" escape for conditions; it is
// empty for top-level fields and flexible content layouts.
func (n Normalizer) Normalize(raw Field, prefix KeyPath, parent string) (Field, error) {
	field := n.defaults.Table()
	for key, value := range raw {
		field[key] = cloneValue(value)
	}

	name := raw.Name()
	key := prefix.Key(name)
	field[AttrKey] = key

	if logic := field[AttrConditionalLogic]; truthy(logic) {
		groups, err := normalizeConditions(logic, prefix, parent)
		if err != nil {
			return nil, wrapFieldError(key, err)
		}
		field[AttrConditionalLogic] = groups
	}

	switch field.Type() {
	case TypeImage, TypeFile:
		if !isSet(field, AttrReturnFormat) {
			field[AttrReturnFormat] = DefaultReturnFormat
		}

	case TypeRepeater, TypeGroup:
		subFields, err := n.nested(field[AttrSubFields], prefix.Child(name), name)
		if err != nil {
			return nil, wrapFieldError(key, err)
		}
		field[AttrSubFields] = subFields

	case TypeFlexibleContent:
		layouts, err := n.layouts(field[AttrLayouts], prefix.Child(name))
		if err != nil {
			return nil, wrapFieldError(key, err)
		}
		field[AttrLayouts] = layouts
	}

	return field, nil
}

func (n Normalizer) nested(value any, prefix KeyPath, parent string) ([]Field, error) {
	if value == nil {
		return nil, ErrMissingSubFields
	}
	items, ok := asList(value)
	if !ok {
		return nil, fmt.Errorf("%w: sub_fields must be a list, got %T", ErrMissingSubFields, value)
	}

	fields := make([]Field, 0, len(items))
	for idx, item := range items {
		m, ok := asMap(item)
		if !ok {
			return nil, fmt.Errorf("%w: sub_fields[%d] is %T", ErrInvalidDeclaration, idx, item)
		}
		fields = append(fields, Field(m))
	}
	return n.NormalizeAll(fields, prefix, parent)
}

func (n Normalizer) layouts(value any, fieldPath KeyPath) ([]Layout, error) {
	if value == nil {
		return nil, ErrMissingLayouts
	}
	items, ok := asList(value)
	if !ok {
		return nil, fmt.Errorf("%w: layouts must be a list, got %T", ErrMissingLayouts, value)
	}

	layouts := make([]Layout, 0, len(items))
	for idx, item := range items {
		m, ok := asMap(item)
		if !ok {
			return nil, fmt.Errorf("%w: layouts[%d] is %T", ErrInvalidDeclaration, idx, item)
		}
		layout := Layout(cloneMap(m))
		layoutKey := layout.Key()
		if strings.TrimSpace(layoutKey) == "" {
			return nil, fmt.Errorf("%w: layouts[%d]", ErrMissingLayoutKey, idx)
		}

		// Layout prefixes are lower-cased as a whole, group id included.
		subFields, err := n.nested(layout[AttrSubFields], fieldPath.Child(layoutKey).Lower(), "")
		if err != nil {
			return nil, fmt.Errorf("layout %s: %w", layoutKey, err)
		}
		layout[AttrSubFields] = subFields
		layouts = append(layouts, layout)
	}
	return layouts, nil
}
