package field

// Field types that receive dedicated handling during normalization. Any other
// type passes through with only the generic defaults applied. A group is
// normalized like a repeater, so it requires sub_fields.
const (
	TypeText            = "text"
	TypeImage           = "image"
	TypeFile            = "file"
	TypeRepeater        = "repeater"
	TypeGroup           = "group"
	TypeFlexibleContent = "flexible_content"
)

// Attribute names read or written by the normalizer.
const (
	AttrName             = "name"
	AttrKey              = "key"
	AttrType             = "type"
	AttrLabel            = "label"
	AttrConditionalLogic = "conditional_logic"
	AttrSubFields        = "sub_fields"
	AttrLayouts          = "layouts"
	AttrReturnFormat     = "return_format"
)

// Conditional logic rule attributes.
const (
	RuleField    = "field"
	RuleOperator = "operator"
	RuleValue    = "value"
	RuleOutside  = "outside"
)

// Default values applied to conditional logic rules and file-like fields.
const (
	DefaultRuleOperator = "=="
	DefaultRuleValue    = "1"
	DefaultReturnFormat = "id"
)

// Field is a single field declaration. Before normalization it carries
// whatever the caller declared; afterwards it also holds the derived key, the
// merged defaults and normalized nested fields.
type Field map[string]any

// Rule is a normalized conditional logic rule.
type Rule map[string]any

// RuleGroup is an AND-group of rules. A field's conditional logic is a list
// of rule groups evaluated as OR.
type RuleGroup []Rule

// Layout is a flexible content layout holding its own sub fields.
type Layout map[string]any

// Name returns the caller-facing field name.
func (f Field) Name() string {
	return toString(f[AttrName])
}

// Key returns the derived key. It is empty until the field is normalized.
func (f Field) Key() string {
	return toString(f[AttrKey])
}

// Type returns the declared field type, or an empty string when unset.
func (f Field) Type() string {
	return toString(f[AttrType])
}

// SubFields returns nested fields for composite types. Values that are not a
// list of mappings yield nil.
func (f Field) SubFields() []Field {
	return fieldList(f[AttrSubFields])
}

// Layouts returns flexible content layouts.
func (f Field) Layouts() []Layout {
	items, ok := asList(f[AttrLayouts])
	if !ok {
		return nil
	}
	out := make([]Layout, 0, len(items))
	for _, item := range items {
		if m, ok := asMap(item); ok {
			out = append(out, Layout(m))
		}
	}
	return out
}

// ConditionalLogic returns the normalized rule groups. Raw declarations that
// have not gone through the normalizer return nil.
func (f Field) ConditionalLogic() []RuleGroup {
	groups, _ := f[AttrConditionalLogic].([]RuleGroup)
	return groups
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	if f == nil {
		return nil
	}
	return Field(cloneMap(f))
}

// Key returns the layout key, falling back to the layout name.
func (l Layout) Key() string {
	if key := toString(l[AttrKey]); key != "" {
		return key
	}
	return toString(l[AttrName])
}

// SubFields returns the fields declared inside the layout.
func (l Layout) SubFields() []Field {
	return fieldList(l[AttrSubFields])
}

// List converts a list of mappings, as decoded from JSON or YAML, into
// fields. Items that are not mappings are skipped.
func List(value any) []Field {
	return fieldList(value)
}

func fieldList(value any) []Field {
	items, ok := asList(value)
	if !ok {
		return nil
	}
	out := make([]Field, 0, len(items))
	for _, item := range items {
		if m, ok := asMap(item); ok {
			out = append(out, Field(m))
		}
	}
	return out
}
