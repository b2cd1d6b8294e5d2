package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-acfgen/pkg/field"
	"github.com/goliatone/go-acfgen/pkg/group"
)

// DefaultMaxDepth bounds how deep nested objects are expanded.
const DefaultMaxDepth = 8

var (
	// ErrSchemaNotFound is returned when a component schema does not exist.
	ErrSchemaNotFound = errors.New("openapi: schema not found")
	// ErrNotObject is returned when a component schema has no properties.
	ErrNotObject = errors.New("openapi: schema is not an object")
)

// Option configures an Importer.
type Option func(*Importer)

// WithLabeler overrides the label derivation.
func WithLabeler(labeler Labeler) Option {
	return func(i *Importer) {
		if labeler != nil {
			i.labeler = labeler
		}
	}
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(i *Importer) {
		if depth > 0 {
			i.maxDepth = depth
		}
	}
}

// WithReadOnly includes readOnly properties, which are skipped by default.
func WithReadOnly(include bool) Option {
	return func(i *Importer) {
		i.readOnly = include
	}
}

// Importer converts component schemas into field declarations.
type Importer struct {
	labeler  Labeler
	maxDepth int
	readOnly bool
}

// NewImporter creates an Importer.
func NewImporter(options ...Option) *Importer {
	i := &Importer{labeler: DefaultLabeler, maxDepth: DefaultMaxDepth}
	for _, opt := range options {
		if opt != nil {
			opt(i)
		}
	}
	return i
}

// Load parses and validates an OpenAPI 3 document from JSON or YAML.
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}

// SchemaNames lists the document's component schemas in sorted order.
func SchemaNames(doc *openapi3.T) []string {
	if doc == nil || doc.Components == nil {
		return nil
	}
	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fields returns the declarations for the named component schema.
func (i *Importer) Fields(doc *openapi3.T, schema string) ([]field.Field, error) {
	if doc == nil || doc.Components == nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, schema)
	}
	ref, ok := doc.Components.Schemas[schema]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, schema)
	}
	props, required := flatten(ref.Value)
	if len(props) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotObject, schema)
	}
	visiting := map[*openapi3.Schema]bool{ref.Value: true}
	return i.properties(props, required, visiting, 1), nil
}

// Group builds a field group for the named schema. The group id is the
// snake cased schema name and the title defaults to the schema title or a
// label of its name.
func (i *Importer) Group(doc *openapi3.T, schema string) (group.Group, error) {
	fields, err := i.Fields(doc, schema)
	if err != nil {
		return group.Group{}, err
	}
	value := doc.Components.Schemas[schema].Value
	title := value.Title
	if title == "" {
		title = i.labeler(schema)
	}
	g := group.Create(SnakeCase(schema), title).AddFields(fields...)
	if value.Description != "" {
		g = g.SetAttr("description", value.Description)
	}
	return g, nil
}

func (i *Importer) properties(props openapi3.Schemas, required map[string]bool, visiting map[*openapi3.Schema]bool, depth int) []field.Field {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]field.Field, 0, len(names))
	for _, name := range names {
		ref := props[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		if ref.Value.ReadOnly && !i.readOnly {
			continue
		}
		if f := i.property(name, ref.Value, visiting, depth); f != nil {
			if required[name] {
				f["required"] = 1
			}
			fields = append(fields, f)
		}
	}
	return fields
}

func (i *Importer) property(name string, schema *openapi3.Schema, visiting map[*openapi3.Schema]bool, depth int) field.Field {
	if visiting[schema] {
		return nil
	}

	f := field.Field{
		field.AttrName:  name,
		field.AttrLabel: schema.Title,
	}
	if schema.Title == "" {
		f[field.AttrLabel] = i.labeler(name)
	}
	if schema.Description != "" {
		f["instructions"] = schema.Description
	}
	if schema.Default != nil {
		f["default_value"] = schema.Default
	}

	if len(schema.Enum) > 0 {
		f[field.AttrType] = "select"
		f["choices"] = i.choices(schema.Enum)
		return f
	}

	switch schemaType(schema) {
	case openapi3.TypeBoolean:
		f[field.AttrType] = "true_false"
		f["ui"] = 1
	case openapi3.TypeInteger, openapi3.TypeNumber:
		f[field.AttrType] = "number"
		if schema.Min != nil {
			f["min"] = *schema.Min
		}
		if schema.Max != nil {
			f["max"] = *schema.Max
		}
		if schemaType(schema) == openapi3.TypeInteger {
			f["step"] = 1
		}
	case openapi3.TypeArray:
		return i.array(f, schema, visiting, depth)
	case openapi3.TypeObject:
		props, required := flatten(schema)
		if len(props) == 0 || depth >= i.maxDepth {
			f[field.AttrType] = "textarea"
			return f
		}
		visiting[schema] = true
		defer delete(visiting, schema)
		sub := i.properties(props, required, visiting, depth+1)
		if len(sub) == 0 {
			return nil
		}
		f[field.AttrType] = field.TypeGroup
		f[field.AttrSubFields] = sub
	default:
		i.stringField(f, schema)
	}
	return f
}

func (i *Importer) array(f field.Field, schema *openapi3.Schema, visiting map[*openapi3.Schema]bool, depth int) field.Field {
	if schema.Items == nil || schema.Items.Value == nil {
		f[field.AttrType] = "textarea"
		return f
	}
	items := schema.Items.Value
	if len(items.Enum) > 0 {
		f[field.AttrType] = "checkbox"
		f["choices"] = i.choices(items.Enum)
		return f
	}
	if visiting[items] || depth >= i.maxDepth {
		return nil
	}

	var sub []field.Field
	if props, required := flatten(items); len(props) > 0 {
		visiting[items] = true
		sub = i.properties(props, required, visiting, depth+1)
		delete(visiting, items)
	} else if item := i.property("value", items, visiting, depth+1); item != nil {
		sub = []field.Field{item}
	}
	if len(sub) == 0 {
		return nil
	}

	f[field.AttrType] = field.TypeRepeater
	f[field.AttrSubFields] = sub
	if schema.MinItems > 0 {
		f["min"] = schema.MinItems
	}
	if schema.MaxItems != nil {
		f["max"] = *schema.MaxItems
	}
	return f
}

func (i *Importer) stringField(f field.Field, schema *openapi3.Schema) {
	switch strings.ToLower(schema.Format) {
	case "email":
		f[field.AttrType] = "email"
	case "uri", "url":
		f[field.AttrType] = "url"
	case "date":
		f[field.AttrType] = "date_picker"
	case "date-time":
		f[field.AttrType] = "date_time_picker"
	case "time":
		f[field.AttrType] = "time_picker"
	case "password":
		f[field.AttrType] = "password"
	case "binary":
		f[field.AttrType] = field.TypeFile
	default:
		f[field.AttrType] = "text"
		if schema.MaxLength != nil && *schema.MaxLength > 255 {
			f[field.AttrType] = "textarea"
		}
	}
	if schema.MaxLength != nil {
		f["maxlength"] = *schema.MaxLength
	}
}

func (i *Importer) choices(values []any) map[string]any {
	choices := make(map[string]any, len(values))
	for _, v := range values {
		key := fmt.Sprint(v)
		choices[key] = i.labeler(key)
	}
	return choices
}

func schemaType(schema *openapi3.Schema) string {
	if schema.Type != nil {
		for _, t := range schema.Type.Slice() {
			if t != openapi3.TypeNull {
				return t
			}
		}
	}
	switch {
	case len(schema.Properties) > 0 || len(schema.AllOf) > 0:
		return openapi3.TypeObject
	case schema.Items != nil:
		return openapi3.TypeArray
	}
	return openapi3.TypeString
}

// flatten merges a schema's own properties with those of its allOf members.
func flatten(schema *openapi3.Schema) (openapi3.Schemas, map[string]bool) {
	props := openapi3.Schemas{}
	required := map[string]bool{}
	var visit func(*openapi3.Schema, int)
	visit = func(s *openapi3.Schema, depth int) {
		if s == nil || depth > DefaultMaxDepth {
			return
		}
		for _, member := range s.AllOf {
			if member != nil {
				visit(member.Value, depth+1)
			}
		}
		for name, ref := range s.Properties {
			props[name] = ref
		}
		for _, name := range s.Required {
			required[name] = true
		}
	}
	visit(schema, 0)
	return props, required
}

// SnakeCase converts a schema name such as "BlogPost" into "blog_post".
func SnakeCase(name string) string {
	return strings.ToLower(strings.ReplaceAll(DefaultLabeler(name), " ", "_"))
}
