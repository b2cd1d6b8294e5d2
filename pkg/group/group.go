// Package group builds ACF field groups. A Group is an immutable value:
// every mutator returns an updated copy so declarations compose fluently:
//
//	g := group.Create("page_fields", "Page Fields").
//		AddLocationRule("post_type", "page").
//		SetAttr("label_placement", "left").
//		AddFields(field.Field{"name": "subtitle"})
//
// The group id prefixes every field key. Once content has been saved against
// a group, its id must never change or the stored values become orphaned.
package group

import (
	"github.com/goliatone/go-acfgen/pkg/field"
	"github.com/goliatone/go-acfgen/pkg/location"
)

// Group holds the declaration of a single field group.
type Group struct {
	id         string
	title      string
	attributes map[string]any
	locations  []location.Location
	fields     []field.Field
}

// Create starts a new group declaration.
func Create(id, title string) Group {
	return Group{id: id, title: title}
}

// ID returns the group id.
func (g Group) ID() string { return g.id }

// Title returns the group title.
func (g Group) Title() string { return g.title }

// Attributes returns a copy of the top-level attributes set on the group.
func (g Group) Attributes() map[string]any {
	out := make(map[string]any, len(g.attributes))
	for key, value := range g.attributes {
		out[key] = value
	}
	return out
}

// Locations returns the group locations in insertion order.
func (g Group) Locations() []location.Location {
	return append([]location.Location(nil), g.locations...)
}

// Fields returns the raw field declarations in insertion order.
func (g Group) Fields() []field.Field {
	return append([]field.Field(nil), g.fields...)
}

// AddLocationRule appends a rule to the first location, creating it when the
// group has none. Rules added this way are AND-ed together; use AddLocation
// to declare alternative (OR-ed) locations.
func (g Group) AddLocationRule(param string, value any, operator ...string) Group {
	locations := g.Locations()
	if len(locations) == 0 {
		locations = append(locations, location.New())
	}
	locations[0] = locations[0].AddRule(param, value, operator...)
	g.locations = locations
	return g
}

// AddLocation appends a fully built location.
func (g Group) AddLocation(loc location.Location) Group {
	g.locations = append(g.Locations(), loc)
	return g
}

// AddFields appends raw field declarations in order. Nothing is validated
// until the group is registered.
func (g Group) AddFields(fields ...field.Field) Group {
	g.fields = append(g.Fields(), fields...)
	return g
}

// SetAttr sets a single top-level attribute such as menu_order or style.
func (g Group) SetAttr(key string, value any) Group {
	attrs := g.Attributes()
	attrs[key] = value
	g.attributes = attrs
	return g
}

// SetAttrs merges several top-level attributes; later writes win.
func (g Group) SetAttrs(values map[string]any) Group {
	attrs := g.Attributes()
	for key, value := range values {
		attrs[key] = value
	}
	g.attributes = attrs
	return g
}
