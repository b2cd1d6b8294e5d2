// Package acfgen declares Advanced Custom Fields (ACF) field groups in Go.
//
// Groups are built with immutable builders, queued on a Helper and
// registered with a host when Initialize runs. Registration normalizes every
// field: keys are derived from the group id and the enclosing composites,
// defaults are merged and conditional logic references are resolved to full
// field keys.
//
//	h := acfgen.NewHelper(acfgen.WithHost(host.NewMemory()))
//	h.Add(acfgen.CreateGroup("page_fields", "Page Fields").
//		AddLocationRule("post_type", "page").
//		AddFields(acfgen.Field{"name": "subtitle"}))
//	err := h.Initialize(ctx)
package acfgen

import (
	"github.com/goliatone/go-acfgen/pkg/field"
	"github.com/goliatone/go-acfgen/pkg/group"
	"github.com/goliatone/go-acfgen/pkg/helper"
	"github.com/goliatone/go-acfgen/pkg/host"
	"github.com/goliatone/go-acfgen/pkg/location"
	"github.com/goliatone/go-acfgen/pkg/orchestrator"
)

// Field is a raw field declaration.
type Field = field.Field

// Group is an immutable field group builder.
type Group = group.Group

// Location is an AND-ed set of location rules.
type Location = location.Location

// Helper queues groups and registers them with a host.
type Helper = helper.Helper

// Arguments is the normalized structure handed to a host.
type Arguments = host.Arguments

// Registrar is the host capability receiving normalized groups.
type Registrar = host.Registrar

// WithHost configures the host a Helper registers with.
func WithHost(registrar host.Registrar) helper.Option {
	return helper.WithHost(registrar)
}

// NewHelper exposes the helper constructor from the top-level module.
func NewHelper(options ...helper.Option) *helper.Helper {
	return helper.New(options...)
}

// CreateGroup starts a group declaration.
func CreateGroup(id, title string) group.Group {
	return group.Create(id, title)
}

// NewLocation starts an empty location.
func NewLocation() location.Location {
	return location.New()
}

// NewOrchestrator exposes the export pipeline constructor.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}
