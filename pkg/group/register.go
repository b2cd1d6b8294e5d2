package group

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-acfgen/pkg/field"
	"github.com/goliatone/go-acfgen/pkg/host"
	"github.com/goliatone/go-acfgen/pkg/location"
)

// ErrHostUnavailable is returned by Register when no registrar was supplied.
var ErrHostUnavailable = errors.New("group: host registrar is not available")

// Registration carries everything Register needs: the host capability, the
// field defaults table built once by the caller and the optional filters.
type Registration struct {
	Host          host.Registrar
	FieldDefaults field.Defaults
	Filters       Filters
}

// DefaultAttributes returns the built-in top-level attributes.
func DefaultAttributes() map[string]any {
	return map[string]any{
		"menu_order":            0,
		"position":              "normal",
		"style":                 "default",
		"label_placement":       "top",
		"instruction_placement": "label",
		"hide_on_screen":        "",
		"active":                1,
		"description":           "",
	}
}

// Arguments normalizes the group into the structure expected by the host.
// Priority, lowest first: defaults, attributes, then key/title/fields/location.
func (g Group) Arguments(defaults field.Defaults, filters Filters) (host.Arguments, error) {
	attrs := DefaultAttributes()
	if filters.Defaults != nil {
		if out := filters.Defaults(attrs, g); out != nil {
			attrs = out
		}
	}

	locations := make([][]location.Rule, 0, len(g.locations))
	for _, loc := range g.locations {
		locations = append(locations, loc.Rules())
	}

	fields, err := field.NewNormalizer(defaults).NormalizeAll(g.fields, field.NewKeyPath(g.id), "")
	if err != nil {
		return nil, fmt.Errorf("group %s: %w", g.id, err)
	}

	args := make(host.Arguments, len(attrs)+len(g.attributes)+4)
	for key, value := range attrs {
		args[key] = value
	}
	for key, value := range g.attributes {
		args[key] = value
	}
	args[host.ArgKey] = g.id
	args[host.ArgTitle] = g.title
	args[host.ArgFields] = fields
	args[host.ArgLocation] = locations

	if filters.Arguments != nil {
		if out := filters.Arguments(args, g); out != nil {
			args = out
		}
	}
	return args, nil
}

// Register normalizes the group and hands it to the host exactly once.
func (g Group) Register(ctx context.Context, reg Registration) error {
	if reg.Host == nil {
		return ErrHostUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	args, err := g.Arguments(reg.FieldDefaults, reg.Filters)
	if err != nil {
		return err
	}
	if err := reg.Host.RegisterGroup(ctx, args); err != nil {
		return fmt.Errorf("group: register %q: %w", g.id, err)
	}
	return nil
}
