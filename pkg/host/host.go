// Package host defines the seam between go-acfgen and the plugin that
// actually registers field groups. The core only talks to a Registrar; the
// surrounding application decides whether one is available at all.
package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-acfgen/pkg/field"
)

// Argument names written by group registration.
const (
	ArgKey      = "key"
	ArgTitle    = "title"
	ArgFields   = "fields"
	ArgLocation = "location"
)

// Arguments is the structure handed to the host registration entry point
// (acf_add_local_field_group in WordPress).
type Arguments map[string]any

// Key returns the group key.
func (a Arguments) Key() string {
	key, _ := a[ArgKey].(string)
	return key
}

// Title returns the group title.
func (a Arguments) Title() string {
	title, _ := a[ArgTitle].(string)
	return title
}

// Fields returns the normalized fields. Arguments decoded from JSON hold
// plain lists of maps and are converted.
func (a Arguments) Fields() []field.Field {
	if fields, ok := a[ArgFields].([]field.Field); ok {
		return fields
	}
	return field.List(a[ArgFields])
}

// Clone returns a shallow copy of the arguments map.
func (a Arguments) Clone() Arguments {
	out := make(Arguments, len(a))
	for key, value := range a {
		out[key] = value
	}
	return out
}

// Registrar registers a single field group with the host.
type Registrar interface {
	RegisterGroup(ctx context.Context, args Arguments) error
}

// RegistrarFunc adapts a function into a Registrar.
type RegistrarFunc func(ctx context.Context, args Arguments) error

// RegisterGroup delegates to the underlying function.
func (fn RegistrarFunc) RegisterGroup(ctx context.Context, args Arguments) error {
	return fn(ctx, args)
}

// Multi fans a registration out to every registrar in order, stopping at the
// first failure. Nil registrars are ignored.
func Multi(registrars ...Registrar) Registrar {
	targets := make([]Registrar, 0, len(registrars))
	for _, r := range registrars {
		if r != nil {
			targets = append(targets, r)
		}
	}
	return RegistrarFunc(func(ctx context.Context, args Arguments) error {
		for idx, target := range targets {
			if err := target.RegisterGroup(ctx, args); err != nil {
				return fmt.Errorf("host: registrar %d: %w", idx, err)
			}
		}
		return nil
	})
}

// ErrDuplicateGroup is returned by Memory when a key is registered twice.
var ErrDuplicateGroup = errors.New("host: group already registered")
