package helper

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-acfgen/pkg/field"
	"github.com/goliatone/go-acfgen/pkg/group"
	"github.com/goliatone/go-acfgen/pkg/host"
)

// Option customises the Helper configuration.
type Option func(*Helper)

// WithHost supplies the registrar groups are handed to.
func WithHost(registrar host.Registrar) Option {
	return func(h *Helper) {
		h.host = registrar
	}
}

// WithLogger injects a zerolog logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Helper) {
		h.logger = logger
	}
}

// WithFieldDefaultsFilter registers filters applied to the field defaults
// table when it is built.
func WithFieldDefaultsFilter(filters ...field.DefaultsFilter) Option {
	return func(h *Helper) {
		h.fieldFilters = append(h.fieldFilters, filters...)
	}
}

// WithGroupDefaultsFilter registers filters applied to the default top-level
// attributes of every group.
func WithGroupDefaultsFilter(filters ...group.DefaultsFilter) Option {
	return func(h *Helper) {
		h.defaultsFilters = append(h.defaultsFilters, filters...)
	}
}

// WithArgumentsFilter registers filters applied to the final arguments of
// every group before they reach the host.
func WithArgumentsFilter(filters ...group.ArgumentsFilter) Option {
	return func(h *Helper) {
		h.argumentsFilters = append(h.argumentsFilters, filters...)
	}
}
