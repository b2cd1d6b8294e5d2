package helper

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-acfgen/pkg/field"
	"github.com/goliatone/go-acfgen/pkg/group"
	"github.com/goliatone/go-acfgen/pkg/host"
)

// RegisterFunc declares and registers groups. It receives the Registration
// prepared by Initialize.
type RegisterFunc func(ctx context.Context, reg group.Registration) error

// Helper collects registration callbacks and runs them against a host.
type Helper struct {
	host             host.Registrar
	logger           zerolog.Logger
	fieldFilters     []field.DefaultsFilter
	defaultsFilters  []group.DefaultsFilter
	argumentsFilters []group.ArgumentsFilter
	callbacks        []RegisterFunc
}

// New constructs a Helper applying any provided options.
func New(options ...Option) *Helper {
	h := &Helper{
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h
}

// Available reports whether a host registrar is configured.
func (h *Helper) Available() bool {
	return h.host != nil
}

// OnRegister queues a registration callback. Callbacks run in the order they
// were added.
func (h *Helper) OnRegister(fn RegisterFunc) *Helper {
	if fn != nil {
		h.callbacks = append(h.callbacks, fn)
	}
	return h
}

// Add queues groups for registration.
func (h *Helper) Add(groups ...group.Group) *Helper {
	if len(groups) == 0 {
		return h
	}
	pending := append([]group.Group(nil), groups...)
	return h.OnRegister(func(ctx context.Context, reg group.Registration) error {
		for _, g := range pending {
			if err := g.Register(ctx, reg); err != nil {
				return err
			}
		}
		return nil
	})
}

// Registration builds the registration context handed to callbacks. The
// field defaults are computed here, once.
func (h *Helper) Registration() group.Registration {
	reg := group.Registration{
		Host:          h.host,
		FieldDefaults: field.NewDefaults(h.fieldFilters...),
	}
	if len(h.defaultsFilters) > 0 {
		reg.Filters.Defaults = group.ChainDefaults(h.defaultsFilters...)
	}
	if len(h.argumentsFilters) > 0 {
		reg.Filters.Arguments = group.ChainArguments(h.argumentsFilters...)
	}
	return reg
}

// Initialize runs every queued callback. Without a host nothing happens.
func (h *Helper) Initialize(ctx context.Context) error {
	if !h.Available() {
		h.logger.Debug().Msg("no host registrar configured, skipping field group registration")
		return nil
	}

	reg := h.Registration()
	reg.Host = h.observe(reg.Host)

	for idx, callback := range h.callbacks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := callback(ctx, reg); err != nil {
			h.logger.Error().Err(err).Int("callback", idx).Msg("field group registration failed")
			return fmt.Errorf("helper: callback %d: %w", idx, err)
		}
	}
	h.logger.Debug().Int("callbacks", len(h.callbacks)).Msg("field group registration complete")
	return nil
}

func (h *Helper) observe(next host.Registrar) host.Registrar {
	return host.RegistrarFunc(func(ctx context.Context, args host.Arguments) error {
		h.logger.Debug().
			Str("group", args.Key()).
			Int("fields", len(args.Fields())).
			Msg("registering field group")
		return next.RegisterGroup(ctx, args)
	})
}
