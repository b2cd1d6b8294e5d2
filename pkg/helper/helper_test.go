package helper_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-acfgen/pkg/field"
	"github.com/goliatone/go-acfgen/pkg/group"
	"github.com/goliatone/go-acfgen/pkg/helper"
	"github.com/goliatone/go-acfgen/pkg/host"
)

func TestInitialize_WithoutHostIsNoop(t *testing.T) {
	called := false
	h := helper.New().OnRegister(func(context.Context, group.Registration) error {
		called = true
		return nil
	})

	if h.Available() {
		t.Fatalf("helper without host reports availability")
	}
	if err := h.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if called {
		t.Fatalf("callback ran without a host")
	}
}

func TestInitialize_RegistersQueuedGroups(t *testing.T) {
	mem := host.NewMemory()
	h := helper.New(helper.WithHost(mem)).
		Add(group.Create("first", "First").AddFields(field.Field{"name": "a"})).
		OnRegister(func(ctx context.Context, reg group.Registration) error {
			return group.Create("second", "Second").Register(ctx, reg)
		})

	if err := h.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	groups := mem.Groups()
	if len(groups) != 2 || groups[0].Key() != "first" || groups[1].Key() != "second" {
		t.Fatalf("unexpected registration order: %v", mem.Keys())
	}
}

func TestInitialize_AppliesFilters(t *testing.T) {
	mem := host.NewMemory()
	fieldFilterCalls := 0
	h := helper.New(
		helper.WithHost(mem),
		helper.WithFieldDefaultsFilter(func(d field.Field) field.Field {
			fieldFilterCalls++
			d["placeholder"] = "..."
			return d
		}),
		helper.WithGroupDefaultsFilter(group.OverrideDefaults(map[string]any{"position": "side"})),
		helper.WithArgumentsFilter(func(args host.Arguments, g group.Group) host.Arguments {
			args["description"] = "group " + g.ID()
			return args
		}),
	).Add(
		group.Create("a", "A").AddFields(field.Field{"name": "x"}, field.Field{"name": "y"}),
		group.Create("b", "B").AddFields(field.Field{"name": "z"}),
	)

	if err := h.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if fieldFilterCalls != 1 {
		t.Fatalf("field defaults built %d times, want 1", fieldFilterCalls)
	}

	args, _ := mem.Get("b")
	if args["position"] != "side" || args["description"] != "group b" {
		t.Fatalf("group filters not applied: %#v", args)
	}
	if args.Fields()[0]["placeholder"] != "..." {
		t.Fatalf("field filter not applied: %#v", args.Fields()[0])
	}
}

func TestInitialize_StopsOnError(t *testing.T) {
	var buf bytes.Buffer
	mem := host.NewMemory()
	boom := errors.New("boom")
	ranAfter := false

	h := helper.New(helper.WithHost(mem), helper.WithLogger(zerolog.New(&buf))).
		OnRegister(func(context.Context, group.Registration) error { return boom }).
		OnRegister(func(context.Context, group.Registration) error {
			ranAfter = true
			return nil
		})

	err := h.Initialize(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if ranAfter {
		t.Fatalf("callbacks continued after a failure")
	}
	if !strings.Contains(buf.String(), "field group registration failed") {
		t.Fatalf("failure not logged: %s", buf.String())
	}
}

func TestInitialize_DuplicateGroupSurfacesHostError(t *testing.T) {
	mem := host.NewMemory()
	g := group.Create("dup", "Dup")
	h := helper.New(helper.WithHost(mem)).Add(g, g)

	if err := h.Initialize(context.Background()); !errors.Is(err, host.ErrDuplicateGroup) {
		t.Fatalf("expected ErrDuplicateGroup, got %v", err)
	}
}
