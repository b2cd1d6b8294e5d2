package host_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-acfgen/pkg/host"
)

func TestMemory_RegisterAndLookup(t *testing.T) {
	mem := host.NewMemory()
	ctx := context.Background()

	for _, key := range []string{"b_group", "a_group"} {
		if err := mem.RegisterGroup(ctx, host.Arguments{"key": key, "title": key}); err != nil {
			t.Fatalf("register %s: %v", key, err)
		}
	}

	if diff := cmp.Diff([]string{"a_group", "b_group"}, mem.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	groups := mem.Groups()
	if len(groups) != 2 || groups[0].Key() != "b_group" {
		t.Fatalf("groups not in registration order: %#v", groups)
	}
	if args, ok := mem.Get("a_group"); !ok || args.Title() != "a_group" {
		t.Fatalf("lookup failed: %#v", args)
	}
}

func TestMemory_RejectsDuplicatesAndEmptyKeys(t *testing.T) {
	mem := host.NewMemory()
	ctx := context.Background()

	if err := mem.RegisterGroup(ctx, host.Arguments{"key": "g"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := mem.RegisterGroup(ctx, host.Arguments{"key": "g"}); !errors.Is(err, host.ErrDuplicateGroup) {
		t.Fatalf("expected ErrDuplicateGroup, got %v", err)
	}
	if err := mem.RegisterGroup(ctx, host.Arguments{}); err == nil {
		t.Fatalf("expected error for missing key")
	}
	if mem.Len() != 1 {
		t.Fatalf("len = %d, want 1", mem.Len())
	}
}

func TestMemory_ConcurrentRegistration(t *testing.T) {
	mem := host.NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = mem.RegisterGroup(ctx, host.Arguments{"key": string(rune('a' + i))})
		}(i)
	}
	wg.Wait()

	if mem.Len() != 20 {
		t.Fatalf("len = %d, want 20", mem.Len())
	}
}

func TestMulti_StopsOnFirstError(t *testing.T) {
	var calls []string
	record := func(name string, err error) host.Registrar {
		return host.RegistrarFunc(func(context.Context, host.Arguments) error {
			calls = append(calls, name)
			return err
		})
	}
	boom := errors.New("boom")

	reg := host.Multi(record("first", nil), nil, record("second", boom), record("third", nil))
	err := reg.RegisterGroup(context.Background(), host.Arguments{"key": "g"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if diff := cmp.Diff([]string{"first", "second"}, calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}
