package group_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-acfgen/pkg/field"
	"github.com/goliatone/go-acfgen/pkg/group"
	"github.com/goliatone/go-acfgen/pkg/host"
	"github.com/goliatone/go-acfgen/pkg/location"
)

func pageFields() group.Group {
	return group.Create("page_fields", "Page Fields").
		AddLocationRule("post_type", "page").
		SetAttr("label_placement", "left").
		AddFields(
			field.Field{"name": "checkbox_field", "label": "Check me", "type": "true_false", "message": "Check me"},
			field.Field{
				"name":              "featured_media",
				"label":             "Featured Media",
				"type":              "url",
				"conditional_logic": []any{map[string]any{"field": "checkbox_field"}},
			},
			field.Field{
				"name":  "repeater_field",
				"label": "Repeater field",
				"type":  "repeater",
				"sub_fields": []any{
					map[string]any{"label": "Text Sub Field", "name": "text_sub_field", "type": "text"},
					map[string]any{"label": "Another Field", "name": "another_field", "type": "text"},
				},
			},
		)
}

func TestArguments_PageFields(t *testing.T) {
	args, err := pageFields().Arguments(field.Defaults{}, group.Filters{})
	if err != nil {
		t.Fatalf("arguments: %v", err)
	}

	if args.Key() != "page_fields" || args.Title() != "Page Fields" {
		t.Fatalf("unexpected key/title: %q %q", args.Key(), args.Title())
	}
	if args["label_placement"] != "left" {
		t.Fatalf("attribute did not override default: %v", args["label_placement"])
	}
	if args["style"] != "default" || args["active"] != 1 || args["menu_order"] != 0 {
		t.Fatalf("defaults missing: %#v", args)
	}

	wantLocations := [][]location.Rule{{{Param: "post_type", Operator: "==", Value: "page"}}}
	if diff := cmp.Diff(wantLocations, args["location"]); diff != "" {
		t.Fatalf("location mismatch (-want +got):\n%s", diff)
	}

	fields := args.Fields()
	wantKeys := []string{
		"page_fields_checkbox_field",
		"page_fields_featured_media",
		"page_fields_repeater_field",
		"page_fields_repeater_field_text_sub_field",
		"page_fields_repeater_field_another_field",
	}
	if diff := cmp.Diff(wantKeys, field.Keys(fields)); diff != "" {
		t.Fatalf("field keys mismatch (-want +got):\n%s", diff)
	}
	if fields[0].Type() != "true_false" {
		t.Fatalf("type changed: %q", fields[0].Type())
	}
	if _, ok := fields[0]["return_format"]; ok {
		t.Fatalf("return_format set on non-file type")
	}

	wantLogic := []field.RuleGroup{{{"field": "page_fields_checkbox_field", "operator": "==", "value": "1"}}}
	if diff := cmp.Diff(wantLogic, fields[1].ConditionalLogic()); diff != "" {
		t.Fatalf("conditional logic mismatch (-want +got):\n%s", diff)
	}
}

func TestAddLocationRule_SharesFirstLocation(t *testing.T) {
	g := group.Create("g", "G").
		AddLocationRule("post_type", "page").
		AddLocationRule("page_template", "tpl-home.php")

	locations := g.Locations()
	if len(locations) != 1 {
		t.Fatalf("expected 1 location, got %d", len(locations))
	}
	if locations[0].Len() != 2 {
		t.Fatalf("expected 2 rules, got %d", locations[0].Len())
	}
}

func TestAddLocation_ProducesOrGroups(t *testing.T) {
	g := group.Create("g", "G").
		AddLocationRule("post_type", "page").
		AddLocation(location.New().AddRule("post_type", "post").AddRule("post_format", "video")).
		AddLocation(location.New().AddRule("options_page", "site-settings"))

	args, err := g.Arguments(field.Defaults{}, group.Filters{})
	if err != nil {
		t.Fatalf("arguments: %v", err)
	}
	want := [][]location.Rule{
		{{Param: "post_type", Operator: "==", Value: "page"}},
		{{Param: "post_type", Operator: "==", Value: "post"}, {Param: "post_format", Operator: "==", Value: "video"}},
		{{Param: "options_page", Operator: "==", Value: "site-settings"}},
	}
	if diff := cmp.Diff(want, args["location"]); diff != "" {
		t.Fatalf("location mismatch (-want +got):\n%s", diff)
	}
}

func TestGroup_ValueSemantics(t *testing.T) {
	base := group.Create("g", "G").SetAttr("style", "seamless").AddLocationRule("post_type", "page")
	a := base.SetAttr("style", "default").AddLocationRule("post_status", "publish").AddFields(field.Field{"name": "a"})
	_ = base.AddFields(field.Field{"name": "b"})

	if base.Attributes()["style"] != "seamless" {
		t.Fatalf("base attributes mutated: %#v", base.Attributes())
	}
	if base.Locations()[0].Len() != 1 {
		t.Fatalf("base location mutated")
	}
	if len(base.Fields()) != 0 {
		t.Fatalf("base fields mutated: %#v", base.Fields())
	}
	if len(a.Fields()) != 1 || a.Fields()[0].Name() != "a" {
		t.Fatalf("derived fields wrong: %#v", a.Fields())
	}
}

func TestSetAttrs_LastWriteWins(t *testing.T) {
	g := group.Create("g", "G").
		SetAttrs(map[string]any{"menu_order": 5, "style": "seamless"}).
		SetAttr("menu_order", 10)

	args, err := g.Arguments(field.Defaults{}, group.Filters{})
	if err != nil {
		t.Fatalf("arguments: %v", err)
	}
	if args["menu_order"] != 10 || args["style"] != "seamless" {
		t.Fatalf("attribute merge wrong: %#v", args)
	}
}

func TestArguments_ReservedKeysWin(t *testing.T) {
	g := group.Create("real", "Real").SetAttrs(map[string]any{"key": "fake", "title": "Fake", "fields": "x"})
	args, err := g.Arguments(field.Defaults{}, group.Filters{})
	if err != nil {
		t.Fatalf("arguments: %v", err)
	}
	if args.Key() != "real" || args.Title() != "Real" || len(args.Fields()) != 0 {
		t.Fatalf("reserved keys overridden: %#v", args)
	}
}

func TestArguments_SkipsNamelessFields(t *testing.T) {
	g := group.Create("g", "G").AddFields(field.Field{"label": "orphan"}, field.Field{"name": "ok"})
	args, err := g.Arguments(field.Defaults{}, group.Filters{})
	if err != nil {
		t.Fatalf("arguments: %v", err)
	}
	if diff := cmp.Diff([]string{"g_ok"}, field.Keys(args.Fields())); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestArguments_Filters(t *testing.T) {
	var seen []string
	filters := group.Filters{
		Defaults: group.ChainDefaults(
			func(defaults map[string]any, g group.Group) map[string]any {
				seen = append(seen, "defaults:"+g.ID())
				defaults["position"] = "side"
				defaults["style"] = "seamless"
				return defaults
			},
			group.OverrideDefaults(map[string]any{"menu_order": 3}),
		),
		Arguments: group.ChainArguments(
			func(args host.Arguments, g group.Group) host.Arguments {
				seen = append(seen, "arguments:"+g.ID())
				args["description"] = "filtered"
				return args
			},
			func(host.Arguments, group.Group) host.Arguments { return nil },
		),
	}

	g := group.Create("g", "G").SetAttr("style", "default")
	args, err := g.Arguments(field.Defaults{}, filters)
	if err != nil {
		t.Fatalf("arguments: %v", err)
	}

	if args["position"] != "side" || args["menu_order"] != 3 {
		t.Fatalf("defaults filter not applied: %#v", args)
	}
	if args["style"] != "default" {
		t.Fatalf("attributes must outrank filtered defaults: %v", args["style"])
	}
	if args["description"] != "filtered" {
		t.Fatalf("arguments filter not applied: %#v", args)
	}
	if diff := cmp.Diff([]string{"defaults:g", "arguments:g"}, seen); diff != "" {
		t.Fatalf("filter order mismatch (-want +got):\n%s", diff)
	}
}

func TestArguments_FieldDefaultsPassedIn(t *testing.T) {
	defaults := field.NewDefaults(field.Override(map[string]any{"instructions": "Required"}))
	args, err := group.Create("g", "G").AddFields(field.Field{"name": "f"}).Arguments(defaults, group.Filters{})
	if err != nil {
		t.Fatalf("arguments: %v", err)
	}
	if args.Fields()[0]["instructions"] != "Required" {
		t.Fatalf("field defaults ignored: %#v", args.Fields()[0])
	}
}

func TestArguments_PropagatesNormalizationErrors(t *testing.T) {
	_, err := group.Create("g", "G").
		AddFields(field.Field{"name": "r", "type": "repeater"}).
		Arguments(field.Defaults{}, group.Filters{})
	if !errors.Is(err, field.ErrMissingSubFields) {
		t.Fatalf("expected ErrMissingSubFields, got %v", err)
	}
}

func TestRegister_CallsHostOnce(t *testing.T) {
	mem := host.NewMemory()
	calls := 0
	reg := group.Registration{
		Host: host.RegistrarFunc(func(ctx context.Context, args host.Arguments) error {
			calls++
			return mem.RegisterGroup(ctx, args)
		}),
	}

	if err := pageFields().Register(context.Background(), reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	if calls != 1 {
		t.Fatalf("host called %d times, want 1", calls)
	}
	if _, ok := mem.Get("page_fields"); !ok {
		t.Fatalf("group not collected")
	}
}

func TestRegister_Errors(t *testing.T) {
	g := pageFields()

	if err := g.Register(context.Background(), group.Registration{}); !errors.Is(err, group.ErrHostUnavailable) {
		t.Fatalf("expected ErrHostUnavailable, got %v", err)
	}

	boom := errors.New("boom")
	reg := group.Registration{Host: host.RegistrarFunc(func(context.Context, host.Arguments) error { return boom })}
	if err := g.Register(context.Background(), reg); !errors.Is(err, boom) {
		t.Fatalf("expected host error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := g.Register(ctx, group.Registration{Host: host.NewMemory()}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
