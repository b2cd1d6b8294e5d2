package declaration_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-acfgen/pkg/declaration"
	"github.com/goliatone/go-acfgen/pkg/field"
	"github.com/goliatone/go-acfgen/pkg/group"
	"github.com/goliatone/go-acfgen/pkg/location"
)

const pageFieldsYAML = `
groups:
  - id: page_fields
    title: Page Fields
    attributes:
      label_placement: left
      menu_order: 2
    location_rules:
      - {param: post_type, value: page}
    locations:
      - - {param: post_type, value: post}
        - {param: post_status, operator: "!=", value: draft}
    fields:
      - name: checkbox_field
        label: Check me
        type: true_false
      - name: featured_media
        type: url
        conditional_logic:
          - field: checkbox_field
      - name: repeater_field
        type: repeater
        sub_fields:
          - name: text_sub_field
          - name: gated
            conditional_logic:
              - field: checkbox_field
                outside: true
`

const settingsJSONC = `{
  // site wide settings
  "groups": [
    {
      "id": "site_settings",
      "title": "Site Settings",
      "location_rules": [{"param": "options_page", "value": "site-settings"}],
      "fields": [
        {"name": "logo", "type": "image"},
      ],
    },
  ],
}`

func TestLoadFS_YAMLAndJSONC(t *testing.T) {
	fsys := fstest.MapFS{
		"groups/page.yaml":         {Data: []byte(pageFieldsYAML)},
		"groups/settings.jsonc":    {Data: []byte(settingsJSONC)},
		"groups/readme.md":         {Data: []byte("not a declaration")},
		"groups/nested/empty.json": {Data: []byte(`{"groups": []}`)},
	}

	store, err := declaration.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if store.Empty() {
		t.Fatalf("expected groups")
	}

	var ids []string
	for _, cfg := range store.Groups() {
		ids = append(ids, cfg.ID)
	}
	if diff := cmp.Diff([]string{"page_fields", "site_settings"}, ids); diff != "" {
		t.Fatalf("group order mismatch (-want +got):\n%s", diff)
	}
	if got := store.Source("site_settings"); got != "groups/settings.jsonc" {
		t.Fatalf("source = %q", got)
	}

	cfg, ok := store.Group("page_fields")
	if !ok {
		t.Fatalf("page_fields missing")
	}
	wantRules := []location.Rule{{Param: "post_type", Value: "page"}}
	if diff := cmp.Diff(wantRules, cfg.LocationRules); diff != "" {
		t.Fatalf("location rules mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_MatchesGoBuilder(t *testing.T) {
	doc, err := declaration.Parse([]byte(pageFieldsYAML), "page.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	fromFile, err := doc.Groups[0].Build().Arguments(field.Defaults{}, group.Filters{})
	if err != nil {
		t.Fatalf("arguments from file: %v", err)
	}

	inCode, err := group.Create("page_fields", "Page Fields").
		SetAttrs(map[string]any{"label_placement": "left", "menu_order": 2}).
		AddLocationRule("post_type", "page").
		AddLocation(location.New().AddRule("post_type", "post").AddRule("post_status", "draft", "!=")).
		AddFields(
			field.Field{"name": "checkbox_field", "label": "Check me", "type": "true_false"},
			field.Field{"name": "featured_media", "type": "url", "conditional_logic": []any{map[string]any{"field": "checkbox_field"}}},
			field.Field{"name": "repeater_field", "type": "repeater", "sub_fields": []any{
				map[string]any{"name": "text_sub_field"},
				map[string]any{"name": "gated", "conditional_logic": []any{map[string]any{"field": "checkbox_field", "outside": true}}},
			}},
		).
		Arguments(field.Defaults{}, group.Filters{})
	if err != nil {
		t.Fatalf("arguments in code: %v", err)
	}

	if diff := cmp.Diff(inCode, fromFile); diff != "" {
		t.Fatalf("file and code declarations differ (-code +file):\n%s", diff)
	}

	gated := fromFile.Fields()[2].SubFields()[1]
	if ref := gated.ConditionalLogic()[0][0]["field"]; ref != "page_fields_checkbox_field" {
		t.Fatalf("outside reference = %q", ref)
	}
}

func TestFromGroup_RoundTrip(t *testing.T) {
	original := group.Create("g", "G").
		SetAttr("style", "seamless").
		AddLocationRule("post_type", "page").
		AddFields(field.Field{"name": "title", "type": "text"})

	data, err := declaration.Marshal(declaration.Document{Groups: []declaration.GroupConfig{declaration.FromGroup(original)}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	doc, err := declaration.Parse(data, "roundtrip.yaml")
	if err != nil {
		t.Fatalf("parse: %v\n%s", err, data)
	}

	want, _ := original.Arguments(field.Defaults{}, group.Filters{})
	got, err := doc.Groups[0].Build().Arguments(field.Defaults{}, group.Filters{})
	if err != nil {
		t.Fatalf("arguments: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"duplicate id": {
			"a.yaml": {Data: []byte("groups:\n  - id: dup\n")},
			"b.yaml": {Data: []byte("groups:\n  - id: dup\n")},
		},
		"empty id": {
			"a.yaml": {Data: []byte("groups:\n  - title: No id\n")},
		},
		"empty file": {
			"a.yaml": {Data: []byte("   \n")},
		},
		"invalid": {
			"a.json": {Data: []byte("groups: [unterminated")},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := declaration.LoadFS(fsys); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadFS_Patterns(t *testing.T) {
	fsys := fstest.MapFS{
		"acf/page.yaml":   {Data: []byte("groups:\n  - id: page\n")},
		"other/post.yaml": {Data: []byte("groups:\n  - id: post\n")},
	}
	store, err := declaration.LoadFS(fsys, "acf/**/*.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := store.Group("post"); ok {
		t.Fatalf("pattern did not filter files")
	}
	if _, ok := store.Group("page"); !ok {
		t.Fatalf("page group missing")
	}

	empty, err := declaration.LoadFS(nil)
	if err != nil || !empty.Empty() {
		t.Fatalf("nil fs should yield empty store: %v", err)
	}
}

func TestIsDeclarationFile(t *testing.T) {
	for path, want := range map[string]bool{
		"groups/page.yaml": true,
		"page.jsonc":       true,
		"notes/readme.md":  false,
	} {
		if got := declaration.IsDeclarationFile(path); got != want {
			t.Fatalf("IsDeclarationFile(%q) = %v, want %v", path, got, want)
		}
	}
	if strings.TrimSpace(declaration.DefaultPattern) == "" {
		t.Fatalf("default pattern empty")
	}
}
