package field_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-acfgen/pkg/field"
)

func TestWalk_VisitsNestedFields(t *testing.T) {
	fields, err := field.NewNormalizer(field.Defaults{}).NormalizeAll([]field.Field{
		{"name": "title"},
		{
			"name":       "rows",
			"type":       "repeater",
			"sub_fields": []any{map[string]any{"name": "cell"}},
		},
		{
			"name": "blocks",
			"type": "flexible_content",
			"layouts": []any{
				map[string]any{"key": "quote", "sub_fields": []any{map[string]any{"name": "text"}}},
			},
		},
	}, field.NewKeyPath("g"), "")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	want := []string{"g_title", "g_rows", "g_rows_cell", "g_blocks", "g_blocks_quote_text"}
	if diff := cmp.Diff(want, field.Keys(fields)); diff != "" {
		t.Fatalf("walk order mismatch (-want +got):\n%s", diff)
	}

	upper := field.Walk(fields, func(f field.Field) field.Field {
		f["label"] = strings.ToUpper(f.Name())
		return f
	})
	if upper[1].SubFields()[0]["label"] != "CELL" {
		t.Fatalf("nested field not visited: %#v", upper[1].SubFields()[0])
	}
	if _, ok := fields[1].SubFields()[0]["label"]; ok {
		t.Fatalf("walk mutated its input")
	}
}

func TestWalk_DropsNilResults(t *testing.T) {
	out := field.Walk([]field.Field{{"name": "a"}, {"name": "b"}}, func(f field.Field) field.Field {
		if f.Name() == "a" {
			return nil
		}
		return f
	})
	if len(out) != 1 || out[0].Name() != "b" {
		t.Fatalf("unexpected walk result: %#v", out)
	}
}
