package location_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-acfgen/pkg/location"
)

func TestLocation_AddRule(t *testing.T) {
	loc := location.New().
		AddRule("post_type", "page").
		AddRule("page_template", "default", "!=").
		AddRule("post_status", "draft", "")

	want := []location.Rule{
		{Param: "post_type", Operator: "==", Value: "page"},
		{Param: "page_template", Operator: "!=", Value: "default"},
		{Param: "post_status", Operator: "", Value: "draft"},
	}
	if diff := cmp.Diff(want, loc.Rules()); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
}

func TestLocation_ValueSemantics(t *testing.T) {
	base := location.New().AddRule("post_type", "page")
	a := base.AddRule("a", 1)
	b := base.AddRule("b", 2)

	if base.Len() != 1 {
		t.Fatalf("base mutated: %d rules", base.Len())
	}
	if a.Rules()[1].Param != "a" || b.Rules()[1].Param != "b" {
		t.Fatalf("derived locations alias each other: %#v %#v", a.Rules(), b.Rules())
	}

	rules := a.Rules()
	rules[0].Param = "changed"
	if a.Rules()[0].Param != "post_type" {
		t.Fatalf("Rules exposed internal storage")
	}
}

func TestFromRules(t *testing.T) {
	loc := location.FromRules(location.Rule{Param: "user_role", Operator: "==", Value: "administrator"})
	if loc.Len() != 1 || loc.Rules()[0].Value != "administrator" {
		t.Fatalf("unexpected location: %#v", loc.Rules())
	}
}
