package declaration

import (
	"github.com/goliatone/go-acfgen/pkg/field"
	"github.com/goliatone/go-acfgen/pkg/group"
	"github.com/goliatone/go-acfgen/pkg/location"
)

// Build converts the configuration into a group builder. Location rules
// without an operator use location.DefaultOperator.
func (cfg GroupConfig) Build() group.Group {
	g := group.Create(cfg.ID, cfg.Title)
	if len(cfg.Attributes) > 0 {
		g = g.SetAttrs(cfg.Attributes)
	}
	for _, rule := range cfg.LocationRules {
		g = g.AddLocationRule(rule.Param, rule.Value, operatorOrDefault(rule.Operator))
	}
	for _, rules := range cfg.Locations {
		loc := location.New()
		for _, rule := range rules {
			loc = loc.AddRule(rule.Param, rule.Value, operatorOrDefault(rule.Operator))
		}
		g = g.AddLocation(loc)
	}
	fields := make([]field.Field, 0, len(cfg.Fields))
	for _, raw := range cfg.Fields {
		fields = append(fields, field.Field(raw))
	}
	return g.AddFields(fields...)
}

// Build converts every stored configuration into a group builder.
func (s *Store) Build() []group.Group {
	configs := s.Groups()
	out := make([]group.Group, 0, len(configs))
	for _, cfg := range configs {
		out = append(out, cfg.Build())
	}
	return out
}

// FromGroup captures a builder as a declaration. Every location is written
// to Locations so the result rebuilds into an equivalent group.
func FromGroup(g group.Group) GroupConfig {
	cfg := GroupConfig{
		ID:    g.ID(),
		Title: g.Title(),
	}
	if attrs := g.Attributes(); len(attrs) > 0 {
		cfg.Attributes = attrs
	}
	for _, loc := range g.Locations() {
		cfg.Locations = append(cfg.Locations, loc.Rules())
	}
	for _, f := range g.Fields() {
		cfg.Fields = append(cfg.Fields, map[string]any(f.Clone()))
	}
	return cfg
}

func operatorOrDefault(op string) string {
	if op == "" {
		return location.DefaultOperator
	}
	return op
}
