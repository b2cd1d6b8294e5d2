package field

import "fmt"

// normalizeConditions converts conditional logic into a list of rule groups.
// A flat list of rules (no outer OR layer) is wrapped into a single group.
func normalizeConditions(logic any, prefix KeyPath, parent string) ([]RuleGroup, error) {
	items, ok := asList(logic)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list, got %T", ErrInvalidCondition, logic)
	}
	if len(items) == 0 {
		return nil, nil
	}
	if _, flat := asMap(items[0]); flat {
		items = []any{items}
	}

	groups := make([]RuleGroup, 0, len(items))
	for gi, rawGroup := range items {
		rules, ok := asList(rawGroup)
		if !ok {
			return nil, fmt.Errorf("%w: group %d must be a list of rules, got %T", ErrInvalidCondition, gi, rawGroup)
		}
		group := make(RuleGroup, 0, len(rules))
		for ri, rawRule := range rules {
			rule, err := normalizeRule(rawRule, prefix, parent)
			if err != nil {
				return nil, fmt.Errorf("conditional_logic[%d][%d]: %w", gi, ri, err)
			}
			group = append(group, rule)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func normalizeRule(raw any, prefix KeyPath, parent string) (Rule, error) {
	src, ok := asMap(raw)
	if !ok {
		return nil, fmt.Errorf("%w: rule must be a mapping, got %T", ErrInvalidCondition, raw)
	}
	rule := Rule(cloneMap(src))

	target := toString(rule[RuleField])
	if target == "" {
		return nil, fmt.Errorf("%w: rule does not reference a field", ErrInvalidCondition)
	}

	path := prefix
	if parent != "" && truthy(rule[RuleOutside]) {
		// Reference a sibling of the parent composite: one level up.
		path, _ = prefix.WithoutLast(parent)
	}
	rule[RuleField] = path.Key(target)

	if !isSet(rule, RuleOperator) {
		rule[RuleOperator] = DefaultRuleOperator
	}
	if !isSet(rule, RuleValue) {
		rule[RuleValue] = DefaultRuleValue
	}
	return rule, nil
}
