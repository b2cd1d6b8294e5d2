// Package location models the rules deciding where a field group is shown.
// A Location is an AND-group of rules; a field group holds several Locations
// evaluated as OR.
package location

// DefaultOperator is used when a rule is added without an operator.
const DefaultOperator = "=="

// Rule is a single (param, operator, value) condition, for example
// post_type == page.
type Rule struct {
	Param    string `json:"param" yaml:"param"`
	Operator string `json:"operator" yaml:"operator"`
	Value    any    `json:"value" yaml:"value"`
}

// Location is an ordered sequence of rules. Values are immutable: AddRule
// returns an updated copy.
type Location struct {
	rules []Rule
}

// New returns an empty Location.
func New() Location {
	return Location{}
}

// FromRules builds a Location holding the given rules in order.
func FromRules(rules ...Rule) Location {
	return Location{rules: append([]Rule(nil), rules...)}
}

// AddRule appends a rule and returns the updated Location. The operator is
// optional and defaults to DefaultOperator; when given it is used verbatim.
func (l Location) AddRule(param string, value any, operator ...string) Location {
	op := DefaultOperator
	if len(operator) > 0 {
		op = operator[0]
	}
	rules := make([]Rule, 0, len(l.rules)+1)
	rules = append(rules, l.rules...)
	rules = append(rules, Rule{Param: param, Operator: op, Value: value})
	return Location{rules: rules}
}

// Rules returns the accumulated rules in insertion order.
func (l Location) Rules() []Rule {
	return append([]Rule(nil), l.rules...)
}

// Len reports the number of rules.
func (l Location) Len() int {
	return len(l.rules)
}
