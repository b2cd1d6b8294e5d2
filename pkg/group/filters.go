package group

import "github.com/goliatone/go-acfgen/pkg/host"

// DefaultsFilter adjusts the default top-level attributes before they are
// merged into the group arguments.
type DefaultsFilter func(defaults map[string]any, g Group) map[string]any

// ArgumentsFilter adjusts the final arguments before they reach the host.
type ArgumentsFilter func(args host.Arguments, g Group) host.Arguments

// Filters bundles the optional hooks applied during registration. Nil
// filters pass values through untouched.
type Filters struct {
	Defaults  DefaultsFilter
	Arguments ArgumentsFilter
}

// ChainDefaults runs the filters in order, feeding each one the previous
// result. A filter returning nil keeps the previous value.
func ChainDefaults(filters ...DefaultsFilter) DefaultsFilter {
	return func(defaults map[string]any, g Group) map[string]any {
		for _, filter := range filters {
			if filter == nil {
				continue
			}
			if out := filter(defaults, g); out != nil {
				defaults = out
			}
		}
		return defaults
	}
}

// ChainArguments runs the filters in order, feeding each one the previous
// result. A filter returning nil keeps the previous value.
func ChainArguments(filters ...ArgumentsFilter) ArgumentsFilter {
	return func(args host.Arguments, g Group) host.Arguments {
		for _, filter := range filters {
			if filter == nil {
				continue
			}
			if out := filter(args, g); out != nil {
				args = out
			}
		}
		return args
	}
}

// OverrideDefaults returns a DefaultsFilter setting fixed values.
func OverrideDefaults(values map[string]any) DefaultsFilter {
	return func(defaults map[string]any, _ Group) map[string]any {
		for key, value := range values {
			defaults[key] = value
		}
		return defaults
	}
}
