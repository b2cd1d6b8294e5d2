// Package sanitize cleans user-facing markup in field groups before they are
// registered. Labels, instructions and messages are rendered as HTML by the
// host, so declarations sourced from files or imports go through a
// bluemonday policy first.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-acfgen/pkg/field"
	"github.com/goliatone/go-acfgen/pkg/group"
	"github.com/goliatone/go-acfgen/pkg/host"
)

// DefaultFieldAttributes lists the field attributes cleaned by default.
var DefaultFieldAttributes = []string{"label", "instructions", "message", "prepend", "append"}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Policy returns the shared policy: user generated content rules, which keep
// basic formatting and links while dropping scripts and event handlers.
func Policy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AddTargetBlankToFullyQualifiedLinks(true)
		policy = p
	})
	return policy
}

// Sanitizer cleans selected string attributes of fields and groups.
type Sanitizer struct {
	policy     *bluemonday.Policy
	attributes []string
}

// New creates a Sanitizer. A nil policy selects Policy(); no attributes
// selects DefaultFieldAttributes.
func New(p *bluemonday.Policy, attributes ...string) *Sanitizer {
	if p == nil {
		p = Policy()
	}
	if len(attributes) == 0 {
		attributes = DefaultFieldAttributes
	}
	return &Sanitizer{policy: p, attributes: append([]string(nil), attributes...)}
}

// String cleans a single value.
func (s *Sanitizer) String(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	return s.policy.Sanitize(raw)
}

// Fields returns a cleaned copy of the field tree.
func (s *Sanitizer) Fields(fields []field.Field) []field.Field {
	return field.Walk(fields, func(f field.Field) field.Field {
		for _, attr := range s.attributes {
			if value, ok := f[attr].(string); ok {
				f[attr] = s.String(value)
			}
		}
		return f
	})
}

// Arguments is a group.ArgumentsFilter cleaning the group description and
// every field in the arguments.
func (s *Sanitizer) Arguments(args host.Arguments, _ group.Group) host.Arguments {
	out := args.Clone()
	if description, ok := out["description"].(string); ok {
		out["description"] = s.String(description)
	}
	if fields := args.Fields(); fields != nil {
		out[host.ArgFields] = s.Fields(fields)
	}
	return out
}
