package prompt

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-acfgen/pkg/declaration"
	"github.com/goliatone/go-acfgen/pkg/field"
	"github.com/goliatone/go-acfgen/pkg/location"
	"github.com/goliatone/go-acfgen/pkg/openapi"
)

// FieldTypes are the types offered while scaffolding. Composite types are
// left to hand editing since they need nested declarations.
var FieldTypes = []string{
	"text", "textarea", "number", "email", "url", "true_false",
	"select", "image", "file", "wysiwyg", "date_picker", "link",
}

var identifierPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateIdentifier accepts lower snake case names usable in field keys.
func ValidateIdentifier(value string) error {
	if !identifierPattern.MatchString(strings.TrimSpace(value)) {
		return fmt.Errorf("prompt: %q must be lower snake case", value)
	}
	return nil
}

// Scaffold interactively builds a single group declaration.
func Scaffold(ctx context.Context, d Driver) (declaration.GroupConfig, error) {
	if d == nil {
		return declaration.GroupConfig{}, errors.New("prompt: driver is required")
	}

	id, err := d.Input(ctx, InputConfig{Message: "Group id", Help: "Prefix of every field key", Validator: ValidateIdentifier})
	if err != nil {
		return declaration.GroupConfig{}, err
	}
	id = strings.TrimSpace(id)

	title, err := d.Input(ctx, InputConfig{Message: "Group title", Default: openapi.DefaultLabeler(id)})
	if err != nil {
		return declaration.GroupConfig{}, err
	}

	postType, err := d.Input(ctx, InputConfig{Message: "Show on post type", Default: "page"})
	if err != nil {
		return declaration.GroupConfig{}, err
	}

	cfg := declaration.GroupConfig{ID: id, Title: title}
	if postType = strings.TrimSpace(postType); postType != "" {
		cfg.LocationRules = []location.Rule{{Param: "post_type", Operator: location.DefaultOperator, Value: postType}}
	}

	for {
		f, err := scaffoldField(ctx, d)
		if err != nil {
			return declaration.GroupConfig{}, err
		}
		cfg.Fields = append(cfg.Fields, f)

		more, err := d.Confirm(ctx, ConfirmConfig{Message: "Add another field?"})
		if err != nil {
			return declaration.GroupConfig{}, err
		}
		if !more {
			break
		}
	}
	return cfg, nil
}

func scaffoldField(ctx context.Context, d Driver) (map[string]any, error) {
	name, err := d.Input(ctx, InputConfig{Message: "Field name", Validator: ValidateIdentifier})
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)

	label, err := d.Input(ctx, InputConfig{Message: "Field label", Default: openapi.DefaultLabeler(name)})
	if err != nil {
		return nil, err
	}

	idx, err := d.Select(ctx, SelectConfig{Message: "Field type", Options: FieldTypes})
	if err != nil {
		return nil, err
	}
	fieldType := field.TypeText
	if idx >= 0 && idx < len(FieldTypes) {
		fieldType = FieldTypes[idx]
	}

	required, err := d.Confirm(ctx, ConfirmConfig{Message: "Required?"})
	if err != nil {
		return nil, err
	}

	f := map[string]any{
		field.AttrName:  name,
		field.AttrLabel: label,
		field.AttrType:  fieldType,
	}
	if required {
		f["required"] = 1
	}
	return f, nil
}
