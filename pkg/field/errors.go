package field

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSubFields is returned when a repeater, group or flexible
	// content layout does not declare sub_fields.
	ErrMissingSubFields = errors.New("field: composite field is missing sub_fields")
	// ErrMissingLayouts is returned when a flexible content field does not
	// declare layouts.
	ErrMissingLayouts = errors.New("field: flexible content is missing layouts")
	// ErrMissingLayoutKey is returned when a layout has neither a key nor a name.
	ErrMissingLayoutKey = errors.New("field: layout is missing a key")
	// ErrInvalidDeclaration is returned when a nested declaration is not a mapping.
	ErrInvalidDeclaration = errors.New("field: declaration must be a mapping")
	// ErrInvalidCondition is returned for conditional logic that cannot be
	// normalized.
	ErrInvalidCondition = errors.New("field: invalid conditional logic")
)

// FieldError reports a normalization failure together with the key of the
// field that caused it.
type FieldError struct {
	Key string
	Err error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Key, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func wrapFieldError(key string, err error) error {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return err
	}
	return &FieldError{Key: key, Err: err}
}
