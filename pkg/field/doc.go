// Package field normalizes raw ACF field declarations into the structure the
// host plugin expects. A declaration is a free-form map with a required
// `name`; normalization merges the field defaults, derives the field `key`
// from a KeyPath prefix, rewrites conditional logic references through the
// same prefix and recurses into composite types (repeater, group,
// flexible_content) so every nested field receives its own key.
//
// Keys are built structurally: a KeyPath holds the ordered segments that
// make up a prefix (group id, parent field names, layout keys) and renders
// them joined by an underscore. The conditional logic "outside" escape
// removes the last segment matching the parent composite name instead of
// rewriting the rendered key text.
//
// Conditional rules are validated strictly: a rule without a `field`
// reference fails with ErrInvalidCondition rather than resolving to the bare
// prefix.
package field
