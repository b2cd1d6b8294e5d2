// Package openapi imports OpenAPI 3 component schemas as ACF field
// declarations. Documents are loaded with kin-openapi; each schema property
// becomes a field whose type follows the property's JSON Schema type and
// format, nested objects become group fields and arrays of objects become
// repeaters.
package openapi
