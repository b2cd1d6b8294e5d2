// Package export provides host registrars that persist normalized field
// groups instead of registering them in a running WordPress install:
//
//   - JSONWriter writes one <key>.json file per group in the ACF "local JSON"
//     format, ready to drop into a theme's acf-json directory.
//   - PHPWriter renders acf_add_local_field_group() calls, either one file per
//     group or a single combined file, through an embedded pongo2 template.
//
// Both writers target an afero filesystem so callers can write to disk, to
// memory in tests, or to any other afero backend.
package export
