// Package file stores moviematch settings in a TOML file on disk.
//
// Nested tables are flattened to dot keys ("feedback.backend") on load and
// expanded again on save, so callers only ever see flat keys.
package file
