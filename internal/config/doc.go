// Package config loads, validates, and defaults the TOML configuration for
// mixdown. All path fields are expanded and absolute after Load; other
// packages should never re-expand them.
package config
