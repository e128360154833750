// Package config loads, normalizes, and validates bidsify configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and pads subject keys in the override table so
// downstream code always sees canonical two-digit identifiers. Obtain settings
// through this package so the converter receives sanitized paths, canonical
// discovery patterns, and clear validation errors.
package config
