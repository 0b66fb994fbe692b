// Package config holds the neolib runtime configuration.
//
// Values come from three layers, later ones winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. NEOLIB_* environment variables
//
// Example settings.toml:
//
//	[vector]
//	gap_size = 512
//	nearness_factor = 2
//
//	[logging]
//	level = "debug"
//	format = "json"
package config
