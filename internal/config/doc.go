// Package config loads, normalizes, and validates Sifter configuration.
//
// Configuration lives in a TOML file (default ~/.config/sifter/config.toml,
// with a project-local sifter.toml fallback). Load applies defaults, expands
// tilde paths, pulls the LLM API key from the environment when unset, and
// validates the result so downstream packages can assume a coherent config.
package config
