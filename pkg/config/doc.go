// Package config loads template manifests.
//
// A manifest names the template sources, exclude globs, token variables and
// the write target. Values are layered with koanf:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the manifest file, tmpl.toml or tmpl.yaml
//  3. TMPL_VAR_<NAME> environment variables, as variables.<name>
//  4. explicit overrides, usually the --var flags of the CLI
package config
