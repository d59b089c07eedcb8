// Package types defines the core data model shared by tmpl's packages:
// template sources, resolved files and the FS abstraction they are read
// through.
package types
