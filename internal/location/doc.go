// Package location provides the Location value used for every file system
// path in the project model, and the pure path operations (relative paths,
// containment, prefix rewriting) the resolver is built on.
package location
