// Package workspace discovers Automation Studio projects below a set of
// root directories and answers location queries against the discovered set.
// The project set is an immutable snapshot that a re-scan replaces as a
// whole; readers never observe a partially built set.
package workspace
