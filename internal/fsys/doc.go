// Package fsys defines the file access the project model needs from its
// environment (reading file content and globbing for files) together with an
// OS backed implementation and an in-memory one for tests.
package fsys
