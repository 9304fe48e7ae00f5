// Package buildcfg turns the build settings of a CPU configuration into
// values a C toolchain or language server can consume.
package buildcfg
