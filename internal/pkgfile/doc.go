// Package pkgfile models Automation Studio package files (*.pkg). A package
// file declares a typed root element and a list of child objects; the role of
// the file (generic package, Physical.pkg, Config.pkg, Cpu.pkg) adds its own
// structural checks and role specific data.
//
// Values are built in one step by the Parse functions and are immutable. The
// Loader wraps them with the fail-closed contract used during workspace
// scans: a broken file is logged and reported as nil.
package pkgfile
