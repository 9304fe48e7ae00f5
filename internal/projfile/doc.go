// Package projfile reads the Automation Studio project descriptor (*.apj)
// and the per-user settings file stored next to it.
package projfile
