// Package asxml parses the XML dialect Automation Studio uses for package,
// project and settings files: exactly one root element, an optional
// <Objects> list of typed <Object> declarations, and an
// <?AutomationStudio Version=...?> processing instruction.
package asxml
