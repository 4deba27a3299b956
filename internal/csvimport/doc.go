// Package csvimport parses recipient CSV uploads into ordered rows and
// resolves header aliases, so exports from different trackers (Notion,
// Sheets, ATS tools) map onto the same recipient fields.
package csvimport
