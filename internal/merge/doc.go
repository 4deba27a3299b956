// Package merge renders email templates by substituting {{placeholder}}
// tokens with per-recipient values.
//
// Rules for this package:
//   - Matching is case-insensitive: {{Name}} and {{name}} resolve the
//     same variable.
//   - Placeholders with no bound variable are left verbatim in the
//     output. A half-filled email is easier to catch than a silently
//     blanked one.
//   - The variable set is open. Callers can add custom keys on top of
//     the standard recipient and sender variables.
package merge
