// Package templates manages the reusable email template library.
//
// Templates are stored as one JSON document in the kvstore. A fresh
// store is seeded with two starter templates; a store that has been
// written before is never re-seeded, even if the user deleted every
// template. A store read failure falls back to the starters so the
// application stays usable.
package templates
