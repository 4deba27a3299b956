// Package kvstore provides the persistence layer for application state.
//
// All repositories read and write whole JSON documents under well-known
// keys through the Store interface. Three backends exist:
//
//   - Memory: map-backed, used in tests and as the default fallback
//   - Local: one JSON file per key under a data directory
//   - Redis: one Redis string per key, shared across instances
//
// Rules for this package:
//   - A missing key is ErrNotFound, never an empty document. Callers
//     rely on the distinction to decide whether to seed defaults.
//   - Set replaces the whole document atomically from the caller's
//     point of view. There are no partial updates.
package kvstore
