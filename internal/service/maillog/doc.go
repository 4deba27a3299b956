// Package maillog records per-recipient send outcomes.
//
// Entries are kept newest-first. Status changes go through the
// transition graph in the domain package; OpenedAt is stamped on the
// transition into "opened" and survives any later transition.
package maillog
