// Package mailer delivers rendered emails through a pluggable
// Transport. The simulated transport is the default and never leaves
// the process; the SES transport sends real mail through AWS SES v2.
//
// Transports report per-message outcomes in the returned SendOutcome
// rather than through the error return. The error return is reserved
// for transport-level failures (client not initialized, context
// cancelled) where no delivery attempt was made.
package mailer
