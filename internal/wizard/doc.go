// Package wizard drives the five-stage send flow: pick a template,
// pick recipients, pick attachments, preview the first merge, then
// confirm the batch send.
//
// Stages are strictly linear. Advance gates: exactly one template,
// at least one recipient, attachments optional, preview free. Going
// back never clears a later stage's selections. Confirm sends to each
// selected recipient independently and records one log entry per
// recipient; only after every outcome is recorded does the wizard
// reset to the first stage.
package wizard
