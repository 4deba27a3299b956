// Package recipients manages the HR contact list.
//
// Emails are unique case-insensitively across the list; the stored
// address keeps the casing the user entered. CSV import shares the
// same validation and duplicate rules as single adds.
package recipients
