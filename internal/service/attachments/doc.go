// Package attachments manages uploaded files and their metadata.
//
// Size and MIME-type limits are enforced before anything is stored.
// The bytes live in a blob store behind an opaque content ref; only
// the metadata document goes into the kvstore.
package attachments
