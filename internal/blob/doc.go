// Package blob stores attachment content outside the document store.
//
// Attachment metadata lives in the repositories; the bytes live behind
// an opaque content ref produced by a blob Store. Two backends exist:
// an inline data-URL encoding for small deployments with no external
// storage, and S3 for shared deployments.
package blob
