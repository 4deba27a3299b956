// Package api exposes the application over HTTP.
//
// Routes mirror the service layer one-to-one: templates, recipients,
// attachments, logs, and the send wizard. Responses use the shared
// httputil JSON envelopes; sentinel errors from the services map onto
// 400/404/409/413/415/422 statuses in the handlers.
package api
