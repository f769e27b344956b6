// Package http exposes the presentation service over a chi router.
//
// Requests are validated against the embedded OpenAPI document before they
// reach a handler. Every response carries an X-Request-ID header and failures
// use a {error, details} JSON body with a stable error kind.
package http
