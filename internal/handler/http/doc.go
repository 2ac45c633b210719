// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and response envelopes for the
// REST API. Authentication, logging, and tracing concerns are handled at
// this layer before requests are forwarded to the service layer.
package http
