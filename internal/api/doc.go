// Package api exposes the journal over HTTP. Handlers decode and validate
// requests, run one journal command or query and map errors to status codes
// without leaking internal details.
package api
