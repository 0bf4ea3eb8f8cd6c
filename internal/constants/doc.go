// Package constants serves a resolved configuration set over HTTP so that
// the host platform and operators can read it. Everything except /health
// requires a bearer token; secrets are masked unless the token carries the
// reveal claim.
package constants
