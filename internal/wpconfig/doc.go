// Package wpconfig resolves the WordPress constants from environment
// variables.
//
// Resolution follows a fixed ordered policy: database credentials, site URLs
// and the eight authentication keys and salts are required; everything else
// falls back to a default or is only defined when its gate applies
// (development environment, object cache backend, multisite). A Set is
// produced once per process and is read-only afterwards.
package wpconfig
