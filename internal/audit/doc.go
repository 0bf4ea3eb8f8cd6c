// Package audit keeps a history of configuration loads: which constants were
// defined, in which environment and from which overlay file. Only key names
// are stored.
package audit
