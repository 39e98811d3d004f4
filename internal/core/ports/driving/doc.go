// Package driving provides interfaces for use cases exposed to the CLI
// (primary/inbound ports).
package driving
