// Package driving defines the interfaces through which the outside
// world drives the core (primary/inbound ports). Request handlers and
// CLI commands call these; services implement them.
package driving
