// Package driving defines the inbound ports of the hexagonal
// architecture: the use-case interfaces through which adapters (CLI,
// watchers) invoke the core services.
package driving
