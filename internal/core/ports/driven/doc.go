// Package driven defines the outbound ports of the hexagonal
// architecture: interfaces the core services depend on, implemented by
// adapters (parsers, storage, configuration).
//
// Core services call these interfaces; adapters implement them. The
// direction of dependency always points inward to the core.
package driven
