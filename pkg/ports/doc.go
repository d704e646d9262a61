/*
Package ports defines the boundary interfaces of the Espalier engine.

Following Hexagonal Architecture, the core consumes these interfaces and the
adapters (memory, redis, file, http) implement them. The package also ships a
reusable contract suite so third-party store implementations can verify
compliance.
*/
package ports
