package espalier

// Version is the library version reported by the CLI. Overridden at build
// time via -ldflags for release builds.
var Version = "0.1.0-dev"
