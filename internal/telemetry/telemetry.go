// Package telemetry holds the module's one package-level logger: internal
// diagnostics (catalogue load warnings, daemon registration, combat table
// selection) distinct from player-facing prose, which never goes through
// it and instead flows through a session's output buffer.
//
// Log is a no-op logger until Configure installs a real one, so packages
// that import telemetry never need a nil check.
package telemetry

import "go.uber.org/zap"

var Log = zap.NewNop().Sugar()

// Configure installs l as the package-level logger. cmd/grue calls this
// once at startup; tests leave the no-op logger in place.
func Configure(l *zap.SugaredLogger) {
	if l != nil {
		Log = l
	}
}
