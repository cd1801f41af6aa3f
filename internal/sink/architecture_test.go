package sink

import (
	"testing"

	"plantforge/testutil"
)

// TestOnlySinkPackageImportsDrivers ensures the concrete drivers stay behind
// the Sink interface: no package outside this one may import
// internal/infra/sink directly.
func TestOnlySinkPackageImportsDrivers(t *testing.T) {
	testutil.AssertImportsConfined(t, "plantforge/...",
		"plantforge/internal/infra/sink",
		"plantforge/internal/sink",
		"drivers are reached through the sink facade only")
}
