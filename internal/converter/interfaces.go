package converter

import "context"

// Prober defines the interface for the capability probe.
type Prober interface {
	Probe(ctx context.Context) Capability
}
