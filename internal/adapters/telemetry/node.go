package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sigil/internal/core/ports"
)

// TracerNodeID identifies the tracer in the object graph.
const TracerNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			return NewOTelTracer("sigil"), nil
		},
	})
}
