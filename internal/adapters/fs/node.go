package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sigil/internal/core/ports"
)

const DigesterNodeID graft.ID = "adapter.fs.digester"

func init() {
	graft.Register(graft.Node[ports.Digester]{
		ID:        DigesterNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Digester, error) {
			return NewDigester(), nil
		},
	})
}
