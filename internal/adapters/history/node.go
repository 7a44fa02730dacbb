package history

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sigil/internal/core/ports"
)

const NodeID graft.ID = "adapter.history"

func init() {
	graft.Register(graft.Node[ports.HistoryStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.HistoryStore, error) {
			dir, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			return NewStore(dir), nil
		},
	})
}
