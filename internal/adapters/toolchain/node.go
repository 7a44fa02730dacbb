package toolchain

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sigil/internal/adapters/logger"
	"go.trai.ch/sigil/internal/adapters/shell"
	"go.trai.ch/sigil/internal/core/ports"
)

const NodeID graft.ID = "adapter.toolchain"

func init() {
	graft.Register(graft.Node[*Selector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Selector, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewSelector(executor, log), nil
		},
	})
}
