package resource

import (
	"log/slog"

	httpadapter "resourced/resource/adapters/http"
	"resourced/resource/adapters/memory"
	"resourced/resource/application"
	"resourced/resource/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Cache      ports.Cache
	Publisher  ports.EventPublisher
	Clock      ports.Clock
	IDs        ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Cache:  deps.Cache,
		Events: deps.Publisher,
		Clock:  deps.Clock,
		IDs:    deps.IDs,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

// NewInMemoryModule wires the module over the memory adapters. Used by tests
// and brokerless local runs.
func NewInMemoryModule(publisher ports.EventPublisher, ids ports.IDGenerator, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Cache:      memory.NewCache(),
		Publisher:  publisher,
		Clock:      ports.SystemClock{},
		IDs:        ids,
		Logger:     logger,
	})
	module.Store = store
	return module
}
