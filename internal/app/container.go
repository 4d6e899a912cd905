// Package app assembles the dependency graph: configuration in, a running
// pipeline out.
package app

import (
	"context"

	"github.com/auraos/aibridge/internal/application/orchestrator"
	"github.com/auraos/aibridge/internal/application/session"
	"github.com/auraos/aibridge/internal/application/translate"
	"github.com/auraos/aibridge/internal/domain"
	"github.com/auraos/aibridge/internal/infrastructure/cache"
	"github.com/auraos/aibridge/internal/infrastructure/config"
	"github.com/auraos/aibridge/internal/infrastructure/executor"
	"github.com/auraos/aibridge/internal/infrastructure/history"
	"github.com/auraos/aibridge/internal/infrastructure/provider"
	"github.com/auraos/aibridge/internal/pkg/logger"
	"github.com/auraos/aibridge/internal/ports"
)

// Container wires application services with infrastructure adapters.
type Container struct {
	Config       domain.Config
	ConfigLoader *config.FileLoader
	Logger       *logger.ZapLogger
	Gateway      *provider.Gateway
	Engine       *translate.Engine
	Cache        ports.CacheStore
	History      *history.SQLiteStore
	Sessions     *session.Manager
	Orchestrator *orchestrator.Service
}

// BuildContainer constructs the dependency graph and starts the pipeline
// workers. Callers own Shutdown.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewZap(verbose)

	providers := provider.NewFactory().BuildAll(cfg.Providers)
	gateway := provider.NewGateway(cfg, providers, log)
	engine := translate.NewEngine(cfg.Engine, log)
	sessions := session.NewManager(cfg.Sessions, log)

	var cacheStore ports.CacheStore
	if cfg.Cache.Enabled {
		cacheStore = cache.NewMemoryCache(cfg.Cache)
	}

	var historyStore *history.SQLiteStore
	if cfg.History.Enabled {
		historyStore, err = history.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			log.Warn("history store unavailable", map[string]any{"path": cfg.History.Path})
			historyStore = nil
		}
	}

	deps := orchestrator.Deps{
		Gateway:    gateway,
		Translator: engine,
		Executor:   executor.NewEchoExecutor(),
		Cache:      cacheStore,
		Sessions:   sessions,
		Logger:     log,
	}
	if historyStore != nil {
		deps.History = historyStore
	}
	pipeline := orchestrator.NewService(cfg.Pipeline, deps)
	pipeline.Start()

	return &Container{
		Config:       cfg,
		ConfigLoader: cfgLoader,
		Logger:       log,
		Gateway:      gateway,
		Engine:       engine,
		Cache:        cacheStore,
		History:      historyStore,
		Sessions:     sessions,
		Orchestrator: pipeline,
	}, nil
}

// Shutdown drains the pipeline and releases resources.
func (c *Container) Shutdown() {
	c.Orchestrator.Stop()
	if c.History != nil {
		c.History.Close()
	}
	c.Logger.Sync()
}
