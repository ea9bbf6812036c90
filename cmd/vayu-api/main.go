package main

import (
	"net/http"
	"os"

	httpadapter "github.com/vayuai/vayu-agent/internal/adapters/http"
	"github.com/vayuai/vayu-agent/internal/adapters/llm"
	memstore "github.com/vayuai/vayu-agent/internal/adapters/storage/memory"
	sqlitestore "github.com/vayuai/vayu-agent/internal/adapters/storage/sqlite"
	"github.com/vayuai/vayu-agent/internal/app/assistant"
	memoryapp "github.com/vayuai/vayu-agent/internal/app/memory"
	"github.com/vayuai/vayu-agent/internal/config"
	"github.com/vayuai/vayu-agent/internal/domain"
	"github.com/vayuai/vayu-agent/internal/observability"
)

func main() {
	log := observability.Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Storage: SQLite or in-memory
	var sessionStore domain.SessionStore
	var memoryStore domain.MemoryStore

	switch cfg.StorageBackend {
	case config.BackendSQLite:
		log.Info("using sqlite storage", "path", cfg.SQLitePath)
		store, err := sqlitestore.NewStore(cfg.SQLitePath)
		if err != nil {
			log.Error("failed to open sqlite store", "error", err)
			os.Exit(1)
		}
		defer store.Close()

		// 1 store, implements 2 interfaces
		sessionStore = store
		memoryStore = store

	default:
		log.Info("using in-memory storage")
		sessionStore = memstore.NewSessionStore()
		memoryStore = memstore.NewMemoryStore()
	}

	memorySvc := memoryapp.NewService(memoryStore)

	assistantSvc := assistant.NewService(
		llm.NewCanned(),
		sessionStore,
		memorySvc,
		assistant.WithLatency(cfg.ThinkingLatency),
	)
	assistantSvc.UpdateSettings(domain.Settings{
		Model:          cfg.DefaultModel,
		ResponseLength: cfg.DefaultResponseLength,
		MemoryEnabled:  cfg.DefaultMemoryEnabled,
		Theme:          cfg.DefaultTheme,
	})

	handler := httpadapter.NewServer(assistantSvc, memorySvc)

	addr := ":" + cfg.Port
	log.Info("vayu API listening", "addr", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
