package main

import (
	"path/filepath"

	"github.com/custodia-labs/zirar/internal/adapters/driven/archive"
	"github.com/custodia-labs/zirar/internal/adapters/driven/config/file"
	"github.com/custodia-labs/zirar/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/zirar/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/zirar/internal/adapters/driven/wordlist"
	"github.com/custodia-labs/zirar/internal/adapters/driving/cli"
	"github.com/custodia-labs/zirar/internal/core/ports/driven"
	"github.com/custodia-labs/zirar/internal/core/ports/driving"
	"github.com/custodia-labs/zirar/internal/core/services"
	"github.com/custodia-labs/zirar/internal/logger"
)

// bootstrap wires adapters to services for one CLI invocation.
// Failures to open the config file or history database are logged and
// fall back to in-memory stores so a run can still go ahead.
func bootstrap(configDir string) (*cli.Services, func(), error) {
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, nil, err
		}
		configDir = dir
	}
	logger.Debug("Using config directory %s", configDir)

	var configStore driven.ConfigStore
	fileStore, err := file.NewConfigStore(configDir)
	if err != nil {
		logger.Warn("Config unavailable, using defaults: %v", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = fileStore
	}
	settingsService := services.NewSettingsService(configStore)

	var (
		historyStore driven.RunHistoryStore
		release      func()
	)
	store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
	if err != nil {
		logger.Warn("History database unavailable, runs will not be kept: %v", err)
		historyStore = memory.NewRunHistoryStore()
	} else {
		historyStore = store.RunHistoryStore()
		release = func() {
			if err := store.Close(); err != nil {
				logger.Warn("Closing history database: %v", err)
			}
		}
	}

	source := wordlist.NewFileSource()
	verifier := archive.NewDefaultVerifier()

	crack := func(opts cli.CrackOptions) driving.CrackService {
		var history driven.RunHistoryStore
		if opts.RecordHistory {
			history = historyStore
		}
		return services.NewCrackService(source, archive.Throttle(verifier, opts.Rate), nil, history)
	}

	return &cli.Services{
		Crack:    crack,
		Wordlist: services.NewWordlistService(source, nil),
		History:  services.NewHistoryService(historyStore),
		Settings: settingsService,
	}, release, nil
}
