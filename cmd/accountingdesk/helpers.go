package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/AlexRiks/AccountingDesk-IA/internal/common"
	"github.com/AlexRiks/AccountingDesk-IA/internal/engine"
	"github.com/AlexRiks/AccountingDesk-IA/internal/oracle"
	"github.com/AlexRiks/AccountingDesk-IA/internal/storage"
)

// initStorage opens the SQLite database and applies pending migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "accountingdesk", "accountingdesk.db")
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("could not open database at %s", dbPath), err)
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// oracleConfig assembles oracle configuration from viper. The API key comes
// from the environment (optionally via .env), never from the config file.
func oracleConfig() oracle.Config {
	return oracle.Config{
		Provider:    viper.GetString("oracle.provider"),
		APIKey:      viper.GetString("oracle.api_key"),
		Model:       viper.GetString("oracle.model"),
		RateLimit:   viper.GetInt("oracle.rate_limit"),
		Temperature: viper.GetFloat64("oracle.temperature"),
		MaxTokens:   viper.GetInt("oracle.max_tokens"),
		Timeout:     viper.GetDuration("oracle.timeout"),
	}
}

// initEngine wires storage and the oracle into a classification engine.
// The returned closer releases the oracle client.
func initEngine(ctx context.Context, store *storage.SQLiteStorage) (*engine.Engine, func(), error) {
	cfg := oracleConfig()
	if cfg.Provider == "" {
		cfg.Provider = "gemini"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.APIKey == "" {
		return nil, nil, common.NewUserError(
			"oracle API key is not set; export ACCOUNTINGDESK_ORACLE_API_KEY or add it to .env",
			common.ErrMissingConfig)
	}

	client, err := oracle.NewClient(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create oracle client: %w", err)
	}

	classifier := oracle.NewClassifier(client, cfg, slog.Default())
	eng := engine.New(store, store, classifier, slog.Default())

	closer := func() {
		if err := classifier.Close(); err != nil {
			slog.Warn("failed to close oracle classifier", "error", err)
		}
	}

	return eng, closer, nil
}
