package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/lifeledger/internal/achievement"
	"github.com/Veraticus/lifeledger/internal/cli"
	"github.com/Veraticus/lifeledger/internal/common"
	"github.com/Veraticus/lifeledger/internal/config"
	"github.com/Veraticus/lifeledger/internal/model"
	"github.com/Veraticus/lifeledger/internal/storage"
	"github.com/Veraticus/lifeledger/internal/tracker"
)

// openKV opens the configured storage backend.
func openKV(ctx context.Context) (storage.KV, error) {
	cfg, err := config.LoadStorageConfig()
	if err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case config.BackendMemory:
		return storage.NewMemoryStorage(), nil

	case config.BackendRedis:
		return storage.NewRedisStorage(ctx, storage.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			Prefix:   cfg.Redis.Prefix,
			DB:       cfg.Redis.DB,
		})

	default:
		store, err := storage.NewSQLiteStorage(cfg.Path)
		if err != nil {
			return nil, err
		}

		// Run migrations
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		slog.Debug("Opened ledger database", "path", store.Path())
		return store, nil
	}
}

// initTracker opens the ledger. The returned func closes the backend.
func initTracker(cmd *cobra.Command) (*tracker.Tracker, func(), error) {
	ctx := cmd.Context()
	kv, err := openKV(ctx)
	if err != nil {
		return nil, nil, common.NewUserError("could not open storage", err)
	}

	out := cmd.OutOrStdout()
	tr, err := tracker.Open(ctx, kv, tracker.WithMilestoneObserver(func(m achievement.Milestone) {
		_, _ = fmt.Fprintln(out, cli.FormatSuccess(cli.RocketIcon+" "+m.Message))
	}))
	if err != nil {
		_ = kv.Close()
		return nil, nil, common.NewUserError("could not load the ledger; restore a backup with 'lifeledger import json'", err)
	}

	return tr, func() { _ = kv.Close() }, nil
}

func parseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, common.Validationf("invalid amount %q", s)
	}
	return amount, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, common.Validationf("invalid id %q", s)
	}
	return id, nil
}

func parseTransactionType(s string) (model.TransactionType, error) {
	t := model.TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if t != model.TypeIncome && t != model.TypeExpense {
		return "", common.Validationf("type must be income or expense, got %q", s)
	}
	return t, nil
}

// reportChange prints what happened to a targeted mutation.
func reportChange(w io.Writer, changed bool, done, missing string) {
	if changed {
		_, _ = fmt.Fprintln(w, cli.FormatSuccess(done))
		return
	}
	_, _ = fmt.Fprintln(w, cli.FormatWarning(missing))
}
