// Package tracker is the single entry point for reading and changing the
// ledger. Every write is validated, recorded as an undoable command, fed to
// the achievement engine when it creates a transaction, and persisted.
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/lifeledger/internal/achievement"
	"github.com/Veraticus/lifeledger/internal/history"
	"github.com/Veraticus/lifeledger/internal/ledger"
	"github.com/Veraticus/lifeledger/internal/model"
	"github.com/Veraticus/lifeledger/internal/service"
	"github.com/Veraticus/lifeledger/internal/storage"
)

// Storage keys.
const (
	KeyTransactions     = "transactions"
	KeyTodos            = "todos"
	KeyAccounts         = "accounts"
	KeyCustomCategories = "customCategories"
	KeyAchievements     = "achievements"
	KeyHistory          = "history"
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now for ids, default dates and streaks.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithMilestoneObserver registers a callback for streak milestones.
func WithMilestoneObserver(fn func(achievement.Milestone)) Option {
	return func(t *Tracker) {
		t.milestoneObservers = append(t.milestoneObservers, fn)
	}
}

// Tracker owns one ledger session.
type Tracker struct {
	kv                 storage.KV
	store              *ledger.Store
	history            *history.Manager
	engine             *achievement.Engine
	now                func() time.Time
	milestoneObservers []func(achievement.Milestone)
	lastID             int64
	mu                 sync.Mutex
}

// Open loads the ledger from kv. Missing keys start empty.
func Open(ctx context.Context, kv storage.KV, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		kv:  kv,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	// Load collections
	var snap ledger.Snapshot
	loaders := []struct {
		dst any
		key string
	}{
		{key: KeyTransactions, dst: &snap.Transactions},
		{key: KeyTodos, dst: &snap.Todos},
		{key: KeyAccounts, dst: &snap.Accounts},
		{key: KeyCustomCategories, dst: &snap.CustomCategories},
	}
	for _, l := range loaders {
		if _, err := loadJSON(ctx, kv, l.key, l.dst); err != nil {
			return nil, err
		}
	}
	t.store = ledger.New(snap)

	// Load achievement state
	var state model.AchievementState
	if _, err := loadJSON(ctx, kv, KeyAchievements, &state); err != nil {
		return nil, err
	}
	engineOpts := []achievement.Option{
		achievement.WithClock(t.now),
		achievement.WithMilestoneObserver(func(m achievement.Milestone) {
			slog.Info("Streak milestone reached",
				"threshold", m.Threshold,
				"bonus", m.Bonus)
		}),
	}
	for _, fn := range t.milestoneObservers {
		engineOpts = append(engineOpts, achievement.WithMilestoneObserver(fn))
	}
	t.engine = achievement.NewEngine(state, engineOpts...)

	// Restore history
	t.history = history.NewManager(t.store)
	if err := t.restoreHistory(ctx); err != nil {
		return nil, err
	}

	t.lastID = t.maxEntityID()

	slog.Debug("Loaded ledger",
		"accounts", len(snap.Accounts),
		"transactions", len(snap.Transactions),
		"todos", len(snap.Todos),
		"undo_depth", t.history.Len())
	return t, nil
}

// restoreHistory brings back the persisted undo and redo stacks. A history
// that cannot be decoded is dropped rather than failing the whole session.
func (t *Tracker) restoreHistory(ctx context.Context) error {
	var st history.State
	found, err := loadJSON(ctx, t.kv, KeyHistory, &st)
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		slog.Warn("discarding unreadable history", "error", err)
		return nil
	case err != nil:
		return err
	case !found:
		return nil
	}
	if err := t.history.Restore(st); err != nil {
		slog.Warn("discarding invalid history", "error", err)
		t.history.Clear()
	}
	return nil
}

func loadJSON(ctx context.Context, kv storage.KV, key string, dst any) (bool, error) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// persist writes every collection, the achievement state and the history in
// one batch. Errors are returned unretried.
func (t *Tracker) persist(ctx context.Context) error {
	snap := t.store.Snapshot()
	values := map[string]any{
		KeyTransactions:     snap.Transactions,
		KeyTodos:            snap.Todos,
		KeyAccounts:         snap.Accounts,
		KeyCustomCategories: snap.CustomCategories,
		KeyAchievements:     t.engine.Snapshot(),
		KeyHistory:          t.history.State(),
	}

	entries := make(map[string][]byte, len(values))
	for key, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		entries[key] = data
	}

	if err := t.kv.SetMulti(ctx, entries); err != nil {
		return fmt.Errorf("failed to persist ledger: %w", err)
	}
	return nil
}

// nextID returns a millisecond timestamp, bumped when needed so ids stay
// strictly increasing within the session.
func (t *Tracker) nextID() int64 {
	id := t.now().UnixMilli()
	if id <= t.lastID {
		id = t.lastID + 1
	}
	t.lastID = id
	return id
}

func (t *Tracker) maxEntityID() int64 {
	var maxID int64
	for _, tx := range t.store.Transactions() {
		maxID = max(maxID, tx.ID)
	}
	for _, todo := range t.store.Todos() {
		maxID = max(maxID, todo.ID)
	}
	return maxID
}

func (t *Tracker) today() string {
	return model.FormatDate(t.now())
}

// Today returns the tracker clock's calendar date.
func (t *Tracker) Today() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.today()
}

var _ service.Ledger = (*Tracker)(nil)
