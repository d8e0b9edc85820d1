// Package txn runs state changes one at a time inside a database transaction.
package txn

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Hooks collects callbacks that run only after the surrounding transaction commits.
type Hooks struct {
	after []func()
}

// AfterCommit registers fn to run after a successful commit. Rolled back work never runs it.
func (h *Hooks) AfterCommit(fn func()) {
	if h == nil || fn == nil {
		return
	}
	h.after = append(h.after, fn)
}

// Executor serializes every state-changing operation. Each Run is atomic: either all of
// its writes commit or none do.
type Executor struct {
	DB *gorm.DB
	mu sync.Mutex
}

func NewExecutor(db *gorm.DB) *Executor {
	return &Executor{DB: db}
}

// Run executes fn in a transaction under the executor lock.
func (e *Executor) Run(ctx context.Context, fn func(tx *gorm.DB, hooks *Hooks) error) error {
	e.mu.Lock()
	hooks := &Hooks{}
	err := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, hooks)
	})
	e.mu.Unlock()
	if err != nil {
		return err
	}
	for _, f := range hooks.after {
		runHook(f)
	}
	return nil
}

func runHook(f func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("after-commit hook panicked")
		}
	}()
	f()
}
