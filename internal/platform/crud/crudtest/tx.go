package crudtest

import (
	"context"
	"sync"
)

// TxRunner runs fn directly. MemStore writes made before a failing fn are
// not rolled back, so tests assert on rollback through Rollbacks only.
type TxRunner struct {
	mu        sync.Mutex
	Commits   int
	Rollbacks int
}

func (r *TxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.Rollbacks++
	} else {
		r.Commits++
	}
	return err
}
