// Package memory is a process-local record store. All repositories built on one
// Store share a single RW lock; a transaction holds the write lock until it ends.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
)

type attendanceKey struct {
	employeeID string
	date       string
}

type attendanceRow struct {
	seq int64
	att attendance.Attendance
}

type leaveRow struct {
	seq int64
	req leave.LeaveRequest
}

type Store struct {
	mu sync.RWMutex

	seq         int64
	attendances map[attendanceKey]attendanceRow
	leaves      map[string]leaveRow

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		attendances: make(map[attendanceKey]attendanceRow),
		leaves:      make(map[string]leaveRow),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// read runs fn under the read lock unless ctx already holds the store's write lock.
func (s *Store) read(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return database.StoreError("memory store", err)
	}
	if !s.inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	return fn()
}

// write runs fn under the write lock unless ctx already holds it.
func (s *Store) write(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return database.StoreError("memory store", err)
	}
	if !s.inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn()
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

type snapshot struct {
	seq         int64
	attendances map[attendanceKey]attendanceRow
	leaves      map[string]leaveRow
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		seq:         s.seq,
		attendances: make(map[attendanceKey]attendanceRow, len(s.attendances)),
		leaves:      make(map[string]leaveRow, len(s.leaves)),
	}
	for k, v := range s.attendances {
		snap.attendances[k] = v
	}
	for k, v := range s.leaves {
		snap.leaves[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.seq = snap.seq
	s.attendances = snap.attendances
	s.leaves = snap.leaves
}

type transactor struct {
	store *Store
}

func NewTransactor(store *Store) database.Transactor {
	return &transactor{store: store}
}

// WithinTx implements database.Transactor. Writes made by fn are discarded when it
// returns an error or panics.
func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s := t.store
	if s.inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return database.StoreError("begin transaction", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	committed := false
	defer func() {
		if !committed {
			s.restore(snap)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		return err
	}
	committed = true
	return nil
}
