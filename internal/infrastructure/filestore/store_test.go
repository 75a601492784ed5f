package filestore

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID      uint32
	Balance int64
	Name    [16]byte
}

func newTestStore(t *testing.T) *Store[testRecord] {
	t.Helper()
	store, err := Open[testRecord](t.TempDir(), "test.db")
	require.NoError(t, err)
	return store
}

func TestStoreAppendAndFind(t *testing.T) {
	store := newTestStore(t)

	seq, err := store.Append(&testRecord{ID: 1, Balance: 100}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)

	seq, err = store.Append(&testRecord{ID: 2, Balance: 200}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), seq)

	rec, err := store.Find(func(r *testRecord) bool { return r.ID == 2 })
	require.NoError(t, err)
	assert.Equal(t, int64(200), rec.Balance)

	_, err = store.Find(func(r *testRecord) bool { return r.ID == 99 })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreAppendAssignsSequence(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		_, err := store.Append(&testRecord{}, func(r *testRecord, seq uint64) {
			r.ID = uint32(seq)
		})
		require.NoError(t, err)
	}

	rec, err := store.Find(func(r *testRecord) bool { return r.ID == 3 })
	require.NoError(t, err)
	assert.Equal(t, uint32(3), rec.ID)
}

func TestStoreCountOnMissingFile(t *testing.T) {
	store := newTestStore(t)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestStoreScanOrderAndEarlyStop(t *testing.T) {
	store := newTestStore(t)
	for i := uint32(1); i <= 5; i++ {
		_, err := store.Append(&testRecord{ID: i}, nil)
		require.NoError(t, err)
	}

	var seen []uint32
	err := store.Scan(func(r *testRecord) bool {
		seen = append(seen, r.ID)
		return r.ID < 3
	})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, seen)
}

func TestStoreOverwriteInsertsThenUpdates(t *testing.T) {
	store := newTestStore(t)

	err := store.Overwrite(func(r *testRecord) bool { return r.ID == 7 }, &testRecord{ID: 7, Balance: 10})
	require.NoError(t, err)

	err = store.Overwrite(func(r *testRecord) bool { return r.ID == 7 }, &testRecord{ID: 7, Balance: 99})
	require.NoError(t, err)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	rec, err := store.Find(func(r *testRecord) bool { return r.ID == 7 })
	require.NoError(t, err)
	assert.Equal(t, int64(99), rec.Balance)
}

func TestStoreUpdateEach(t *testing.T) {
	store := newTestStore(t)
	for i := uint32(1); i <= 4; i++ {
		_, err := store.Append(&testRecord{ID: i, Balance: int64(i)}, nil)
		require.NoError(t, err)
	}

	n, err := store.UpdateEach(func(r *testRecord) bool {
		if r.Balance%2 == 0 {
			r.Balance *= 10
			return true
		}
		return false
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rec, err := store.Find(func(r *testRecord) bool { return r.ID == 4 })
	require.NoError(t, err)
	assert.Equal(t, int64(40), rec.Balance)
	rec, err = store.Find(func(r *testRecord) bool { return r.ID == 3 })
	require.NoError(t, err)
	assert.Equal(t, int64(3), rec.Balance)
}

func TestAtomicUpdateCommitAndAbort(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Append(&testRecord{ID: 1, Balance: 100}, nil)
	require.NoError(t, err)

	err = store.AtomicUpdate(
		func(r *testRecord) bool { return r.ID == 1 },
		func(r *testRecord) (bool, error) {
			r.Balance -= 60
			return true, nil
		},
	)
	require.NoError(t, err)

	err = store.AtomicUpdate(
		func(r *testRecord) bool { return r.ID == 1 },
		func(r *testRecord) (bool, error) {
			r.Balance -= 60 // would go negative; abort keeps the file untouched
			return false, nil
		},
	)
	require.NoError(t, err)

	rec, err := store.Find(func(r *testRecord) bool { return r.ID == 1 })
	require.NoError(t, err)
	assert.Equal(t, int64(40), rec.Balance)
}

func TestAtomicUpdateMissingRecord(t *testing.T) {
	store := newTestStore(t)

	err := store.AtomicUpdate(
		func(r *testRecord) bool { return r.ID == 1 },
		func(r *testRecord) (bool, error) { return true, nil },
	)
	assert.ErrorIs(t, err, ErrNotFound)
}

// Two concurrent conditional withdrawals of 60 from a balance of 100: the
// record lock serializes them, so exactly one commits.
func TestAtomicUpdateConcurrentWithdrawals(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Append(&testRecord{ID: 1, Balance: 100}, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan bool, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			committed := false
			err := store.AtomicUpdate(
				func(r *testRecord) bool { return r.ID == 1 },
				func(r *testRecord) (bool, error) {
					if r.Balance < 60 {
						return false, nil
					}
					r.Balance -= 60
					committed = true
					return true, nil
				},
			)
			assert.NoError(t, err)
			results <- committed
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for ok := range results {
		if ok {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	rec, err := store.Find(func(r *testRecord) bool { return r.ID == 1 })
	require.NoError(t, err)
	assert.Equal(t, int64(40), rec.Balance)
}

// Many concurrent increments over the same record must all land: lost
// updates would show as a short total.
func TestAtomicUpdateNoLostIncrements(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Append(&testRecord{ID: 1, Balance: 0}, nil)
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.AtomicUpdate(
				func(r *testRecord) bool { return r.ID == 1 },
				func(r *testRecord) (bool, error) {
					r.Balance++
					return true, nil
				},
			)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rec, err := store.Find(func(r *testRecord) bool { return r.ID == 1 })
	require.NoError(t, err)
	assert.Equal(t, int64(workers), rec.Balance)
}

// Updates to different records must proceed independently; this mostly
// guards against accidentally holding the whole-file lock across mutators.
func TestAtomicUpdateDifferentRecordsInParallel(t *testing.T) {
	store := newTestStore(t)
	for i := uint32(1); i <= 8; i++ {
		_, err := store.Append(&testRecord{ID: i}, nil)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := uint32(1); i <= 8; i++ {
		id := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				err := store.AtomicUpdate(
					func(r *testRecord) bool { return r.ID == id },
					func(r *testRecord) (bool, error) {
						r.Balance++
						return true, nil
					},
				)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	err := store.Scan(func(r *testRecord) bool {
		assert.Equal(t, int64(10), r.Balance)
		return true
	})
	require.NoError(t, err)
}
