package filestore

import (
	"io"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// Advisory byte-range locks over entity files. Each acquisition pairs a
// POSIX fcntl lock (visible to other processes such as the bootstrap and
// inspector tools) with an entry in a process-local range table: fcntl locks
// never conflict between goroutines of one process, so the table is what
// serializes concurrent connection handlers.
//
// A start of 0 with length 0 locks the whole file, mirroring fcntl's
// "to EOF" convention.

type heldRange struct {
	start     int64
	length    int64 // 0 means to EOF
	exclusive bool
}

// overlaps reports whether the two byte ranges share at least one byte.
func (h heldRange) overlaps(start, length int64) bool {
	if h.length != 0 && start >= h.start+h.length {
		return false
	}
	if length != 0 && h.start >= start+length {
		return false
	}
	return true
}

// rangeTable tracks the byte ranges currently locked by this process,
// per file path.
type rangeTable struct {
	mu   sync.Mutex
	cond *sync.Cond
	held map[string][]heldRange
}

func newRangeTable() *rangeTable {
	t := &rangeTable{held: make(map[string][]heldRange)}
	t.cond = sync.NewCond(&t.mu)
	return t
}

func (t *rangeTable) conflicts(path string, start, length int64, exclusive bool) bool {
	for _, h := range t.held[path] {
		if h.overlaps(start, length) && (exclusive || h.exclusive) {
			return true
		}
	}
	return false
}

// acquire blocks until no conflicting range is held, then records the range.
func (t *rangeTable) acquire(path string, start, length int64, exclusive bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for t.conflicts(path, start, length, exclusive) {
		t.cond.Wait()
	}
	t.held[path] = append(t.held[path], heldRange{start: start, length: length, exclusive: exclusive})
}

// release drops the first entry matching the range and wakes all waiters.
func (t *rangeTable) release(path string, start, length int64, exclusive bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ranges := t.held[path]
	for i, h := range ranges {
		if h.start == start && h.length == length && h.exclusive == exclusive {
			t.held[path] = append(ranges[:i], ranges[i+1:]...)
			break
		}
	}
	t.cond.Broadcast()
}

// processLocks is shared by every store in the process.
var processLocks = newRangeTable()

// lockRange acquires a blocking advisory lock on [start, start+length) of f.
// It returns the release function; the caller must invoke it before closing
// the descriptor, on every path.
func lockRange(f *os.File, path string, start, length int64, exclusive bool) (func(), error) {
	processLocks.acquire(path, start, length, exclusive)

	typ := int16(unix.F_RDLCK)
	if exclusive {
		typ = unix.F_WRLCK
	}
	flk := unix.Flock_t{
		Type:   typ,
		Whence: io.SeekStart,
		Start:  start,
		Len:    length,
	}
	if err := unix.FcntlFlock(f.Fd(), unix.F_SETLKW, &flk); err != nil {
		processLocks.release(path, start, length, exclusive)
		return nil, err
	}

	return func() {
		unlk := unix.Flock_t{
			Type:   unix.F_UNLCK,
			Whence: io.SeekStart,
			Start:  start,
			Len:    length,
		}
		// Unlock errors are not actionable here; closing the descriptor
		// drops the process's fcntl locks on the file anyway.
		_ = unix.FcntlFlock(f.Fd(), unix.F_SETLKW, &unlk)
		processLocks.release(path, start, length, exclusive)
	}, nil
}

// lockFile locks the whole file, shared or exclusive.
func lockFile(f *os.File, path string, exclusive bool) (func(), error) {
	return lockRange(f, path, 0, 0, exclusive)
}
