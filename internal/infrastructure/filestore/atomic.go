package filestore

import (
	"io"
	"os"

	errs "github.com/flatbank/flatbank/internal/domain/error"
)

// AtomicUpdate gives "safely update exactly one record" semantics without a
// transaction manager:
//
//  1. locate the record's offset via a shared whole-file scan
//  2. reopen the file and take an exclusive lock on just that record's bytes
//  3. re-read the record fresh from disk
//  4. run the mutator; commit=false leaves the file untouched
//  5. on commit, write the whole record back at the same offset
//
// Two updates to different records never block each other; only same-record
// updates serialize. The offset from step 1 stays valid under concurrency
// because records are never deleted or reordered, only overwritten in place.
//
// mutate returns (commit, err); a nil err with commit=false is treated as a
// silent abort. mutate must not access the store it is called on.
func (s *Store[R]) AtomicUpdate(match func(rec *R) bool, mutate func(rec *R) (bool, error)) error {
	offset, err := s.findOffset(match)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_RDWR, 0o644)
	if err != nil {
		return errs.NewStorageError(s.path, "open", err)
	}
	defer f.Close()

	release, err := lockRange(f, s.path, offset, s.size, true)
	if err != nil {
		return errs.NewStorageError(s.path, "lock", err)
	}
	defer release()

	buf := make([]byte, s.size)
	if _, err := f.ReadAt(buf, offset); err != nil && err != io.EOF {
		return errs.NewStorageError(s.path, "read", err)
	}
	rec, err := s.decode(buf)
	if err != nil {
		return err
	}

	commit, err := mutate(rec)
	if err != nil {
		return err
	}
	if !commit {
		return nil
	}

	out, err := s.encode(rec)
	if err != nil {
		return err
	}
	n, err := f.WriteAt(out, offset)
	if err != nil {
		return errs.NewStorageError(s.path, "write", err)
	}
	if int64(n) != s.size {
		return errs.NewStorageError(s.path, "write", io.ErrShortWrite)
	}
	return nil
}
