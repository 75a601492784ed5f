// Package filestore implements the flat-file record store: fixed-size binary
// records in per-entity files, addressed by byte offset, serialized with
// advisory file locks. There is no delete; records are appended once and
// overwritten in place.
package filestore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	errs "github.com/flatbank/flatbank/internal/domain/error"
)

// ErrNotFound is returned when no record matches a predicate.
var ErrNotFound = errors.New("record not found")

// Store reads and writes fixed-layout records of type R in a single file.
// R must contain only fixed-size fields (integers and byte arrays) so that
// every record occupies exactly the same number of bytes.
type Store[R any] struct {
	path string
	size int64
}

// Open creates a store for the named file inside dir. The file itself is
// created lazily on first append.
func Open[R any](dir, name string) (*Store[R], error) {
	var zero R
	n := binary.Size(&zero)
	if n <= 0 {
		return nil, fmt.Errorf("record type %T has no fixed binary size", zero)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.NewStorageError(dir, "mkdir", err)
	}
	return &Store[R]{path: filepath.Join(dir, name), size: int64(n)}, nil
}

// Path returns the backing file path.
func (s *Store[R]) Path() string {
	return s.path
}

// RecordSize returns the fixed on-disk size of one record.
func (s *Store[R]) RecordSize() int64 {
	return s.size
}

func (s *Store[R]) decode(buf []byte) (*R, error) {
	rec := new(R)
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, rec); err != nil {
		return nil, errs.NewStorageError(s.path, "decode", err)
	}
	return rec, nil
}

func (s *Store[R]) encode(rec *R) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(int(s.size))
	if err := binary.Write(&buf, binary.LittleEndian, rec); err != nil {
		return nil, errs.NewStorageError(s.path, "encode", err)
	}
	return buf.Bytes(), nil
}

// openRead opens the file for a shared-lock scan. A missing file is reported
// as os.ErrNotExist for callers to translate.
func (s *Store[R]) openRead() (*os.File, func(), error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil, err
	}
	release, err := lockFile(f, s.path, false)
	if err != nil {
		f.Close()
		return nil, nil, errs.NewStorageError(s.path, "lock", err)
	}
	return f, release, nil
}

// Count returns the number of records currently in the file.
func (s *Store[R]) Count() (int64, error) {
	f, release, err := s.openRead()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()
	defer release()

	info, err := f.Stat()
	if err != nil {
		return 0, errs.NewStorageError(s.path, "stat", err)
	}
	return info.Size() / s.size, nil
}

// Scan calls fn for every record in append order under a shared whole-file
// lock. fn returns false to stop early. fn must not touch the store.
func (s *Store[R]) Scan(fn func(rec *R) bool) error {
	f, release, err := s.openRead()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()
	defer release()

	return s.scanFrom(f, func(rec *R, _ int64) bool { return fn(rec) })
}

// scanFrom reads records sequentially from the current file position,
// reporting each record and its byte offset.
func (s *Store[R]) scanFrom(f *os.File, fn func(rec *R, offset int64) bool) error {
	buf := make([]byte, s.size)
	var offset int64
	for {
		_, err := io.ReadFull(f, buf)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			// A trailing partial record is treated as end of data.
			if err == io.ErrUnexpectedEOF {
				return nil
			}
			return errs.NewStorageError(s.path, "read", err)
		}
		rec, err := s.decode(buf)
		if err != nil {
			return err
		}
		if !fn(rec, offset) {
			return nil
		}
		offset += s.size
	}
}

// Find returns the first record matching pred, or ErrNotFound.
func (s *Store[R]) Find(pred func(rec *R) bool) (*R, error) {
	var found *R
	err := s.Scan(func(rec *R) bool {
		if pred(rec) {
			found = rec
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// findOffset locates the byte offset of the first record matching pred under
// a shared whole-file lock. The offset stays valid after the lock is dropped
// because records are never deleted or reordered.
func (s *Store[R]) findOffset(pred func(rec *R) bool) (int64, error) {
	f, release, err := s.openRead()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return -1, ErrNotFound
		}
		return -1, err
	}
	defer f.Close()
	defer release()

	found := int64(-1)
	err = s.scanFrom(f, func(rec *R, offset int64) bool {
		if pred(rec) {
			found = offset
			return false
		}
		return true
	})
	if err != nil {
		return -1, err
	}
	if found < 0 {
		return -1, ErrNotFound
	}
	return found, nil
}

// Append writes rec at EOF under an exclusive whole-file lock and returns
// its one-based position. When assign is non-nil it is invoked with that
// position before encoding, letting the callee stamp the record id.
func (s *Store[R]) Append(rec *R, assign func(rec *R, seq uint64)) (uint64, error) {
	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return 0, errs.NewStorageError(s.path, "open", err)
	}
	defer f.Close()

	release, err := lockFile(f, s.path, true)
	if err != nil {
		return 0, errs.NewStorageError(s.path, "lock", err)
	}
	defer release()

	end, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, errs.NewStorageError(s.path, "seek", err)
	}
	seq := uint64(end/s.size) + 1
	if assign != nil {
		assign(rec, seq)
	}

	buf, err := s.encode(rec)
	if err != nil {
		return 0, err
	}
	if _, err := f.Write(buf); err != nil {
		return 0, errs.NewStorageError(s.path, "write", err)
	}
	return seq, nil
}

// Overwrite replaces the first record matching pred in place, or appends rec
// at EOF when no record matches (insert-or-update), all under one exclusive
// whole-file lock.
func (s *Store[R]) Overwrite(pred func(rec *R) bool, rec *R) error {
	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return errs.NewStorageError(s.path, "open", err)
	}
	defer f.Close()

	release, err := lockFile(f, s.path, true)
	if err != nil {
		return errs.NewStorageError(s.path, "lock", err)
	}
	defer release()

	target := int64(-1)
	if err := s.scanFrom(f, func(existing *R, offset int64) bool {
		if pred(existing) {
			target = offset
			return false
		}
		return true
	}); err != nil {
		return err
	}

	buf, err := s.encode(rec)
	if err != nil {
		return err
	}
	if target < 0 {
		if _, err := f.Seek(0, io.SeekEnd); err != nil {
			return errs.NewStorageError(s.path, "seek", err)
		}
		if _, err := f.Write(buf); err != nil {
			return errs.NewStorageError(s.path, "write", err)
		}
		return nil
	}
	if _, err := f.WriteAt(buf, target); err != nil {
		return errs.NewStorageError(s.path, "write", err)
	}
	return nil
}

// UpdateEach runs fn over every record under one exclusive whole-file lock,
// writing back each record for which fn returns true. Returns the number of
// records rewritten. Used for batch in-place passes such as marking feedback
// reviewed.
func (s *Store[R]) UpdateEach(fn func(rec *R) bool) (int, error) {
	f, err := os.OpenFile(s.path, os.O_RDWR, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, errs.NewStorageError(s.path, "open", err)
	}
	defer f.Close()

	release, err := lockFile(f, s.path, true)
	if err != nil {
		return 0, errs.NewStorageError(s.path, "lock", err)
	}
	defer release()

	var updated int
	var writeErr error
	err = s.scanFrom(f, func(rec *R, offset int64) bool {
		if !fn(rec) {
			return true
		}
		buf, err := s.encode(rec)
		if err != nil {
			writeErr = err
			return false
		}
		if _, err := f.WriteAt(buf, offset); err != nil {
			writeErr = errs.NewStorageError(s.path, "write", err)
			return false
		}
		updated++
		return true
	})
	if err != nil {
		return updated, err
	}
	return updated, writeErr
}
