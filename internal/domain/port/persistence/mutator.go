package persistence

import "github.com/flatbank/flatbank/internal/domain/entity"

// Outcome is the verdict of a record mutator running under a record lock:
// either commit the mutated record or abort with a caller-visible error.
type Outcome struct {
	commit bool
	err    error
}

// Commit signals that the mutated record should be written back.
func Commit() Outcome {
	return Outcome{commit: true}
}

// Abort signals that the record must be left untouched; err is surfaced to
// the caller as the rejection reason.
func Abort(err error) Outcome {
	return Outcome{commit: false, err: err}
}

// Committed reports whether the mutator asked for the write-back.
func (o Outcome) Committed() bool {
	return o.commit
}

// Err returns the mutator's rejection reason, nil on commit.
func (o Outcome) Err() error {
	return o.err
}

// Mutators inspect and optionally change exactly one record while its byte
// range is exclusively locked. A mutator must not perform I/O on the file
// holding the lock.
type (
	UserMutator    func(*entity.User) Outcome
	AccountMutator func(*entity.Account) Outcome
	LoanMutator    func(*entity.Loan) Outcome
)
