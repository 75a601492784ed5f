package model

import (
	"time"

	"github.com/flatbank/flatbank/internal/domain/entity"
)

// RemarksLen is the width of the loan remarks field.
const RemarksLen = 256

// LoanRecord is the on-disk shape of a loan application.
type LoanRecord struct {
	ID          uint64
	UserID      uint32
	Amount      int64 // paise
	Status      uint8
	AssignedTo  uint32
	AppliedAt   int64 // unix seconds
	ProcessedAt int64 // unix seconds, 0 until decided
	Remarks     [RemarksLen]byte
}

// FromLoan fills the record from a domain loan.
func FromLoan(l *entity.Loan) *LoanRecord {
	var r LoanRecord
	r.ID = l.ID
	r.UserID = l.UserID
	r.Amount = l.Amount
	r.Status = uint8(l.Status)
	r.AssignedTo = l.AssignedTo
	r.AppliedAt = l.AppliedAt.Unix()
	if !l.ProcessedAt.IsZero() {
		r.ProcessedAt = l.ProcessedAt.Unix()
	}
	putString(r.Remarks[:], l.Remarks)
	return &r
}

// ToLoan converts the record back to a domain loan.
func (r *LoanRecord) ToLoan() *entity.Loan {
	l := &entity.Loan{
		ID:         r.ID,
		UserID:     r.UserID,
		Amount:     r.Amount,
		Status:     entity.LoanStatus(r.Status),
		AssignedTo: r.AssignedTo,
		AppliedAt:  time.Unix(r.AppliedAt, 0),
		Remarks:    getString(r.Remarks[:]),
	}
	if r.ProcessedAt != 0 {
		l.ProcessedAt = time.Unix(r.ProcessedAt, 0)
	}
	return l
}
