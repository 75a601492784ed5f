package customer

import (
	"context"
	"fmt"

	"github.com/flatbank/flatbank/internal/domain/entity"
	errs "github.com/flatbank/flatbank/internal/domain/error"
	"github.com/flatbank/flatbank/internal/domain/port/persistence"
)

// ViewBalance returns the current balance and status line for the account.
func (s *Service) ViewBalance(ctx context.Context, userID uint32) (string, error) {
	acc, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Balance: %s (Status: %s)", entity.FormatAmount(acc.Balance), acc.StatusString()), nil
}

// Deposit credits the account under a record lock and appends the audit
// entry. An inactive account rejects the credit inside the lock.
func (s *Service) Deposit(ctx context.Context, userID uint32, amount string) (string, error) {
	paise, err := entity.ParseAmount(amount)
	if err != nil {
		return "", err
	}

	err = s.accounts.AtomicUpdate(ctx, userID, func(acc *entity.Account) persistence.Outcome {
		if err := acc.Credit(paise); err != nil {
			return persistence.Abort(err)
		}
		return persistence.Commit()
	})
	if err != nil {
		return "", err
	}

	s.appendAudit(ctx, 0, userID, paise, entity.NarrationDeposit)
	s.logger.Info("deposit committed", map[string]any{
		"user_id": userID,
		"amount":  entity.FormatAmount(paise),
	})
	return fmt.Sprintf("Deposit Successful: %s", entity.FormatAmount(paise)), nil
}

// Withdraw debits the account under a record lock and appends the audit
// entry. Insufficient balance or an inactive account aborts inside the lock
// with no state change.
func (s *Service) Withdraw(ctx context.Context, userID uint32, amount string) (string, error) {
	paise, err := entity.ParseAmount(amount)
	if err != nil {
		return "", err
	}

	err = s.accounts.AtomicUpdate(ctx, userID, func(acc *entity.Account) persistence.Outcome {
		if err := acc.Debit(paise); err != nil {
			if err == errs.ErrInsufficientBalance {
				return persistence.Abort(errs.NewInsufficientBalanceError(
					userID, entity.FormatAmount(paise), entity.FormatAmount(acc.Balance)))
			}
			return persistence.Abort(err)
		}
		return persistence.Commit()
	})
	if err != nil {
		return "", err
	}

	s.appendAudit(ctx, userID, 0, paise, entity.NarrationWithdraw)
	s.logger.Info("withdrawal committed", map[string]any{
		"user_id": userID,
		"amount":  entity.FormatAmount(paise),
	})
	return fmt.Sprintf("Withdrawal Successful: %s", entity.FormatAmount(paise)), nil
}

// Transfer moves money between two accounts as two single-record updates:
// an atomic withdraw from the sender, then an atomic deposit to the
// receiver. The two legs are not one transaction; if the deposit leg fails a
// compensating deposit puts the money back into the sender. When that
// compensation itself fails the funds are lost from the system's accounting
// and the caller gets the CRITICAL contact-support outcome. A real fix needs
// a transaction journal, which this store deliberately does not have.
func (s *Service) Transfer(ctx context.Context, fromID, toID uint32, amount string) (string, error) {
	if fromID == toID {
		return "", errs.ErrSameAccount
	}
	paise, err := entity.ParseAmount(amount)
	if err != nil {
		return "", err
	}

	// Receiver pre-check. This read is not held across the withdraw, so the
	// receiver can be deactivated in between; the deposit-leg mutator
	// re-checks inside its lock.
	recv, err := s.accounts.GetByUserID(ctx, toID)
	if err != nil {
		return "", fmt.Errorf("recipient: %w", err)
	}
	if !recv.Active {
		return "", fmt.Errorf("recipient: %w", errs.ErrAccountInactive)
	}

	err = s.accounts.AtomicUpdate(ctx, fromID, func(acc *entity.Account) persistence.Outcome {
		if err := acc.Debit(paise); err != nil {
			if err == errs.ErrInsufficientBalance {
				return persistence.Abort(errs.NewInsufficientBalanceError(
					fromID, entity.FormatAmount(paise), entity.FormatAmount(acc.Balance)))
			}
			return persistence.Abort(err)
		}
		return persistence.Commit()
	})
	if err != nil {
		return "", err
	}

	err = s.accounts.AtomicUpdate(ctx, toID, func(acc *entity.Account) persistence.Outcome {
		if err := acc.Credit(paise); err != nil {
			return persistence.Abort(err)
		}
		return persistence.Commit()
	})
	if err != nil {
		// Best-effort rollback of the withdrawal leg.
		compErr := s.accounts.AtomicUpdate(ctx, fromID, func(acc *entity.Account) persistence.Outcome {
			acc.Balance += paise
			return persistence.Commit()
		})
		if compErr != nil {
			s.logger.Error("transfer compensation failed, funds unaccounted", map[string]any{
				"from_id": fromID,
				"to_id":   toID,
				"amount":  entity.FormatAmount(paise),
				"deposit_error":      err.Error(),
				"compensation_error": compErr.Error(),
			})
			return "", fmt.Errorf("CRITICAL: transfer failed after withdrawal and rollback also failed, contact support: %w", errs.ErrCompensationFailed)
		}
		s.logger.Warn("transfer deposit leg failed, withdrawal rolled back", map[string]any{
			"from_id": fromID,
			"to_id":   toID,
			"error":   err.Error(),
		})
		return "", fmt.Errorf("transfer failed, amount returned to sender: %w", err)
	}

	now := s.timeProvider.Now()
	s.append(ctx, &entity.Transaction{
		FromAccount: fromID, ToAccount: toID, Amount: paise,
		Narration: entity.NarrationTransferOut, Timestamp: now,
	})
	s.append(ctx, &entity.Transaction{
		FromAccount: fromID, ToAccount: toID, Amount: paise,
		Narration: entity.NarrationTransferIn, Timestamp: now,
	})

	s.logger.Info("transfer committed", map[string]any{
		"from_id": fromID,
		"to_id":   toID,
		"amount":  entity.FormatAmount(paise),
	})
	return fmt.Sprintf("Transfer Successful: %s from %d to %d", entity.FormatAmount(paise), fromID, toID), nil
}

func (s *Service) appendAudit(ctx context.Context, from, to uint32, paise int64, narration string) {
	s.append(ctx, &entity.Transaction{
		FromAccount: from,
		ToAccount:   to,
		Amount:      paise,
		Narration:   narration,
		Timestamp:   s.timeProvider.Now(),
	})
}

// append writes one ledger entry. The money has already moved at this point,
// so an audit failure is logged rather than failing the operation.
func (s *Service) append(ctx context.Context, t *entity.Transaction) {
	if _, err := s.transactions.Append(ctx, t); err != nil {
		s.logger.Error("audit append failed", map[string]any{
			"narration": t.Narration,
			"error":     err.Error(),
		})
	}
}
