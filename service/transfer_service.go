package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"go-wallet-api/logger"
	"go-wallet-api/repository"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

var (
	ErrSenderAccountNotFound   = errors.New("sender account not found")
	ErrReceiverAccountNotFound = errors.New("receiver account not found")
	ErrSelfTransfer            = errors.New("cannot transfer money to your own account")
	ErrInsufficientFunds       = errors.New("insufficient balance")
	ErrInvalidAmount           = errors.New("transfer amount must be greater than zero")
	ErrTransferConflict        = errors.New("transfer aborted due to concurrent activity, please retry")
)

// maxTransferAttempts bounds the retry loop around the transactional
// block when the store reports a serialization or deadlock conflict.
const maxTransferAttempts = 3

// ITransferService defines the contract consumed by the HTTP layer.
type ITransferService interface {
	Transfer(ctx context.Context, fromUserID, toUserID int, amount int64) error
}

// TransferService moves money between two accounts as one atomic unit.
// It holds no mutable state of its own; all coordination is delegated to
// the database's transaction manager, so it is safe for concurrent use.
type TransferService struct {
	db          *sql.DB
	accountRepo repository.IAccountRepository
	cache       ICacheClient
}

func NewTransferService(db *sql.DB, accountRepo repository.IAccountRepository, cache ICacheClient) *TransferService {
	return &TransferService{
		db:          db,
		accountRepo: accountRepo,
		cache:       cache,
	}
}

// Transfer debits fromUserID and credits toUserID by amount (minor
// units) inside a single database transaction. Either both writes commit
// or neither does; no partial effect is ever visible to other readers.
// Serialization conflicts are retried up to maxTransferAttempts before
// surfacing ErrTransferConflict.
func (s *TransferService) Transfer(ctx context.Context, fromUserID, toUserID int, amount int64) error {
	log := logger.Log.WithFields(logrus.Fields{
		"from_user_id": fromUserID,
		"to_user_id":   toUserID,
		"amount":       amount,
	})

	if amount <= 0 {
		return ErrInvalidAmount
	}
	if fromUserID == toUserID {
		return ErrSelfTransfer
	}

	log.Info("Starting money transfer process")

	var err error
	for attempt := 1; attempt <= maxTransferAttempts; attempt++ {
		err = s.runTransfer(ctx, fromUserID, toUserID, amount)
		if err == nil {
			s.invalidateBalanceCache(fromUserID, toUserID)
			log.Info("Transfer completed successfully")
			return nil
		}
		if !isRetryableTxError(err) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.WithError(err).WithField("attempt", attempt).Warn("Transfer transaction conflicted, retrying")
	}

	log.WithError(err).Error("Transfer failed after exhausting retries")
	return ErrTransferConflict
}

// runTransfer executes one attempt of the transfer inside its own
// transaction. The deferred Rollback releases the transaction on every
// exit path; it is a no-op after a successful Commit.
func (s *TransferService) runTransfer(ctx context.Context, fromUserID, toUserID int, amount int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	fromAccount, err := s.accountRepo.GetAccountForUpdate(tx, fromUserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrSenderAccountNotFound
		}
		return err
	}

	if fromAccount.Balance < amount {
		return ErrInsufficientFunds
	}

	if _, err = s.accountRepo.GetAccountForUpdate(tx, toUserID); err != nil {
		if err == sql.ErrNoRows {
			return ErrReceiverAccountNotFound
		}
		return err
	}

	if err := s.accountRepo.AdjustBalance(tx, fromUserID, -amount); err != nil {
		return fmt.Errorf("could not debit sender: %w", err)
	}

	if err := s.accountRepo.AdjustBalance(tx, toUserID, amount); err != nil {
		return fmt.Errorf("could not credit receiver: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if isRetryableTxError(err) {
			return err
		}
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// invalidateBalanceCache drops both parties' cached balances after a
// committed transfer. Cache errors are logged, never surfaced: the
// database already holds the truth.
func (s *TransferService) invalidateBalanceCache(fromUserID, toUserID int) {
	if s.cache == nil {
		return
	}
	keys := []string{balanceCacheKey(fromUserID), balanceCacheKey(toUserID)}
	if err := s.cache.Del(context.Background(), keys...).Err(); err != nil {
		logger.Log.WithError(err).Warn("Failed to invalidate balance cache after transfer")
	}
}

// isRetryableTxError reports whether the error is a transient conflict
// detected by Postgres: serialization_failure (40001) or
// deadlock_detected (40P01).
func isRetryableTxError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
