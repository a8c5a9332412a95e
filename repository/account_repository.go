package repository

import (
	"database/sql"
	"go-wallet-api/logger"
	"go-wallet-api/model"

	"github.com/sirupsen/logrus"
)

// IAccountRepository defines the contract for account database operations.
// Transaction-scoped methods take the *sql.Tx explicitly so the caller
// owns the transaction boundary.
type IAccountRepository interface {
	CreateAccount(tx *sql.Tx, account *model.Account) error
	GetAccountByUserID(userID int) (*model.Account, error)
	GetAccountForUpdate(tx *sql.Tx, userID int) (*model.Account, error)
	AdjustBalance(tx *sql.Tx, userID int, delta int64) error
}

// AccountRepository implements IAccountRepository.
type AccountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

// CreateAccount inserts a new account inside the given transaction, so
// user and account creation commit or roll back together.
func (r *AccountRepository) CreateAccount(tx *sql.Tx, account *model.Account) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id": account.UserID,
		"balance": account.Balance,
	})
	log.Info("Executing query to create a new account")

	query := `INSERT INTO accounts (user_id, balance) VALUES ($1, $2) RETURNING id, created_at`
	err := tx.QueryRow(query, account.UserID, account.Balance).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create account query")
		return err
	}
	return nil
}

// GetAccountByUserID retrieves a single account by its owner. Used by the
// balance query path; no transaction required.
func (r *AccountRepository) GetAccountByUserID(userID int) (*model.Account, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to get account by user ID")

	account := &model.Account{}
	query := `SELECT id, user_id, balance, created_at FROM accounts WHERE user_id = $1`
	err := r.DB.QueryRow(query, userID).Scan(&account.ID, &account.UserID, &account.Balance, &account.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute get account by user ID query")
		}
		return nil, err
	}
	return account, nil
}

// GetAccountForUpdate reads an account row and locks it for the lifetime
// of the transaction. Two transfers touching the same account serialize
// on this lock.
func (r *AccountRepository) GetAccountForUpdate(tx *sql.Tx, userID int) (*model.Account, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to get account for update")

	account := &model.Account{}
	query := `SELECT id, user_id, balance FROM accounts WHERE user_id = $1 FOR UPDATE`
	err := tx.QueryRow(query, userID).Scan(&account.ID, &account.UserID, &account.Balance)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("Account not found for update")
		} else {
			log.WithError(err).Error("Failed to execute get account for update query")
		}
		return nil, err
	}
	return account, nil
}

// AdjustBalance applies a signed delta relative to the row's current
// value. It is never a blind overwrite of a previously read balance, so
// it stays correct if the transaction is retried.
func (r *AccountRepository) AdjustBalance(tx *sql.Tx, userID int, delta int64) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id": userID,
		"delta":   delta,
	})
	log.Info("Executing query to adjust account balance")

	query := `UPDATE accounts SET balance = balance + $1 WHERE user_id = $2`
	_, err := tx.Exec(query, delta, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute adjust balance query")
		return err
	}
	return nil
}
