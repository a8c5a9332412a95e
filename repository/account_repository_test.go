package repository

import (
	"database/sql"
	"go-wallet-api/logger"
	"go-wallet-api/model"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// beginTestTx opens a real *sql.Tx backed by the mock so transaction
// scoped repository methods can be exercised.
func beginTestTx(t *testing.T, db *sql.DB, dbMock sqlmock.Sqlmock) *sql.Tx {
	dbMock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)
	return tx
}

func TestAccountRepository_GetAccountForUpdate(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAccountRepository(db)

	t.Run("locks and returns the row", func(t *testing.T) {
		tx := beginTestTx(t, db, dbMock)

		rows := sqlmock.NewRows([]string{"id", "user_id", "balance"}).AddRow(1, 7, int64(5000))
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, balance FROM accounts WHERE user_id = $1 FOR UPDATE`)).
			WithArgs(7).
			WillReturnRows(rows)

		account, err := repo.GetAccountForUpdate(tx, 7)

		assert.NoError(t, err)
		assert.Equal(t, 7, account.UserID)
		assert.Equal(t, int64(5000), account.Balance)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("missing account returns ErrNoRows", func(t *testing.T) {
		tx := beginTestTx(t, db, dbMock)

		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, balance FROM accounts WHERE user_id = $1 FOR UPDATE`)).
			WithArgs(99).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetAccountForUpdate(tx, 99)

		assert.Equal(t, sql.ErrNoRows, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestAccountRepository_AdjustBalance(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAccountRepository(db)
	tx := beginTestTx(t, db, dbMock)

	dbMock.ExpectExec(regexp.QuoteMeta(`UPDATE accounts SET balance = balance + $1 WHERE user_id = $2`)).
		WithArgs(int64(-2500), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.AdjustBalance(tx, 7, -2500)

	assert.NoError(t, err)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestAccountRepository_CreateAccount(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAccountRepository(db)
	tx := beginTestTx(t, db, dbMock)

	account := &model.Account{UserID: 7, Balance: 4200}

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, time.Now())
	dbMock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO accounts (user_id, balance) VALUES ($1, $2) RETURNING id, created_at`)).
		WithArgs(7, int64(4200)).
		WillReturnRows(rows)

	err = repo.CreateAccount(tx, account)

	assert.NoError(t, err)
	assert.Equal(t, 3, account.ID)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestAccountRepository_GetAccountByUserID(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAccountRepository(db)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "user_id", "balance", "created_at"}).
			AddRow(1, 7, int64(5000), time.Now())
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, balance, created_at FROM accounts WHERE user_id = $1`)).
			WithArgs(7).
			WillReturnRows(rows)

		account, err := repo.GetAccountByUserID(7)

		assert.NoError(t, err)
		assert.Equal(t, int64(5000), account.Balance)
	})

	t.Run("not found", func(t *testing.T) {
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, balance, created_at FROM accounts WHERE user_id = $1`)).
			WithArgs(99).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetAccountByUserID(99)

		assert.Equal(t, sql.ErrNoRows, err)
	})
}
