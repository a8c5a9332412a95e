// file: service/account_service.go

package service

import (
	"context"
	"database/sql"
	"errors"
	"go-wallet-api/repository"
	"strconv"
	"time"
)

var ErrAccountNotFound = errors.New("account not found")

// balanceCacheTTL keeps cached balances short-lived; writes invalidate
// them eagerly anyway.
const balanceCacheTTL = 5 * time.Minute

// IAccountService defines the contract consumed by the HTTP layer.
type IAccountService interface {
	GetBalance(ctx context.Context, userID int) (int64, error)
}

// AccountService answers balance queries with a cache-aside strategy.
type AccountService struct {
	repo  repository.IAccountRepository
	cache ICacheClient
}

func NewAccountService(repo repository.IAccountRepository, cache ICacheClient) *AccountService {
	return &AccountService{
		repo:  repo,
		cache: cache,
	}
}

// GetBalance returns the current balance for a user's account in minor
// units. Cache first, database on miss, and the fresh value is stored
// back for subsequent reads.
func (s *AccountService) GetBalance(ctx context.Context, userID int) (int64, error) {
	cacheKey := balanceCacheKey(userID)

	if s.cache != nil {
		// A miss or an unavailable cache both fall through to the
		// database.
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			if balance, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
				return balance, nil
			}
		}
	}

	account, err := s.repo.GetAccountByUserID(userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrAccountNotFound
		}
		return 0, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, strconv.FormatInt(account.Balance, 10), balanceCacheTTL)
	}

	return account.Balance, nil
}
