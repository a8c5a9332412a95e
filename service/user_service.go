package service

import (
	"database/sql"
	"errors"
	"fmt"
	"go-wallet-api/config"
	"go-wallet-api/logger"
	"go-wallet-api/model"
	"go-wallet-api/repository"
	"math/rand"
)

var (
	ErrUsernameTaken      = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// IUserService defines the contract consumed by the HTTP layer.
type IUserService interface {
	Signup(req model.SignupRequest) (string, error)
	Signin(req model.SigninRequest) (string, error)
	UpdateProfile(userID int, req model.UpdateUserRequest) error
	SearchUsers(filter string) ([]*model.UserSummary, error)
}

// UserService handles signup, signin, profile updates and search.
type UserService struct {
	db          *sql.DB
	userRepo    repository.IUserRepository
	accountRepo repository.IAccountRepository
	auth        *AuthService
}

func NewUserService(db *sql.DB, userRepo repository.IUserRepository, accountRepo repository.IAccountRepository, auth *AuthService) *UserService {
	return &UserService{
		db:          db,
		userRepo:    userRepo,
		accountRepo: accountRepo,
		auth:        auth,
	}
}

// Signup creates the user and their wallet account in one transaction.
// The account opens with a random starting balance within the configured
// bounds. Returns a signed token for the new user.
func (s *UserService) Signup(req model.SignupRequest) (string, error) {
	log := logger.Log.WithField("username", req.Username)

	if _, err := s.userRepo.GetUserByUsername(req.Username); err == nil {
		return "", ErrUsernameTaken
	} else if err != sql.ErrNoRows {
		return "", err
	}

	hashedPassword, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return "", err
	}

	user := &model.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hashedPassword,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.userRepo.CreateUser(tx, user); err != nil {
		log.WithError(err).Error("Failed to create user")
		return "", err
	}

	account := &model.Account{
		UserID:  user.ID,
		Balance: randomStartingBalance(),
	}
	if err := s.accountRepo.CreateAccount(tx, account); err != nil {
		log.WithError(err).Error("Failed to create account for new user")
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("could not commit transaction: %w", err)
	}

	log.WithField("user_id", user.ID).Info("User registered successfully")
	return s.auth.GenerateToken(user.ID)
}

// Signin verifies the credentials and returns a signed token.
func (s *UserService) Signin(req model.SigninRequest) (string, error) {
	user, err := s.userRepo.GetUserByUsername(req.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !s.auth.CheckPasswordHash(req.Password, user.Password) {
		return "", ErrInvalidCredentials
	}

	return s.auth.GenerateToken(user.ID)
}

// UpdateProfile applies a partial update to the caller's profile,
// hashing the password first if one was supplied.
func (s *UserService) UpdateProfile(userID int, req model.UpdateUserRequest) error {
	passwordHash := ""
	if req.Password != "" {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return err
		}
		passwordHash = hash
	}

	err := s.userRepo.UpdateUser(userID, req.FirstName, req.LastName, passwordHash)
	if err == sql.ErrNoRows {
		return ErrUserNotFound
	}
	return err
}

// SearchUsers returns public summaries of users matching the filter.
func (s *UserService) SearchUsers(filter string) ([]*model.UserSummary, error) {
	return s.userRepo.SearchUsers(filter)
}

// randomStartingBalance picks the signup grant, in minor units, from the
// configured range.
func randomStartingBalance() int64 {
	min := config.AppConfig.Wallet.MinStartingBalance
	max := config.AppConfig.Wallet.MaxStartingBalance

	span := max - min
	if span < 0 {
		span = 0
	}
	return min + rand.Int63n(span+1)
}
