package repository

import (
	"database/sql"
	"go-wallet-api/logger"
	"go-wallet-api/model"
)

// IUserRepository defines the contract for user database operations.
type IUserRepository interface {
	CreateUser(tx *sql.Tx, user *model.User) error
	GetUserByUsername(username string) (*model.User, error)
	UpdateUser(userID int, firstName, lastName, passwordHash string) error
	SearchUsers(filter string) ([]*model.UserSummary, error)
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser inserts a new user inside the given transaction so the
// caller can create the user's account in the same atomic unit.
func (r *UserRepository) CreateUser(tx *sql.Tx, user *model.User) error {
	query := `INSERT INTO users (username, first_name, last_name, password) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	return tx.QueryRow(query, user.Username, user.FirstName, user.LastName, user.Password).Scan(&user.ID, &user.CreatedAt)
}

func (r *UserRepository) GetUserByUsername(username string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT id, username, first_name, last_name, password, created_at FROM users WHERE username = $1`
	err := r.DB.QueryRow(query, username).Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Password, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial profile update. Empty arguments leave the
// corresponding column untouched.
func (r *UserRepository) UpdateUser(userID int, firstName, lastName, passwordHash string) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to update user profile")

	query := `
		UPDATE users
		SET first_name = COALESCE(NULLIF($1, ''), first_name),
		    last_name  = COALESCE(NULLIF($2, ''), last_name),
		    password   = COALESCE(NULLIF($3, ''), password)
		WHERE id = $4`
	result, err := r.DB.Exec(query, firstName, lastName, passwordHash, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update user query")
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SearchUsers returns users whose first or last name contains the filter,
// case-insensitive. An empty filter matches everyone.
func (r *UserRepository) SearchUsers(filter string) ([]*model.UserSummary, error) {
	log := logger.Log.WithField("filter", filter)
	log.Info("Executing query to search users")

	query := `
		SELECT id, username, first_name, last_name
		FROM users
		WHERE first_name ILIKE '%' || $1 || '%' OR last_name ILIKE '%' || $1 || '%'
		ORDER BY id`
	rows, err := r.DB.Query(query, filter)
	if err != nil {
		log.WithError(err).Error("Failed to execute search users query")
		return nil, err
	}
	defer rows.Close()

	var users []*model.UserSummary
	for rows.Next() {
		var u model.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName); err != nil {
			log.WithError(err).Error("Failed to scan user row")
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}
