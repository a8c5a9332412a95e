package model

import "time"

// Account holds a user's wallet balance. Balance is stored in minor
// units (cents) as an int64; floating point is never used for money.
type Account struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}
