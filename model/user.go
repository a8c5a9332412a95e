package model

import "time"

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSummary is the public projection returned by the user search
// endpoint. It never carries credentials.
type UserSummary struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
