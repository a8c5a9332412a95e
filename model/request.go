// file: model/request.go

package model

// SignupRequest defines the payload for creating a new user.
// It includes validation tags to ensure data integrity at the entry point.
type SignupRequest struct {
	Username  string `json:"username" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
}

// SigninRequest defines the payload for user authentication.
type SigninRequest struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateUserRequest defines the payload for a partial profile update.
// All fields are optional; empty fields are left untouched.
type UpdateUserRequest struct {
	Password  string `json:"password" validate:"omitempty,min=8"`
	FirstName string `json:"firstName" validate:"omitempty,max=50"`
	LastName  string `json:"lastName" validate:"omitempty,max=50"`
}

// TransferRequest defines the payload for a money transfer. The source
// account is always the authenticated caller; only the destination user
// and the amount (in minor units) come from the body.
type TransferRequest struct {
	To     int   `json:"to" validate:"required"`
	Amount int64 `json:"amount" validate:"required,gt=0"`
}
