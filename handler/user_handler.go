package handler

import (
	"encoding/json"
	"go-wallet-api/common"
	"go-wallet-api/model"
	"go-wallet-api/service"
	"net/http"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	service service.IUserService
}

func NewUserHandler(s service.IUserService) *UserHandler {
	return &UserHandler{service: s}
}

// Signup godoc
// @Summary      Register a new user
// @Description  Creates a user and their wallet account with a random starting balance, then returns a signed token.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        signup body model.SignupRequest true "New user details"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  common.AppError "Invalid inputs or email already taken"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/v1/user/signup [post]
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SignupRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	token, err := h.service.Signup(req)
	if err != nil {
		switch err {
		case service.ErrUsernameTaken:
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not create user", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "User created successfully!",
		"token":   token,
	})
	return nil
}

// Signin godoc
// @Summary      Authenticate a user
// @Description  Verifies credentials and returns a signed token.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        signin body model.SigninRequest true "Credentials"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  common.AppError "Invalid username or password"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/v1/user/signin [post]
func (h *UserHandler) Signin(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SigninRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	token, err := h.service.Signin(req)
	if err != nil {
		switch err {
		case service.ErrInvalidCredentials:
			return common.NewAppError(http.StatusUnauthorized, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not sign in", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"token": token})
	return nil
}

// Update godoc
// @Summary      Update the caller's profile
// @Description  Applies a partial update to firstName, lastName and/or password.
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        update body model.UpdateUserRequest true "Fields to update"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  common.AppError "Invalid inputs"
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/v1/user [put]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.UpdateUserRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	if err := h.service.UpdateProfile(userID, req); err != nil {
		switch err {
		case service.ErrUserNotFound:
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not update user", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Updated successfully!"})
	return nil
}

// Search godoc
// @Summary      Search users
// @Description  Returns public summaries of users whose first or last name contains the filter, case-insensitive.
// @Tags         user
// @Produce      json
// @Param        filter query string false "Substring to match against first or last name"
// @Success      200  {object}  map[string][]model.UserSummary
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/v1/user/bulk [get]
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) *common.AppError {
	filter := r.URL.Query().Get("filter")

	users, err := h.service.SearchUsers(filter)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not search users", err)
	}
	if users == nil {
		users = []*model.UserSummary{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string][]*model.UserSummary{"user": users})
	return nil
}
