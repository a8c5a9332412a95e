package handler

import (
	"encoding/json"
	"go-wallet-api/model"
	"go-wallet-api/service"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeUserService implements service.IUserService.
type fakeUserService struct {
	token       string
	signupErr   error
	signinErr   error
	updateErr   error
	searchErr   error
	searchUsers []*model.UserSummary
}

func (f *fakeUserService) Signup(req model.SignupRequest) (string, error) {
	return f.token, f.signupErr
}

func (f *fakeUserService) Signin(req model.SigninRequest) (string, error) {
	return f.token, f.signinErr
}

func (f *fakeUserService) UpdateProfile(userID int, req model.UpdateUserRequest) error {
	return f.updateErr
}

func (f *fakeUserService) SearchUsers(filter string) ([]*model.UserSummary, error) {
	return f.searchUsers, f.searchErr
}

func TestUserHandler_Signup(t *testing.T) {
	validBody := `{"username":"alice@example.com","password":"password123","firstName":"Alice","lastName":"Smith"}`

	t.Run("success returns message and token", func(t *testing.T) {
		h := NewUserHandler(&fakeUserService{token: "signed-token"})
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/user/signup", strings.NewReader(validBody))

		appErr := h.Signup(rr, req)

		assert.Nil(t, appErr)
		assert.Equal(t, http.StatusOK, rr.Code)
		var response map[string]string
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "User created successfully!", response["message"])
		assert.Equal(t, "signed-token", response["token"])
	})

	t.Run("duplicate email maps to 400", func(t *testing.T) {
		h := NewUserHandler(&fakeUserService{signupErr: service.ErrUsernameTaken})
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/user/signup", strings.NewReader(validBody))

		appErr := h.Signup(rr, req)

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})

	t.Run("invalid email rejected by validation", func(t *testing.T) {
		h := NewUserHandler(&fakeUserService{})
		rr := httptest.NewRecorder()
		body := `{"username":"not-an-email","password":"password123","firstName":"Alice","lastName":"Smith"}`
		req := httptest.NewRequest("POST", "/api/v1/user/signup", strings.NewReader(body))

		appErr := h.Signup(rr, req)

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})
}

func TestUserHandler_Signin(t *testing.T) {
	validBody := `{"username":"alice@example.com","password":"password123"}`

	t.Run("success returns token", func(t *testing.T) {
		h := NewUserHandler(&fakeUserService{token: "signed-token"})
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/user/signin", strings.NewReader(validBody))

		appErr := h.Signin(rr, req)

		assert.Nil(t, appErr)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"token": "signed-token"}`, rr.Body.String())
	})

	t.Run("bad credentials map to 401", func(t *testing.T) {
		h := NewUserHandler(&fakeUserService{signinErr: service.ErrInvalidCredentials})
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/user/signin", strings.NewReader(validBody))

		appErr := h.Signin(rr, req)

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	})
}

func TestUserHandler_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := NewUserHandler(&fakeUserService{})
		rr := httptest.NewRecorder()

		appErr := h.Update(rr, authedRequest("PUT", "/api/v1/user", `{"firstName":"Robert"}`, 5))

		assert.Nil(t, appErr)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message": "Updated successfully!"}`, rr.Body.String())
	})

	t.Run("requires authentication context", func(t *testing.T) {
		h := NewUserHandler(&fakeUserService{})
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/api/v1/user", strings.NewReader(`{"firstName":"Robert"}`))

		appErr := h.Update(rr, req)

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	})
}

func TestUserHandler_Search(t *testing.T) {
	t.Run("returns matches", func(t *testing.T) {
		h := NewUserHandler(&fakeUserService{searchUsers: []*model.UserSummary{
			{ID: 1, Username: "alice@example.com", FirstName: "Alice", LastName: "Smith"},
		}})
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/user/bulk?filter=ali", nil)

		appErr := h.Search(rr, req)

		assert.Nil(t, appErr)
		assert.Equal(t, http.StatusOK, rr.Code)
		var response map[string][]model.UserSummary
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Len(t, response["user"], 1)
		assert.Equal(t, "Alice", response["user"][0].FirstName)
	})

	t.Run("no matches returns an empty list, not null", func(t *testing.T) {
		h := NewUserHandler(&fakeUserService{})
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/user/bulk?filter=zzz", nil)

		appErr := h.Search(rr, req)

		assert.Nil(t, appErr)
		assert.JSONEq(t, `{"user": []}`, rr.Body.String())
	})
}
