package handler

import (
	"context"
	"encoding/json"
	"errors"
	"go-wallet-api/common"
	"go-wallet-api/model"
	"go-wallet-api/service"
	"net/http"
	"time"
)

// transferTimeout is the caller-supplied deadline for one transfer. If
// it elapses the open transaction is aborted and the client gets a
// retryable 503.
const transferTimeout = 5 * time.Second

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	accountService  service.IAccountService
	transferService service.ITransferService
}

func NewAccountHandler(accountService service.IAccountService, transferService service.ITransferService) *AccountHandler {
	return &AccountHandler{
		accountService:  accountService,
		transferService: transferService,
	}
}

// GetBalance godoc
// @Summary      Get account balance
// @Description  Returns the authenticated user's wallet balance in minor units.
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int64
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      400  {object}  common.AppError "Account not found"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/v1/account/balance [get]
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	balance, err := h.accountService.GetBalance(r.Context(), userID)
	if err != nil {
		switch err {
		case service.ErrAccountNotFound:
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not retrieve balance", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]int64{"balance": balance})
	return nil
}

// Transfer godoc
// @Summary      Transfer money to another user
// @Description  Moves the given amount (minor units) from the authenticated user's account to the destination user's account as one atomic transaction.
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        transfer body model.TransferRequest true "Destination user and amount"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  common.AppError "Insufficient balance, invalid amount, self transfer, or unknown account"
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      503  {object}  common.AppError "Transient conflict or timeout; safe to retry"
// @Failure      500  {object}  common.AppError "Internal server error while processing transfer"
// @Router       /api/v1/account/transfer [post]
func (h *AccountHandler) Transfer(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.TransferRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	ctx, cancel := context.WithTimeout(r.Context(), transferTimeout)
	defer cancel()

	if err := h.transferService.Transfer(ctx, userID, req.To, req.Amount); err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientFunds),
			errors.Is(err, service.ErrInvalidAmount),
			errors.Is(err, service.ErrSelfTransfer),
			errors.Is(err, service.ErrSenderAccountNotFound),
			errors.Is(err, service.ErrReceiverAccountNotFound):
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, service.ErrTransferConflict):
			return common.NewAppError(http.StatusServiceUnavailable, err.Error(), err)
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			return common.NewAppError(http.StatusServiceUnavailable, "transfer timed out, please retry", err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not process transfer", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Transfer successful!"})
	return nil
}
