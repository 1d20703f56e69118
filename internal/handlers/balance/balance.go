package balance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/steake/internal/domain"
	"github.com/GlebRadaev/steake/internal/dto"
	balanceservice "github.com/GlebRadaev/steake/internal/service/balanceservice"
	"github.com/GlebRadaev/steake/pkg/auth"
	"github.com/GlebRadaev/steake/pkg/utils"
	"github.com/GlebRadaev/steake/pkg/validate"
)

//go:generate mockgen -source=balance.go -destination=mock_balance.go -package=balance

type Service interface {
	CreateBalance(ctx context.Context, userID int) (*domain.Balance, error)
	GetBalance(ctx context.Context, userID int) (*domain.Balance, error)
	Withdraw(ctx context.Context, userID int, cardNumber string, sum decimal.Decimal) error
	Deposit(ctx context.Context, userID int, amount decimal.Decimal, description string) (*domain.Balance, error)
	GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error)
	GetHistory(ctx context.Context, userID int) (*domain.History, error)
}

type BalanceHandler struct {
	balanceService Service
}

func New(balanceService Service) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

// GetBalance godoc
//
//	@Summary		Get current user balance
//	@Description	Retrieve the spendable balance and the total amount withdrawn for the authenticated user.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance and withdrawn total"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	balance, err := h.balanceService.GetBalance(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Current:   balance.CurrentBalance,
		Withdrawn: balance.WithdrawnTotal,
	})
}

// Withdraw godoc
//
//	@Summary		Request funds withdrawal
//	@Description	Withdraw funds from the user balance to a payment card.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.BalanceWithdrawRequestDTO	true	"Withdrawal request payload"
//	@Success		200		{string}	string							"Withdrawal successful"
//	@Failure		400		{object}	utils.Response					"Invalid amount"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		402		{object}	utils.Response					"Insufficient balance"
//	@Failure		422		{object}	utils.Response					"Invalid card number"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/user/balance/withdraw [post]
func (h *BalanceHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.BalanceWithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	card, ok := validate.CardNumber(req.CardNumber)
	if !ok {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid card number")
		return
	}

	err := h.balanceService.Withdraw(r.Context(), userID, card, req.Sum)
	if err != nil {
		switch {
		case errors.Is(err, balanceservice.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, balanceservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "withdrawal successful")
}

// GetWithdrawals godoc
//
//	@Summary		Get withdrawals history
//	@Description	Get withdrawals history for the authenticated user, newest first
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.GetWithdrawalsResponseDTO	"Withdrawals history"
//	@Success		204	{object}	utils.Response					"Withdrawals not found"
//	@Failure		401	{object}	utils.Response					"User not authorized"
//	@Failure		500	{object}	utils.Response					"Internal server error"
//	@Router			/api/user/withdrawals [get]
func (h *BalanceHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	withdrawals, err := h.balanceService.GetWithdrawals(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}

	if len(withdrawals) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Withdrawals not found")
		return
	}

	response := make([]dto.GetWithdrawalsResponseDTO, len(withdrawals))
	for i, wd := range withdrawals {
		response[i] = dto.GetWithdrawalsResponseDTO{
			CardNumber:  validate.MaskCard(wd.CardNumber),
			Sum:         wd.Sum,
			ProcessedAt: wd.ProcessedAt,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetHistory godoc
//
//	@Summary		Get ledger history
//	@Description	Recent transactions and game records for the authenticated user
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.HistoryResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/transactions [get]
func (h *BalanceHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	history, err := h.balanceService.GetHistory(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch history")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewHistoryResponseDTO(history))
}
