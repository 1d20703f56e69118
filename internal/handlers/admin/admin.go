package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/steake/internal/domain"
	"github.com/GlebRadaev/steake/internal/dto"
	"github.com/GlebRadaev/steake/internal/service/adminservice"
	balanceservice "github.com/GlebRadaev/steake/internal/service/balanceservice"
	"github.com/GlebRadaev/steake/pkg/auth"
	"github.com/GlebRadaev/steake/pkg/utils"
)

//go:generate mockgen -source=admin.go -destination=mock_admin.go -package=admin

type Service interface {
	ListPlayers(ctx context.Context) ([]domain.Player, error)
	AddBalance(ctx context.Context, adminLogin, username string, amount decimal.Decimal) (*domain.Balance, error)
	GetPlayerReport(ctx context.Context, username string) (*domain.PlayerReport, error)
}

type AdminHandler struct {
	adminService Service
}

func New(adminService Service) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func respondLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, adminservice.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, balanceservice.ErrInvalidAmount):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// ListUsers godoc
//
//	@Summary	List players
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		dto.PlayerDTO
//	@Failure	403	{object}	utils.Response	"Admin access required"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	players, err := h.adminService.ListPlayers(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	response := make([]dto.PlayerDTO, len(players))
	for i, p := range players {
		response[i] = dto.PlayerDTO{
			ID:        p.ID,
			Login:     p.Login,
			Email:     p.Email,
			Balance:   p.Balance,
			CreatedAt: p.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// AddBalance godoc
//
//	@Summary		Credit a player's balance
//	@Description	Writes a deposit transaction attributed to the calling admin.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AddBalanceRequestDTO	true	"Deposit"
//	@Success		200		{object}	dto.AddBalanceResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount"
//	@Failure		403		{object}	utils.Response	"Admin access required"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Router			/api/admin/add-balance [post]
func (h *AdminHandler) AddBalance(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.IdentityFromContext(r.Context())

	var req dto.AddBalanceRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	balance, err := h.adminService.AddBalance(r.Context(), caller.Login, req.Username, req.Amount)
	if err != nil {
		respondLookupError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AddBalanceResponseDTO{
		Message:    fmt.Sprintf("Added %s to %s", req.Amount.StringFixed(2), req.Username),
		NewBalance: balance.CurrentBalance,
	})
}

// GetUserData godoc
//
//	@Summary	Player report
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Param		username	query		string	true	"Player login"
//	@Success	200			{object}	dto.UserDataResponseDTO
//	@Failure	400			{object}	utils.Response	"Missing username"
//	@Failure	403			{object}	utils.Response	"Admin access required"
//	@Failure	404			{object}	utils.Response	"User not found"
//	@Router		/api/admin/user-data [get]
func (h *AdminHandler) GetUserData(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "username is required")
		return
	}

	report, err := h.adminService.GetPlayerReport(r.Context(), username)
	if err != nil {
		respondLookupError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.UserDataResponseDTO{
		User: dto.NewUserDTO(report.User),
		Balance: dto.BalanceResponseDTO{
			Current:   report.Balance.CurrentBalance,
			Withdrawn: report.Balance.WithdrawnTotal,
		},
		HistoryResponseDTO: dto.NewHistoryResponseDTO(&report.History),
		PnL: dto.PnLDTO{
			TotalPnL:      report.PnL.TotalPnL,
			TotalGames:    report.PnL.TotalGames,
			TotalWagered:  report.PnL.TotalWagered,
			TotalWinnings: report.PnL.TotalWinnings,
		},
	})
}
