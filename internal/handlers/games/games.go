package games

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/steake/internal/dto"
	"github.com/GlebRadaev/steake/internal/game"
	"github.com/GlebRadaev/steake/internal/game/blackjack"
	"github.com/GlebRadaev/steake/internal/game/dice"
	"github.com/GlebRadaev/steake/internal/game/mines"
	"github.com/GlebRadaev/steake/pkg/auth"
	"github.com/GlebRadaev/steake/pkg/utils"
)

//go:generate mockgen -source=games.go -destination=mock_games.go -package=games

type Service interface {
	Blackjack(ctx context.Context, userID int, action string, bet decimal.Decimal) (*blackjack.View, error)
	Dice(ctx context.Context, userID int, bet decimal.Decimal, prediction string, target int) (*dice.View, error)
	Mines(ctx context.Context, userID int, action string, bet decimal.Decimal, minesCount, cell int) (*mines.View, error)
}

type GamesHandler struct {
	gameService Service
}

func New(gameService Service) *GamesHandler {
	return &GamesHandler{
		gameService: gameService,
	}
}

// StatusFor maps an engine error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrInvalidBet), errors.Is(err, game.ErrInvalidParams):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, game.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, game.ErrNoActiveRound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrInvalidAction):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respond(w http.ResponseWriter, view any, err error) {
	if err != nil {
		status := StatusFor(err)
		if status == http.StatusInternalServerError {
			zap.L().Error("game action failed", zap.Error(err))
			utils.RespondWithError(w, status, "Internal server error")
			return
		}
		utils.RespondWithError(w, status, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// Blackjack godoc
//
//	@Summary		Play blackjack
//	@Description	deal starts a round and debits betAmount. hit, stand and double act on the active round.
//	@Tags			Games
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.BlackjackRequestDTO	true	"Action"
//	@Success		200		{object}	blackjack.View
//	@Failure		400		{object}	utils.Response	"Invalid bet"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		404		{object}	utils.Response	"No active round"
//	@Failure		409		{object}	utils.Response	"Action not allowed"
//	@Router			/api/games/blackjack [post]
func (h *GamesHandler) Blackjack(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.BlackjackRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	view, err := h.gameService.Blackjack(r.Context(), userID, req.Action, req.BetAmount)
	respond(w, view, err)
}

// Dice godoc
//
//	@Summary		Roll the dice
//	@Description	Wins when the roll is strictly higher or lower than targetNumber.
//	@Tags			Games
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.DiceRequestDTO	true	"Bet"
//	@Success		200		{object}	dice.View
//	@Failure		400		{object}	utils.Response	"Invalid bet or parameters"
//	@Router			/api/games/dice [post]
func (h *GamesHandler) Dice(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.DiceRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	view, err := h.gameService.Dice(r.Context(), userID, req.BetAmount, req.Prediction, req.TargetNumber)
	respond(w, view, err)
}

// Mines godoc
//
//	@Summary		Play mines
//	@Description	start hides minesCount mines and debits betAmount. reveal opens cell. cashout pays the current multiplier.
//	@Tags			Games
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.MinesRequestDTO	true	"Action"
//	@Success		200		{object}	mines.View
//	@Failure		400		{object}	utils.Response	"Invalid bet or parameters"
//	@Failure		404		{object}	utils.Response	"No active round"
//	@Failure		409		{object}	utils.Response	"Action not allowed"
//	@Router			/api/games/mines [post]
func (h *GamesHandler) Mines(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.MinesRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	cell := -1
	if req.Cell != nil {
		cell = *req.Cell
	}
	view, err := h.gameService.Mines(r.Context(), userID, req.Action, req.BetAmount, req.MinesCount, cell)
	respond(w, view, err)
}
