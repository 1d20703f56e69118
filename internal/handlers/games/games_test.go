package games

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/steake/internal/game"
	"github.com/GlebRadaev/steake/internal/game/blackjack"
	"github.com/GlebRadaev/steake/internal/game/dice"
	"github.com/GlebRadaev/steake/internal/game/mines"
	"github.com/GlebRadaev/steake/pkg/auth"
	"github.com/GlebRadaev/steake/pkg/utils"
)

func NewMock(t *testing.T) (*GamesHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	return New(service), service
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, 1)
}

func post(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	return r.WithContext(userCtx())
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{game.ErrInvalidBet, http.StatusBadRequest},
		{fmt.Errorf("%w: target 0", game.ErrInvalidParams), http.StatusBadRequest},
		{game.ErrInsufficientBalance, http.StatusPaymentRequired},
		{game.ErrNotOwner, http.StatusForbidden},
		{game.ErrNoActiveRound, http.StatusNotFound},
		{game.ErrInvalidAction, http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestBlackjackHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Deal",
			body: `{"action":"deal","betAmount":"10.00"}`,
			prepareMock: func() {
				service.EXPECT().Blackjack(userCtx(), 1, "deal", decimal.RequireFromString("10.00")).
					Return(&blackjack.View{Phase: blackjack.PhasePlayerTurn, HoleHidden: true}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Double without funds",
			body: `{"action":"double"}`,
			prepareMock: func() {
				service.EXPECT().Blackjack(userCtx(), 1, "double", decimal.Decimal{}).
					Return(nil, fmt.Errorf("%w: balance 5.00, stake 10.00", game.ErrInsufficientBalance))
			},
			expectedCode:  http.StatusPaymentRequired,
			expectedError: "insufficient balance: balance 5.00, stake 10.00",
		},
		{
			name:          "Invalid body",
			body:          `{"action":`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Ledger down",
			body: `{"action":"stand"}`,
			prepareMock: func() {
				service.EXPECT().Blackjack(userCtx(), 1, "stand", decimal.Decimal{}).
					Return(nil, errors.New("conn closed"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			w := httptest.NewRecorder()
			handler.Blackjack(w, post(tt.body))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Error)
			}
		})
	}
}

func TestDiceHandler(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("Win", func(t *testing.T) {
		service.EXPECT().Dice(userCtx(), 1, decimal.RequireFromString("10"), "higher", 50).
			Return(&dice.View{
				DiceValue:  51,
				Won:        true,
				Multiplier: decimal.RequireFromString("1.96"),
				Summary:    game.Settled("win", decimal.RequireFromString("19.60"), decimal.RequireFromString("109.60")),
			}, nil)

		w := httptest.NewRecorder()
		handler.Dice(w, post(`{"betAmount":10,"prediction":"higher","targetNumber":50}`))

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, true, body["won"])
		assert.Equal(t, true, body["gameOver"])
		assert.Equal(t, float64(51), body["diceValue"])
	})

	t.Run("Bad target", func(t *testing.T) {
		service.EXPECT().Dice(userCtx(), 1, decimal.RequireFromString("10"), "higher", 100).
			Return(nil, game.ErrInvalidParams)

		w := httptest.NewRecorder()
		handler.Dice(w, post(`{"betAmount":10,"prediction":"higher","targetNumber":100}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMinesHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Start",
			body: `{"action":"start","betAmount":"5","minesCount":3}`,
			prepareMock: func() {
				service.EXPECT().Mines(userCtx(), 1, "start", decimal.RequireFromString("5"), 3, -1).
					Return(&mines.View{Phase: mines.PhaseActive}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Reveal cell zero",
			body: `{"action":"reveal","cell":0}`,
			prepareMock: func() {
				service.EXPECT().Mines(userCtx(), 1, "reveal", decimal.Decimal{}, 0, 0).
					Return(&mines.View{Phase: mines.PhaseActive, GemsFound: 1}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Reveal without cell",
			body: `{"action":"reveal"}`,
			prepareMock: func() {
				service.EXPECT().Mines(userCtx(), 1, "reveal", decimal.Decimal{}, 0, -1).
					Return(nil, game.ErrInvalidParams)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Cashout with no round",
			body: `{"action":"cashout"}`,
			prepareMock: func() {
				service.EXPECT().Mines(userCtx(), 1, "cashout", decimal.Decimal{}, 0, -1).
					Return(nil, game.ErrNoActiveRound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			w := httptest.NewRecorder()
			handler.Mines(w, post(tt.body))
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
