package dto

import "github.com/GlebRadaev/steake/internal/domain"

func NewUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Login:     u.Login,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func NewHistoryResponseDTO(h *domain.History) HistoryResponseDTO {
	resp := HistoryResponseDTO{
		Transactions: make([]TransactionDTO, len(h.Transactions)),
		Games:        make([]GameRecordDTO, len(h.Games)),
	}
	for i, tx := range h.Transactions {
		resp.Transactions[i] = TransactionDTO{
			ID:          tx.ID,
			Type:        string(tx.Type),
			Amount:      tx.Amount,
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt,
		}
	}
	for i, g := range h.Games {
		resp.Games[i] = GameRecordDTO{
			ID:        g.ID,
			GameType:  string(g.GameType),
			BetAmount: g.BetAmount,
			WinAmount: g.WinAmount,
			Result:    g.Outcome,
			CreatedAt: g.CreatedAt,
		}
	}
	return resp
}
