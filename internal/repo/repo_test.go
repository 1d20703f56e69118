package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/steake/internal/pg"
	balancerepo "github.com/GlebRadaev/steake/internal/repo/balance-repo"
	gamerepo "github.com/GlebRadaev/steake/internal/repo/game-repo"
	transactionrepo "github.com/GlebRadaev/steake/internal/repo/transaction-repo"
	userrepo "github.com/GlebRadaev/steake/internal/repo/user-repo"
	withdrawalrepo "github.com/GlebRadaev/steake/internal/repo/withdrawal-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)
	mockTxManager := pg.NewMockTXManager(ctrl)
	repo := New(mockDB, mockTxManager)

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &balancerepo.Repository{}, repo.BalanceRepo)
	assert.IsType(t, &withdrawalrepo.Repository{}, repo.Withdrawal)
	assert.IsType(t, &transactionrepo.Repository{}, repo.Transactions)
	assert.IsType(t, &gamerepo.Repository{}, repo.Games)
	assert.NotNil(t, repo.TxManager)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
