package service

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/steake/internal/game"
	"github.com/GlebRadaev/steake/internal/game/gametest"
	"github.com/GlebRadaev/steake/internal/pg"
	"github.com/GlebRadaev/steake/internal/repo"
	"github.com/GlebRadaev/steake/internal/roundstore"
	"github.com/GlebRadaev/steake/internal/service/authservice"
	pkgauth "github.com/GlebRadaev/steake/pkg/auth"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	repos := repo.New(mockDB, pg.NewMockTXManager(ctrl))
	services := New(repos, Deps{
		JWT:      pkgauth.NewJWTService("secret"),
		TokenTTL: time.Hour,
		Rounds:   roundstore.NewMemory(),
		RNG:      gametest.NewScriptedRNG(),
	})

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.BalanceService)
	assert.NotNil(t, services.AdminService)
	assert.NotNil(t, services.GameService)
	assert.NotNil(t, services.JWT)
	assert.Implements(t, (*game.Ledger)(nil), services.Ledger)
}

func TestEnsureAdminSkipsWhenUnset(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	services := New(repo.New(mockDB, pg.NewMockTXManager(ctrl)), Deps{})
	assert.NoError(t, services.EnsureAdmin(context.Background(), authservice.AdminSeed{}))
	assert.NoError(t, mockDB.ExpectationsWereMet())
}
