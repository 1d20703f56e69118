package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/steake/internal/domain"
)

var columns = []string{"id", "login", "email", "password_hash", "birth_date", "is_admin", "created_at"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB), mockDB
}

func TestRepository_Find(t *testing.T) {
	repo, mock := NewMock(t)
	birth := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	user := &domain.User{
		ID: 1, Login: "alice", Email: "alice@example.com", PasswordHash: "hash",
		BirthDate: birth, CreatedAt: created,
	}

	tests := []struct {
		name      string
		find      func() (*domain.User, error)
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name: "by login",
			find: func() (*domain.User, error) { return repo.FindByLogin(context.Background(), "alice") },
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, login, email, password_hash, birth_date, is_admin, created_at FROM users WHERE login = $1")).
					WithArgs("alice").
					WillReturnRows(pgxmock.NewRows(columns).AddRow(1, "alice", "alice@example.com", "hash", birth, false, created))
			},
			result: user,
		},
		{
			name: "by email",
			find: func() (*domain.User, error) { return repo.FindByEmail(context.Background(), "alice@example.com") },
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
					WithArgs("alice@example.com").
					WillReturnRows(pgxmock.NewRows(columns).AddRow(1, "alice", "alice@example.com", "hash", birth, false, created))
			},
			result: user,
		},
		{
			name: "by id not found",
			find: func() (*domain.User, error) { return repo.FindByID(context.Background(), 7) },
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
					WithArgs(7).
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "database error",
			find: func() (*domain.User, error) { return repo.FindByLogin(context.Background(), "alice") },
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE login = $1")).
					WithArgs("alice").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := tt.find()
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	birth := time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(`
		INSERT INTO users (login, email, password_hash, birth_date, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`)

	tests := []struct {
		name      string
		mockSetup func()
		wantErr   error
		expectErr bool
		result    *domain.User
	}{
		{
			name: "Create user successfully",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("bob", "bob@example.com", "hash", birth, false).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(2, created))
			},
			result: &domain.User{
				ID: 2, Login: "bob", Email: "bob@example.com", PasswordHash: "hash",
				BirthDate: birth, CreatedAt: created,
			},
		},
		{
			name: "Duplicate login",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("bob", "bob@example.com", "hash", birth, false).
					WillReturnError(&pgconn.PgError{Code: uniqueViolation})
			},
			expectErr: true,
			wantErr:   domain.ErrAlreadyExists,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("bob", "bob@example.com", "hash", birth, false).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			user := &domain.User{Login: "bob", Email: "bob@example.com", PasswordHash: "hash", BirthDate: birth}
			result, err := repo.Create(context.Background(), user)
			if tt.expectErr {
				assert.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_ListPlayers(t *testing.T) {
	repo, mock := NewMock(t)
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users u LEFT JOIN balances b ON b.user_id = u.id WHERE u.is_admin = FALSE")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "login", "email", "current_balance", "created_at"}).
			AddRow(3, "carol", "carol@example.com", decimal.RequireFromString("12.50"), created).
			AddRow(2, "bob", "bob@example.com", decimal.Zero, created))

	players, err := repo.ListPlayers(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "carol", players[0].Login)
	assert.Equal(t, "12.50", players[0].Balance.StringFixed(2))
	assert.True(t, players[1].Balance.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery("FROM users u").WillReturnError(errors.New("database error"))
	_, err = repo.ListPlayers(context.Background())
	assert.Error(t, err)
}
