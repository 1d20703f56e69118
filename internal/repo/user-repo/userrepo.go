package userrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/GlebRadaev/steake/internal/domain"
	"github.com/GlebRadaev/steake/internal/pg"
)

const uniqueViolation = "23505"

const userColumns = "id, login, email, password_hash, birth_date, is_admin, created_at"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) findOne(ctx context.Context, column string, value any) (*domain.User, error) {
	var user domain.User
	err := repo.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE "+column+" = $1", value).
		Scan(&user.ID, &user.Login, &user.Email, &user.PasswordHash, &user.BirthDate, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.String("by", column), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	return repo.findOne(ctx, "login", login)
}

func (repo *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return repo.findOne(ctx, "email", email)
}

func (repo *Repository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return repo.findOne(ctx, "id", id)
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (login, email, password_hash, birth_date, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := repo.db.QueryRow(ctx, query, user.Login, user.Email, user.PasswordHash, user.BirthDate, user.IsAdmin).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrAlreadyExists
		}
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// ListPlayers returns every non-admin user with their current balance,
// newest first.
func (repo *Repository) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	query := `
		SELECT u.id, u.login, u.email, COALESCE(b.current_balance, 0), u.created_at
		FROM users u
		LEFT JOIN balances b ON b.user_id = u.id
		WHERE u.is_admin = FALSE
		ORDER BY u.created_at DESC
	`
	rows, err := repo.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("failed to list players", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	players := []domain.Player{}
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.ID, &p.Login, &p.Email, &p.Balance, &p.CreatedAt); err != nil {
			zap.L().Error("failed to scan player row", zap.Error(err))
			return nil, err
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("failed to read player rows", zap.Error(err))
		return nil, err
	}
	return players, nil
}
