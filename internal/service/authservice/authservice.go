package authservice

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/steake/internal/domain"
	"github.com/GlebRadaev/steake/internal/handlers/balance"
	"github.com/GlebRadaev/steake/internal/pg"
	"github.com/GlebRadaev/steake/pkg/auth"
)

//go:generate mockgen -source=authservice.go -destination=mock_authservice.go -package=authservice

type Repo interface {
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

const (
	MinLoginLength    = 3
	MinPasswordLength = 6
	MinAge            = 18
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidLogin       = fmt.Errorf("%w: login must be at least %d characters", ErrInvalidInput, MinLoginLength)
	ErrInvalidEmail       = fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	ErrWeakPassword       = fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	ErrUnderage           = fmt.Errorf("%w: you must be at least %d years old", ErrInvalidInput, MinAge)
	ErrLoginTaken         = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

var adminBirthDate = time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

// AdminSeed describes the administrator created on first start.
type AdminSeed struct {
	Login    string
	Email    string
	Password string
	Balance  decimal.Decimal
}

type Service struct {
	userRepo       Repo
	balanceService balance.Service
	hashService    auth.HashServiceInterface
	jwtService     auth.JWTServiceInterface
	txManager      pg.TXManager
	tokenTTL       time.Duration
	now            func() time.Time
}

func New(repo Repo, balanceService balance.Service, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, txManager pg.TXManager, tokenTTL time.Duration) *Service {
	return &Service{
		userRepo:       repo,
		balanceService: balanceService,
		hashService:    hashService,
		jwtService:     jwtService,
		txManager:      txManager,
		tokenTTL:       tokenTTL,
		now:            time.Now,
	}
}

// ValidateAge reports whether someone born on birthDate is of age at now.
func ValidateAge(birthDate, now time.Time) bool {
	return !birthDate.AddDate(MinAge, 0, 0).After(now)
}

func (s *Service) validate(login, email, password string, birthDate time.Time) error {
	if len(login) < MinLoginLength {
		return ErrInvalidLogin
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	if birthDate.IsZero() || !ValidateAge(birthDate, s.now()) {
		return ErrUnderage
	}
	return nil
}

// Register creates a player and an empty balance in one transaction.
func (s *Service) Register(ctx context.Context, login, email, password string, birthDate time.Time) (*domain.User, error) {
	login = strings.TrimSpace(login)
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validate(login, email, password, birthDate); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("user already exists", zap.String("login", login))
		return nil, ErrLoginTaken
	}
	existingUser, err = s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user by email: ", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}
	user := &domain.User{
		Login:        login,
		Email:        email,
		PasswordHash: hashedPassword,
		BirthDate:    birthDate,
	}
	if err := s.createWithBalance(ctx, user); err != nil {
		return nil, err
	}

	zap.L().Info("user successfully registered", zap.String("login", login))
	return user, nil
}

func (s *Service) createWithBalance(ctx context.Context, user *domain.User) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return ErrLoginTaken
			}
			zap.L().Error("can't create user: ", zap.Error(err))
			return err
		}
		if _, err := s.balanceService.CreateBalance(ctx, user.ID); err != nil {
			zap.L().Error("can't create balance: ", zap.Error(err))
			return err
		}
		return nil
	})
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, strings.TrimSpace(login))
	if err != nil || user == nil {
		zap.L().Info("invalid credentials", zap.String("login", login), zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Info("invalid credentials", zap.String("login", login))
		return nil, ErrInvalidCredentials
	}
	zap.L().Info("user successfully authenticated", zap.String("login", login))
	return user, nil
}

// GenerateToken issues a session token and returns its expiry.
func (s *Service) GenerateToken(user *domain.User) (string, time.Time, error) {
	expirationTime := s.now().Add(s.tokenTTL)

	token, err := s.jwtService.GenerateJWT(auth.Identity{
		UserID:  user.ID,
		Login:   user.Login,
		IsAdmin: user.IsAdmin,
	}, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", time.Time{}, err
	}
	return token, expirationTime, nil
}

func (s *Service) GetUser(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// EnsureAdmin creates the configured administrator unless the login exists.
func (s *Service) EnsureAdmin(ctx context.Context, seed AdminSeed) error {
	if seed.Login == "" {
		return nil
	}
	existing, err := s.userRepo.FindByLogin(ctx, seed.Login)
	if err != nil {
		return err
	}
	if existing != nil {
		if !existing.IsAdmin {
			zap.L().Warn("configured admin login belongs to a player", zap.String("login", seed.Login))
		}
		return nil
	}

	hashedPassword, err := s.hashService.HashPassword(seed.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &domain.User{
		Login:        seed.Login,
		Email:        seed.Email,
		PasswordHash: hashedPassword,
		BirthDate:    adminBirthDate,
		IsAdmin:      true,
	}
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.createWithBalance(ctx, admin); err != nil {
			return err
		}
		if seed.Balance.IsPositive() {
			_, err := s.balanceService.Deposit(ctx, admin.ID, seed.Balance, "Initial admin balance")
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	zap.L().Info("admin user created", zap.String("login", seed.Login))
	return nil
}
