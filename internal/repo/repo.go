package repo

import (
	"github.com/GlebRadaev/steake/internal/pg"
	balancerepo "github.com/GlebRadaev/steake/internal/repo/balance-repo"
	gamerepo "github.com/GlebRadaev/steake/internal/repo/game-repo"
	transactionrepo "github.com/GlebRadaev/steake/internal/repo/transaction-repo"
	userrepo "github.com/GlebRadaev/steake/internal/repo/user-repo"
	withdrawalrepo "github.com/GlebRadaev/steake/internal/repo/withdrawal-repo"
	"github.com/GlebRadaev/steake/internal/service/adminservice"
	"github.com/GlebRadaev/steake/internal/service/authservice"
	"github.com/GlebRadaev/steake/internal/service/balanceservice"
	"github.com/GlebRadaev/steake/internal/service/ledgerservice"
)

type UserRepo interface {
	authservice.Repo
	adminservice.UserRepo
}

type BalanceRepo interface {
	balanceservice.BalanceRepo
	ledgerservice.BalanceRepo
}

type TransactionRepo interface {
	balanceservice.TransactionRepo
	ledgerservice.TransactionRepo
}

type GameRepo interface {
	balanceservice.GameRepo
	ledgerservice.GameRepo
	adminservice.GameRepo
}

type Repositories struct {
	UserRepo     UserRepo
	BalanceRepo  BalanceRepo
	Withdrawal   balanceservice.WithdrawalRepo
	Transactions TransactionRepo
	Games        GameRepo
	TxManager    pg.TXManager
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:     userrepo.New(conn),
		BalanceRepo:  balancerepo.New(conn, txManager),
		Withdrawal:   withdrawalrepo.New(conn),
		Transactions: transactionrepo.New(conn),
		Games:        gamerepo.New(conn),
		TxManager:    txManager,
	}
}
