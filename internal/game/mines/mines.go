// Package mines plays a 5x5 grid with hidden mines. Each safe reveal raises
// the cashout multiplier; hitting a mine loses the bet.
package mines

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/steake/internal/domain"
	"github.com/GlebRadaev/steake/internal/game"
)

const (
	GridSize  = 25
	MinMines  = 1
	MaxMines  = 24
	growthCap = 0.8
)

type Phase string

const (
	PhaseActive  Phase = "active"
	PhaseSettled Phase = "settled"
)

const (
	ActionStart   = "start"
	ActionReveal  = "reveal"
	ActionCashout = "cashout"
)

const (
	ResultCashout = "cashout"
	ResultMineHit = "mine_hit"
)

const (
	CellHidden = "hidden"
	CellGem    = "gem"
	CellMine   = "mine"
)

// Multiplier is the cashout multiplier after gems safe reveals with mines
// on the board, rounded to cents.
func Multiplier(gems, mines int) decimal.Decimal {
	m := 1.0
	for i := 0; i < gems; i++ {
		remaining := float64(GridSize - mines - i)
		m *= 1 + (float64(mines)/remaining)*growthCap
	}
	return decimal.NewFromFloat(m).Round(2)
}

type round struct {
	ID         string          `json:"id"`
	UserID     int             `json:"userId"`
	Bet        decimal.Decimal `json:"bet"`
	Phase      Phase           `json:"phase"`
	MinesCount int             `json:"minesCount"`
	Mines      []int           `json:"mines"`
	Revealed   []int           `json:"revealed"`
}

func (r *round) Owner() int { return r.UserID }

func (r *round) gems() int { return len(r.Revealed) }

// View is the player's picture of the board. Mine positions appear only once
// the round is over.
type View struct {
	RoundID    string          `json:"roundId"`
	Phase      Phase           `json:"phase"`
	Bet        decimal.Decimal `json:"betAmount"`
	MinesCount int             `json:"minesCount"`
	GemsFound  int             `json:"gemsFound"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Grid       []string        `json:"grid"`
	Mines      []int           `json:"minePositions,omitempty"`
	game.Summary
}

func newView(r *round, summary game.Summary) *View {
	grid := make([]string, GridSize)
	for i := range grid {
		grid[i] = CellHidden
	}
	for _, c := range r.Revealed {
		grid[c] = CellGem
	}
	v := &View{
		RoundID:    r.ID,
		Phase:      r.Phase,
		Bet:        r.Bet,
		MinesCount: r.MinesCount,
		GemsFound:  r.gems(),
		Multiplier: Multiplier(r.gems(), r.MinesCount),
		Grid:       grid,
		Summary:    summary,
	}
	if r.Phase == PhaseSettled {
		v.Mines = r.Mines
		for _, c := range r.Mines {
			grid[c] = CellMine
		}
	}
	return v
}

type Engine struct {
	table *game.Table
	rng   game.RNG
}

func New(table *game.Table, rng game.RNG) *Engine {
	return &Engine{table: table, rng: rng}
}

// Act dispatches a player action. bet and minesCount are read by start,
// cell by reveal.
func (e *Engine) Act(ctx context.Context, userID int, action string, bet decimal.Decimal, minesCount, cell int) (*View, error) {
	switch action {
	case ActionStart:
		return e.Start(ctx, userID, bet, minesCount)
	case ActionReveal:
		return e.Reveal(ctx, userID, cell)
	case ActionCashout:
		return e.Cashout(ctx, userID)
	default:
		return nil, fmt.Errorf("%w: unknown mines action %q", game.ErrInvalidAction, action)
	}
}

// Start debits the bet and hides minesCount mines on the grid. A start while
// a round is still active fails with game.ErrInvalidAction and leaves that
// round and the balance untouched.
func (e *Engine) Start(ctx context.Context, userID int, bet decimal.Decimal, minesCount int) (*View, error) {
	if err := game.CheckBet(bet); err != nil {
		return nil, err
	}
	if minesCount < MinMines || minesCount > MaxMines {
		return nil, fmt.Errorf("%w: mines count must be between %d and %d", game.ErrInvalidParams, MinMines, MaxMines)
	}

	unlock := e.table.Lock(domain.GameMines, userID)
	defer unlock()

	active, err := e.table.Active(ctx, domain.GameMines, userID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, fmt.Errorf("%w: mines round already in progress", game.ErrInvalidAction)
	}

	r := &round{
		ID:         uuid.NewString(),
		UserID:     userID,
		Bet:        bet,
		Phase:      PhaseActive,
		MinesCount: minesCount,
		Mines:      e.placeMines(minesCount),
		Revealed:   []int{},
	}
	balance, err := e.table.Apply(ctx, game.Step{
		Game:      domain.GameMines,
		UserID:    userID,
		Stake:     bet,
		StakeNote: fmt.Sprintf("Mines game bet - %d mines", minesCount),
		Shortfall: game.ErrInvalidBet,
		Round:     r,
	})
	if err != nil {
		return nil, err
	}
	zap.L().Debug("mines started", zap.String("round", r.ID), zap.Int("userID", userID), zap.Int("mines", minesCount))
	return newView(r, game.Open(decimal.NewNullDecimal(balance))), nil
}

// placeMines draws distinct cells until n are chosen. Returned sorted.
func (e *Engine) placeMines(n int) []int {
	set := make(map[int]struct{}, n)
	for len(set) < n {
		set[e.rng.Intn(GridSize)] = struct{}{}
	}
	cells := make([]int, 0, n)
	for c := range set {
		cells = append(cells, c)
	}
	slices.Sort(cells)
	return cells
}

// Reveal uncovers cell. A mine ends the round with nothing paid.
func (e *Engine) Reveal(ctx context.Context, userID, cell int) (*View, error) {
	if cell < 0 || cell >= GridSize {
		return nil, fmt.Errorf("%w: cell must be between 0 and %d", game.ErrInvalidParams, GridSize-1)
	}

	unlock := e.table.Lock(domain.GameMines, userID)
	defer unlock()

	r, err := e.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if slices.Contains(r.Revealed, cell) {
		return nil, fmt.Errorf("%w: cell %d already revealed", game.ErrInvalidAction, cell)
	}

	if slices.Contains(r.Mines, cell) {
		r.Phase = PhaseSettled
		step := e.settle(r, ResultMineHit, decimal.Zero, decimal.Zero)
		balance, err := e.table.Apply(ctx, step)
		if err != nil {
			return nil, err
		}
		return newView(r, game.Settled(ResultMineHit, decimal.Zero, balance)), nil
	}

	r.Revealed = append(r.Revealed, cell)
	if err := e.table.Save(ctx, domain.GameMines, userID, r); err != nil {
		return nil, err
	}
	return newView(r, game.Open(decimal.NullDecimal{})), nil
}

// Cashout pays bet times the current multiplier. At least one gem must be
// found first.
func (e *Engine) Cashout(ctx context.Context, userID int) (*View, error) {
	unlock := e.table.Lock(domain.GameMines, userID)
	defer unlock()

	r, err := e.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if r.gems() == 0 {
		return nil, fmt.Errorf("%w: reveal at least one gem before cashing out", game.ErrInvalidAction)
	}

	multiplier := Multiplier(r.gems(), r.MinesCount)
	win := r.Bet.Mul(multiplier).Round(2)
	r.Phase = PhaseSettled
	balance, err := e.table.Apply(ctx, e.settle(r, ResultCashout, multiplier, win))
	if err != nil {
		return nil, err
	}
	return newView(r, game.Settled(ResultCashout, win, balance)), nil
}

func (e *Engine) load(ctx context.Context, userID int) (*round, error) {
	var r round
	if err := e.table.Load(ctx, domain.GameMines, userID, &r); err != nil {
		return nil, err
	}
	if r.Phase != PhaseActive {
		return nil, fmt.Errorf("%w: round is %s", game.ErrInvalidAction, r.Phase)
	}
	return &r, nil
}

func (e *Engine) settle(r *round, result string, multiplier, win decimal.Decimal) game.Step {
	return game.Step{
		Game:   domain.GameMines,
		UserID: r.UserID,
		Settle: &game.Settlement{
			Bet:     r.Bet,
			Win:     win,
			WinNote: fmt.Sprintf("Mines game cashout - %d gems found", r.gems()),
			Outcome: domain.MinesOutcome{
				GemsFound:  r.gems(),
				MinesCount: r.MinesCount,
				Multiplier: multiplier,
				Result:     result,
			},
		},
	}
}
