// Package blackjack plays single-hand blackjack against a dealer who stands
// on 17.
package blackjack

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/steake/internal/domain"
	"github.com/GlebRadaev/steake/internal/game"
)

type Phase string

const (
	PhaseDealt      Phase = "dealt"
	PhasePlayerTurn Phase = "playerTurn"
	PhaseDealerTurn Phase = "dealerTurn"
	PhaseSettled    Phase = "settled"
)

const (
	ActionDeal   = "deal"
	ActionHit    = "hit"
	ActionStand  = "stand"
	ActionDouble = "double"
)

const (
	ResultBlackjack = "blackjack"
	ResultWin       = "win"
	ResultLose      = "lose"
	ResultPush      = "push"
	ResultBust      = "bust"
)

const dealerStandsOn = 17

var payouts = map[string]decimal.Decimal{
	ResultBlackjack: decimal.RequireFromString("2.5"),
	ResultWin:       decimal.NewFromInt(2),
	ResultPush:      decimal.NewFromInt(1),
	ResultLose:      decimal.Zero,
	ResultBust:      decimal.Zero,
}

type round struct {
	ID        string          `json:"id"`
	UserID    int             `json:"userId"`
	Bet       decimal.Decimal `json:"bet"`
	Phase     Phase           `json:"phase"`
	Deck      []domain.Card   `json:"deck"`
	Player    []domain.Card   `json:"player"`
	Dealer    []domain.Card   `json:"dealer"`
	CanDouble bool            `json:"canDouble"`
}

func (r *round) Owner() int { return r.UserID }

func (r *round) draw() domain.Card {
	c := r.Deck[0]
	r.Deck = r.Deck[1:]
	return c
}

// playDealer reveals the hole card and draws until the dealer stands.
func (r *round) playDealer() {
	r.Phase = PhaseDealerTurn
	for HandValue(r.Dealer) < dealerStandsOn {
		r.Dealer = append(r.Dealer, r.draw())
	}
}

func (r *round) compare() string {
	player, dealer := HandValue(r.Player), HandValue(r.Dealer)
	switch {
	case dealer > 21:
		return ResultWin
	case player > dealer:
		return ResultWin
	case player < dealer:
		return ResultLose
	default:
		return ResultPush
	}
}

// View is what the player sees. While the player is still acting only the
// dealer's up card is shown.
type View struct {
	RoundID     string          `json:"roundId"`
	Phase       Phase           `json:"phase"`
	Bet         decimal.Decimal `json:"betAmount"`
	PlayerCards []domain.Card   `json:"playerCards"`
	DealerCards []domain.Card   `json:"dealerCards"`
	PlayerTotal int             `json:"playerTotal"`
	DealerTotal int             `json:"dealerTotal"`
	HoleHidden  bool            `json:"holeHidden"`
	CanDouble   bool            `json:"canDouble"`
	game.Summary
}

func newView(r *round, summary game.Summary) *View {
	v := &View{
		RoundID:     r.ID,
		Phase:       r.Phase,
		Bet:         r.Bet,
		PlayerCards: r.Player,
		DealerCards: r.Dealer,
		PlayerTotal: HandValue(r.Player),
		DealerTotal: HandValue(r.Dealer),
		CanDouble:   r.CanDouble,
		Summary:     summary,
	}
	if r.Phase == PhasePlayerTurn && len(r.Dealer) > 1 {
		v.DealerCards = r.Dealer[:1]
		v.DealerTotal = HandValue(r.Dealer[:1])
		v.HoleHidden = true
	}
	return v
}

type Engine struct {
	table   *game.Table
	newDeck func() []domain.Card
}

func New(table *game.Table, rng game.RNG) *Engine {
	return &Engine{
		table:   table,
		newDeck: func() []domain.Card { return NewDeck(rng) },
	}
}

// Act dispatches a player action. bet is only read by deal.
func (e *Engine) Act(ctx context.Context, userID int, action string, bet decimal.Decimal) (*View, error) {
	switch action {
	case ActionDeal:
		return e.Deal(ctx, userID, bet)
	case ActionHit:
		return e.Hit(ctx, userID)
	case ActionStand:
		return e.Stand(ctx, userID)
	case ActionDouble:
		return e.Double(ctx, userID)
	default:
		return nil, fmt.Errorf("%w: unknown blackjack action %q", game.ErrInvalidAction, action)
	}
}

// Deal debits the bet and deals two cards each. A natural 21 settles at once.
// A deal while a hand is still in play fails with game.ErrInvalidAction; the
// open hand is never replaced and no second bet is taken.
func (e *Engine) Deal(ctx context.Context, userID int, bet decimal.Decimal) (*View, error) {
	if err := game.CheckBet(bet); err != nil {
		return nil, err
	}

	unlock := e.table.Lock(domain.GameBlackjack, userID)
	defer unlock()

	active, err := e.table.Active(ctx, domain.GameBlackjack, userID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, fmt.Errorf("%w: blackjack round already in progress", game.ErrInvalidAction)
	}

	r := &round{ID: uuid.NewString(), UserID: userID, Bet: bet, Phase: PhaseDealt, Deck: e.newDeck()}
	r.Player = []domain.Card{r.draw(), r.draw()}
	r.Dealer = []domain.Card{r.draw(), r.draw()}

	step := game.Step{
		Game:      domain.GameBlackjack,
		UserID:    userID,
		Stake:     bet,
		StakeNote: "Blackjack bet",
		Shortfall: game.ErrInvalidBet,
	}

	if HandValue(r.Player) == 21 {
		result := ResultBlackjack
		if HandValue(r.Dealer) == 21 {
			result = ResultPush
		}
		r.Phase = PhaseSettled
		step.Settle = e.settlement(r, result)
		balance, err := e.table.Apply(ctx, step)
		if err != nil {
			return nil, err
		}
		return newView(r, game.Settled(result, step.Settle.Win, balance)), nil
	}

	r.Phase = PhasePlayerTurn
	r.CanDouble = true
	step.Round = r
	balance, err := e.table.Apply(ctx, step)
	if err != nil {
		return nil, err
	}
	zap.L().Debug("blackjack dealt", zap.String("round", r.ID), zap.Int("userID", userID), zap.String("bet", bet.StringFixed(2)))
	return newView(r, game.Open(decimal.NewNullDecimal(balance))), nil
}

// Hit draws one card. Going over 21 busts and settles the round.
func (e *Engine) Hit(ctx context.Context, userID int) (*View, error) {
	unlock := e.table.Lock(domain.GameBlackjack, userID)
	defer unlock()

	r, err := e.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if r.Phase != PhasePlayerTurn {
		return nil, fmt.Errorf("%w: can't hit in phase %s", game.ErrInvalidAction, r.Phase)
	}

	r.Player = append(r.Player, r.draw())
	r.CanDouble = false

	if HandValue(r.Player) > 21 {
		return e.finish(ctx, r, game.Step{}, ResultBust)
	}
	if err := e.table.Save(ctx, domain.GameBlackjack, userID, r); err != nil {
		return nil, err
	}
	return newView(r, game.Open(decimal.NullDecimal{})), nil
}

// Stand hands over to the dealer and settles.
func (e *Engine) Stand(ctx context.Context, userID int) (*View, error) {
	unlock := e.table.Lock(domain.GameBlackjack, userID)
	defer unlock()

	r, err := e.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if r.Phase != PhasePlayerTurn {
		return nil, fmt.Errorf("%w: can't stand in phase %s", game.ErrInvalidAction, r.Phase)
	}

	r.playDealer()
	return e.finish(ctx, r, game.Step{}, r.compare())
}

// Double debits the bet a second time, draws exactly one card and settles.
// Only allowed as the first action after the deal.
func (e *Engine) Double(ctx context.Context, userID int) (*View, error) {
	unlock := e.table.Lock(domain.GameBlackjack, userID)
	defer unlock()

	r, err := e.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if r.Phase != PhasePlayerTurn || !r.CanDouble {
		return nil, fmt.Errorf("%w: double is only allowed right after the deal", game.ErrInvalidAction)
	}

	extra := r.Bet
	r.Bet = r.Bet.Add(extra)
	r.CanDouble = false
	r.Player = append(r.Player, r.draw())

	step := game.Step{
		Stake:     extra,
		StakeNote: "Blackjack double down",
		Shortfall: game.ErrInsufficientBalance,
	}
	if HandValue(r.Player) > 21 {
		return e.finish(ctx, r, step, ResultBust)
	}
	r.playDealer()
	return e.finish(ctx, r, step, r.compare())
}

func (e *Engine) load(ctx context.Context, userID int) (*round, error) {
	var r round
	if err := e.table.Load(ctx, domain.GameBlackjack, userID, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// finish settles r with result, applying any stake carried by step first.
func (e *Engine) finish(ctx context.Context, r *round, step game.Step, result string) (*View, error) {
	r.Phase = PhaseSettled
	step.Game = domain.GameBlackjack
	step.UserID = r.UserID
	step.Settle = e.settlement(r, result)

	balance, err := e.table.Apply(ctx, step)
	if err != nil {
		return nil, err
	}
	return newView(r, game.Settled(result, step.Settle.Win, balance)), nil
}

func (e *Engine) settlement(r *round, result string) *game.Settlement {
	win := r.Bet.Mul(payouts[result]).Round(2)
	return &game.Settlement{
		Bet:     r.Bet,
		Win:     win,
		WinNote: "Blackjack " + result,
		Outcome: domain.BlackjackOutcome{
			PlayerCards: r.Player,
			DealerCards: r.Dealer,
			PlayerTotal: HandValue(r.Player),
			DealerTotal: HandValue(r.Dealer),
			Result:      result,
		},
	}
}
