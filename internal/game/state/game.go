// Package state owns a game's deck and hands and feeds every accepted action
// through the deduction engine.
package state

import (
	"fmt"

	"github.com/palemoky/hanabi-deduction/internal/apperrors"
	"github.com/palemoky/hanabi-deduction/internal/game/action"
	"github.com/palemoky/hanabi-deduction/internal/game/card"
	"github.com/palemoky/hanabi-deduction/internal/game/deduction"
	"github.com/palemoky/hanabi-deduction/internal/game/variant"
	"github.com/palemoky/hanabi-deduction/internal/logger"
)

// Game 一局游戏在某个视角下的状态
type Game struct {
	Variant *variant.Variant
	Deck    card.Deck
	Hands   []card.Hand
	Viewer  int

	engine *deduction.Engine
}

// Snapshot 可持久化的对局状态
type Snapshot struct {
	Variant string
	Viewer  int
	Hands   []card.Hand
	Deck    card.Deck
}

// NewGame 创建空对局
func NewGame(v *variant.Variant, players, viewer int, engine *deduction.Engine) (*Game, error) {
	if players < 2 {
		return nil, apperrors.ErrBadAction.Wrapf("need at least 2 players, got %d", players)
	}
	if engine == nil {
		engine = deduction.NewEngine(nil)
	}
	return &Game{
		Variant: v,
		Hands:   make([]card.Hand, players),
		Viewer:  viewer,
		engine:  engine,
	}, nil
}

// Restore 从快照重建对局
func Restore(snap *Snapshot, catalog *variant.Catalog, engine *deduction.Engine) (*Game, error) {
	v, err := catalog.Get(snap.Variant)
	if err != nil {
		return nil, err
	}
	g, err := NewGame(v, len(snap.Hands), snap.Viewer, engine)
	if err != nil {
		return nil, err
	}
	if err := checkSnapshot(v, snap); err != nil {
		return nil, err
	}
	for i, h := range snap.Hands {
		g.Hands[i] = append(card.Hand(nil), h...)
	}
	g.Deck = snap.Deck.Clone()
	return g, nil
}

// checkSnapshot 快照来自外部存储，恢复前检查牌序、手牌与身份
func checkSnapshot(v *variant.Variant, snap *Snapshot) error {
	for i, c := range snap.Deck {
		if c.Order != i {
			return apperrors.ErrBadOrder.Wrapf("snapshot deck position %d holds order %d", i, c.Order)
		}
		if id, ok := c.Knowledge.Identity(); ok && !v.Defines(id) {
			return apperrors.ErrUndefinedCard.Wrapf("snapshot card %d is %s in %q", i, id, v.Name)
		}
		for _, id := range c.Possible {
			if !v.Defines(id) {
				return apperrors.ErrUndefinedCard.Wrapf("snapshot card %d candidate %s in %q", i, id, v.Name)
			}
		}
	}

	held := make(map[int]bool)
	for p, h := range snap.Hands {
		for _, o := range h {
			if o < 0 || o >= len(snap.Deck) {
				return apperrors.ErrBadOrder.Wrapf("snapshot player %d holds order %d, deck has %d cards", p, o, len(snap.Deck))
			}
			if held[o] {
				return apperrors.ErrBadOrder.Wrapf("snapshot card %d is held twice", o)
			}
			held[o] = true
		}
	}
	return nil
}

// Snapshot 导出当前状态
func (g *Game) Snapshot() *Snapshot {
	hands := make([]card.Hand, len(g.Hands))
	for i, h := range g.Hands {
		hands[i] = append(card.Hand(nil), h...)
	}
	return &Snapshot{Variant: g.Variant.Name, Viewer: g.Viewer, Hands: hands, Deck: g.Deck.Clone()}
}

// Apply 执行一个动作并重新推理
func (g *Game) Apply(a action.Action) error {
	hands, deck, err := g.reduce(a)
	if err != nil {
		return err
	}

	deck, err = g.engine.Recompute(hands, deck, a.Type, g.Variant, g.Viewer)
	if err != nil {
		return fmt.Errorf("recompute after %s: %w", a.Type, err)
	}

	g.Hands = hands
	g.Deck = deck
	g.reportContradictions()
	return nil
}

// reduce 在副本上应用动作，失败时不影响当前状态
func (g *Game) reduce(a action.Action) ([]card.Hand, card.Deck, error) {
	hands := make([]card.Hand, len(g.Hands))
	copy(hands, g.Hands)
	deck := g.Deck.Clone()

	switch a.Type {
	case action.Draw:
		if err := g.checkPlayer(a.Player); err != nil {
			return nil, nil, err
		}
		if a.Order != len(deck) {
			return nil, nil, apperrors.ErrBadOrder.Wrapf("draw order %d, next is %d", a.Order, len(deck))
		}
		k := a.Knowledge()
		if err := g.checkKnowledge(k); err != nil {
			return nil, nil, err
		}
		deck = append(deck, card.State{Order: a.Order, Knowledge: k, Possible: g.Variant.Universe()})
		hands[a.Player] = append(append(card.Hand(nil), hands[a.Player]...), a.Order)

	case action.Play, action.Discard:
		owner, err := g.owner(a.Order)
		if err != nil {
			return nil, nil, err
		}
		hands[owner] = hands[owner].Without(a.Order)
		if err := g.reveal(deck, a); err != nil {
			return nil, nil, err
		}

	case action.CardIdentity:
		if a.Order < 0 || a.Order >= len(deck) {
			return nil, nil, apperrors.ErrBadOrder.Wrapf("no card %d", a.Order)
		}
		if err := g.reveal(deck, a); err != nil {
			return nil, nil, err
		}

	case action.Clue:
		if err := g.applyClue(hands, deck, a); err != nil {
			return nil, nil, err
		}
	}
	return hands, deck, nil
}

func (g *Game) applyClue(hands []card.Hand, deck card.Deck, a action.Action) error {
	if a.Clue == nil || !validClue(g.Variant, *a.Clue) {
		return apperrors.ErrBadAction.Wrapf("clue %+v not allowed in %q", a.Clue, g.Variant.Name)
	}
	if err := g.checkPlayer(a.Target); err != nil {
		return err
	}
	for _, o := range a.List {
		if !hands[a.Target].Contains(o) {
			return apperrors.ErrBadOrder.Wrapf("clued card %d is not in player %d's hand", o, a.Target)
		}
	}
	touched := card.Hand(a.List)
	for _, o := range hands[a.Target] {
		deck[o].Possible = filterByClue(g.Variant, *a.Clue, deck[o].Possible, touched.Contains(o))
	}
	return nil
}

// reveal 揭示牌面，未提供身份时保持原状
func (g *Game) reveal(deck card.Deck, a action.Action) error {
	k := a.Knowledge()
	if !k.IsKnown() {
		return nil
	}
	if err := g.checkKnowledge(k); err != nil {
		return err
	}
	deck[a.Order].Knowledge = k
	return nil
}

func (g *Game) checkKnowledge(k card.Knowledge) error {
	if id, ok := k.Identity(); ok && !g.Variant.Defines(id) {
		return apperrors.ErrUndefinedCard.Wrapf("%s in %q", id, g.Variant.Name)
	}
	return nil
}

func (g *Game) checkPlayer(p int) error {
	if p < 0 || p >= len(g.Hands) {
		return apperrors.ErrBadAction.Wrapf("no player %d", p)
	}
	return nil
}

func (g *Game) owner(order int) (int, error) {
	for i, h := range g.Hands {
		if h.Contains(order) {
			return i, nil
		}
	}
	return 0, apperrors.ErrBadOrder.Wrapf("card %d is not in any hand", order)
}

func (g *Game) reportContradictions() {
	for p, h := range g.Hands {
		for _, o := range h {
			if len(g.Deck[o].Possible) == 0 {
				logger.LogError("variant %q: player %d card %d has no possible identity", g.Variant.Name, p, o)
			}
		}
	}
}
