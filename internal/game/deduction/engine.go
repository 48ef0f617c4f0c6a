// Package deduction works out which identities each held card can still have.
//
// After every event that changes card information the engine solves, for each
// card in each hand, which (suit, rank) candidates admit a complete assignment
// of identities to all undetermined cards without using more physical copies
// than the variant has.
//
// Hands are processed viewer first; later hands then see the viewer's already
// narrowed candidates. This is a fixed-order approximation of what other
// players can deduce, not common-knowledge reasoning.
package deduction

import (
	"fmt"

	"github.com/palemoky/hanabi-deduction/internal/apperrors"
	"github.com/palemoky/hanabi-deduction/internal/game/action"
	"github.com/palemoky/hanabi-deduction/internal/game/card"
	"github.com/palemoky/hanabi-deduction/internal/game/variant"
)

// Engine recomputes candidate identities. It is safe to share between
// goroutines: each call owns its scratch tables and only the count cache is
// shared.
type Engine struct {
	cache *variant.CountCache
}

// NewEngine creates an engine backed by cache. A nil cache gets a private one.
func NewEngine(cache *variant.CountCache) *Engine {
	if cache == nil {
		cache = variant.NewCountCache()
	}
	return &Engine{cache: cache}
}

// Recompute returns a new deck with Possible narrowed for every held card.
//
// For action kinds that do not change card information the input is returned
// as a fresh copy without any deduction. The caller's deck is never modified.
// An empty candidate list in the result means the game state is inconsistent;
// it is reported as data, not as an error.
func (e *Engine) Recompute(hands []card.Hand, deck card.Deck, kind action.Type, v *variant.Variant, viewer int) (card.Deck, error) {
	out := deck.Clone()
	if !kind.ChangesCardInfo() {
		return out, nil
	}

	if err := validate(hands, deck, v); err != nil {
		return nil, err
	}

	counts := e.cache.Get(v)
	resolveVisible(counts, out, hands)

	for _, h := range handOrder(len(hands), viewer) {
		calculateHand(h, hands, out, counts)
	}
	return out, nil
}

// validate rejects inputs that would otherwise index outside the count table
// or silently prune an identity the variant does not define.
func validate(hands []card.Hand, deck card.Deck, v *variant.Variant) error {
	for i, c := range deck {
		if c.Order != i {
			return apperrors.ErrBadOrder.Wrapf("deck position %d holds order %d", i, c.Order)
		}
		if id, ok := c.Knowledge.Identity(); ok && !v.Defines(id) {
			return fmt.Errorf("card %d: %w", c.Order, apperrors.ErrUndefinedCard.Wrapf("%s in %q", id, v.Name))
		}
		for _, id := range c.Possible {
			if !v.Defines(id) {
				return fmt.Errorf("card %d candidate: %w", c.Order, apperrors.ErrUndefinedCard.Wrapf("%s in %q", id, v.Name))
			}
		}
	}
	for p, hand := range hands {
		for _, o := range hand {
			if o < 0 || o >= len(deck) {
				return apperrors.ErrBadOrder.Wrapf("player %d holds order %d, deck has %d cards", p, o, len(deck))
			}
		}
	}
	return nil
}
