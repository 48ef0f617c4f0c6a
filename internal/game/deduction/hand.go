package deduction

import (
	"github.com/palemoky/hanabi-deduction/internal/game/card"
	"github.com/palemoky/hanabi-deduction/internal/game/variant"
)

// resolveVisible removes from counts every fully known card that nobody holds
// (played, discarded, or otherwise out of the hands).
// Held cards are left alone since their visibility depends on the viewer.
func resolveVisible(counts variant.CountTable, deck card.Deck, hands []card.Hand) {
	held := card.Held(hands)
	for _, c := range deck {
		if _, ok := held[c.Order]; ok {
			continue
		}
		if id, ok := c.Knowledge.Identity(); ok {
			counts.Dec(id)
		}
	}
}

// calculateHand narrows Possible for every card in hands[focal], writing the
// results into deck. counts is not modified.
//
// Known cards in other hands are taken out of a private copy of counts. The
// focal hand's cards and every unknown card elsewhere form the undetermined
// pool, each contributing whatever Possible it currently has in deck.
func calculateHand(focal int, hands []card.Hand, deck card.Deck, counts variant.CountTable) {
	remaining := counts.Clone()

	var pool []int
	for i, hand := range hands {
		for _, o := range hand {
			id, known := deck[o].Knowledge.Identity()
			if i == focal || !known {
				pool = append(pool, o)
				continue
			}
			remaining.Dec(id)
		}
	}

	for _, o := range hands[focal] {
		others := make([][]card.Identity, 0, len(pool))
		for _, p := range pool {
			if p != o {
				others = append(others, deck[p].Possible)
			}
		}

		narrowed := make([]card.Identity, 0, len(deck[o].Possible))
		for _, id := range deck[o].Possible {
			if possible(id, others, remaining) {
				narrowed = append(narrowed, id)
			}
		}
		deck[o].Possible = narrowed
	}
}

// handOrder returns the viewer's hand first, then the rest in seat order.
// A viewer outside the table (a spectator) just gets seat order.
func handOrder(players, viewer int) []int {
	order := make([]int, 0, players)
	if viewer >= 0 && viewer < players {
		order = append(order, viewer)
	}
	for i := range players {
		if i != viewer {
			order = append(order, i)
		}
	}
	return order
}
