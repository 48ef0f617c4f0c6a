package deduction

import (
	"github.com/palemoky/hanabi-deduction/internal/game/card"
	"github.com/palemoky/hanabi-deduction/internal/game/variant"
)

// possible reports whether one copy of id can be consumed from counts while
// still leaving a simultaneous assignment for every candidate list in rest.
//
// counts is shared scratch space. Every decrement made here is undone before
// returning, so the table is unchanged once possible returns.
func possible(id card.Identity, rest [][]card.Identity, counts variant.CountTable) bool {
	return counts.Take(id, func() bool {
		return assignable(rest, 0, counts)
	})
}

// assignable reports whether rest[i:] can all be given an identity from their
// own lists without running any count below zero. Stops at the first success.
func assignable(rest [][]card.Identity, i int, counts variant.CountTable) bool {
	if i == len(rest) {
		return true
	}
	for _, id := range rest[i] {
		ok := counts.Take(id, func() bool {
			return assignable(rest, i+1, counts)
		})
		if ok {
			return true
		}
	}
	return false
}
