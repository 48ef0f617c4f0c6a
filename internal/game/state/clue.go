package state

import (
	"slices"

	"github.com/palemoky/hanabi-deduction/internal/game/action"
	"github.com/palemoky/hanabi-deduction/internal/game/card"
	"github.com/palemoky/hanabi-deduction/internal/game/variant"
)

// touches 判断提示是否会触及身份为 id 的牌
func touches(v *variant.Variant, clue action.ClueValue, id card.Identity) bool {
	suit := v.Suits[id.Suit]
	switch clue.Kind {
	case action.ColorClue:
		if v.ColorCluesTouchNothing || suit.NoClueColors {
			return false
		}
		return suit.AllClueColors || slices.Contains(suit.ClueColors, clue.Color)
	case action.RankClue:
		if v.RankCluesTouchNothing || suit.NoClueRanks || id.Rank == card.StartRank {
			return false
		}
		return suit.AllClueRanks || id.Rank == clue.Rank
	}
	return false
}

// validClue 检查提示内容是否可以在该变体中给出
func validClue(v *variant.Variant, clue action.ClueValue) bool {
	switch clue.Kind {
	case action.ColorClue:
		return slices.Contains(v.ClueColors(), clue.Color)
	case action.RankClue:
		return slices.Contains(v.ClueRanks, clue.Rank)
	}
	return false
}

// filterByClue 被触及的牌保留会被触及的候选，未被触及的保留不会被触及的候选
func filterByClue(v *variant.Variant, clue action.ClueValue, possible []card.Identity, touched bool) []card.Identity {
	out := make([]card.Identity, 0, len(possible))
	for _, id := range possible {
		if touches(v, clue, id) == touched {
			out = append(out, id)
		}
	}
	return out
}
