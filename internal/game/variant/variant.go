// Package variant describes Hanabi rule variants: which suits exist, which
// ranks are in play and how many physical copies of each card the deck holds.
package variant

import (
	"slices"

	"github.com/palemoky/hanabi-deduction/internal/apperrors"
	"github.com/palemoky/hanabi-deduction/internal/game/card"
)

// DefaultRanks are the ranks used by every variant that does not override them.
var DefaultRanks = []card.Rank{card.Rank1, card.Rank2, card.Rank3, card.Rank4, card.Rank5}

// Suit is one suit of a variant together with its clue behaviour.
type Suit struct {
	Name          string   `yaml:"name"`
	Abbreviation  string   `yaml:"abbreviation"`
	ClueColors    []string `yaml:"clue_colors"`
	OneOfEach     bool     `yaml:"one_of_each"`
	Reversed      bool     `yaml:"reversed"`
	AllClueColors bool     `yaml:"all_clue_colors"`
	NoClueColors  bool     `yaml:"no_clue_colors"`
	AllClueRanks  bool     `yaml:"all_clue_ranks"`
	NoClueRanks   bool     `yaml:"no_clue_ranks"`
}

// Variant is an immutable rule set. Name is its stable identity.
type Variant struct {
	ID                     int
	Name                   string
	Suits                  []Suit
	Ranks                  []card.Rank
	ClueRanks              []card.Rank
	UpOrDown               bool
	CriticalFours          bool
	ColorCluesTouchNothing bool
	RankCluesTouchNothing  bool
}

// Defines reports whether id names a card that exists in this variant.
func (v *Variant) Defines(id card.Identity) bool {
	return id.Suit >= 0 && id.Suit < len(v.Suits) && slices.Contains(v.Ranks, id.Rank)
}

// NumCopies returns how many physical copies of id are shuffled into the deck.
// Asking for a card the variant does not define is a caller bug and returns
// ErrUndefinedCard rather than zero.
func (v *Variant) NumCopies(id card.Identity) (int, error) {
	if !v.Defines(id) {
		return 0, apperrors.ErrUndefinedCard.Wrapf("variant %q suit %d rank %s", v.Name, id.Suit, id.Rank)
	}

	suit := v.Suits[id.Suit]
	if suit.OneOfEach {
		return 1, nil
	}
	if v.CriticalFours && id.Rank == card.Rank4 {
		return 1, nil
	}

	switch id.Rank {
	case card.Rank1:
		if v.UpOrDown || suit.Reversed {
			return 1, nil
		}
		return 3, nil
	case card.Rank5:
		if suit.Reversed {
			return 3, nil
		}
		return 1, nil
	case card.StartRank:
		return 1, nil
	}
	return 2, nil
}

// MaxRank is the largest rank in play.
func (v *Variant) MaxRank() card.Rank {
	return slices.Max(v.Ranks)
}

// Universe lists every identity the variant defines, suit-major.
// Freshly drawn cards start with this candidate set.
func (v *Variant) Universe() []card.Identity {
	out := make([]card.Identity, 0, len(v.Suits)*len(v.Ranks))
	for s := range v.Suits {
		for _, r := range v.Ranks {
			out = append(out, card.Identity{Suit: s, Rank: r})
		}
	}
	return out
}

// ClueColors lists the distinct colors a player may clue, in suit order.
func (v *Variant) ClueColors() []string {
	var colors []string
	for _, s := range v.Suits {
		for _, c := range s.ClueColors {
			if !slices.Contains(colors, c) {
				colors = append(colors, c)
			}
		}
	}
	return colors
}

// TotalCards is the deck size.
func (v *Variant) TotalCards() int {
	total := 0
	for _, id := range v.Universe() {
		n, _ := v.NumCopies(id)
		total += n
	}
	return total
}
