// Package view renders deduction results for the terminal.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/hanabi-deduction/internal/game/card"
	"github.com/palemoky/hanabi-deduction/internal/game/variant"
	"github.com/palemoky/hanabi-deduction/internal/ui/common"
)

// IdentityLabel renders an identity as suit abbreviation + rank, e.g. "R3".
func IdentityLabel(v *variant.Variant, id card.Identity) string {
	if id.Suit < 0 || id.Suit >= len(v.Suits) {
		return id.String()
	}
	suit := v.Suits[id.Suit]
	abbr := suit.Abbreviation
	if abbr == "" && suit.Name != "" {
		abbr = suit.Name[:1]
	}
	return common.SuitStyle(suit).Render(abbr + id.Rank.String())
}

// CardLine renders one card: its order, its identity if known and its candidates.
func CardLine(v *variant.Variant, c card.State) string {
	known := "??"
	if id, ok := c.Knowledge.Identity(); ok {
		known = common.KnownStyle.Render(IdentityLabel(v, id))
		if len(c.Possible) > 0 && !c.PossibleContains(id) {
			known += " " + common.ErrorStyle.Render("!")
		}
	}

	var candidates string
	switch len(c.Possible) {
	case 0:
		candidates = common.ErrorStyle.Render("no possible identity")
	default:
		labels := make([]string, len(c.Possible))
		for i, id := range c.Possible {
			labels[i] = IdentityLabel(v, id)
		}
		candidates = strings.Join(labels, " ")
	}
	return fmt.Sprintf("#%-3d %s │ %s", c.Order, known, candidates)
}

// HandsView renders every hand in its own box, viewer's hand first.
func HandsView(v *variant.Variant, hands []card.Hand, deck card.Deck, viewer int) string {
	order := make([]int, 0, len(hands))
	if viewer >= 0 && viewer < len(hands) {
		order = append(order, viewer)
	}
	for i := range hands {
		if i != viewer {
			order = append(order, i)
		}
	}

	boxes := make([]string, 0, len(hands))
	for _, p := range order {
		title := fmt.Sprintf("Player %d", p)
		if p == viewer {
			title += " (viewer)"
		}

		lines := []string{common.TitleStyle(title)}
		if len(hands[p]) == 0 {
			lines = append(lines, common.MutedStyle.Render("empty hand"))
		}
		for _, o := range hands[p] {
			lines = append(lines, CardLine(v, deck[o]))
		}
		boxes = append(boxes, common.BoxFor(p == viewer).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}

// GameView renders a header with the variant and pile size, then the hands.
func GameView(v *variant.Variant, hands []card.Hand, deck card.Deck, viewer int) string {
	held := card.Held(hands)
	header := fmt.Sprintf("%s · %d/%d cards drawn · %d out of hand",
		v.Name, len(deck), v.TotalCards(), len(deck)-len(held))
	return common.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		common.TitleStyle(header),
		HandsView(v, hands, deck, viewer),
	))
}
