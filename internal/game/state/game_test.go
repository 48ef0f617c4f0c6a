package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/hanabi-deduction/internal/apperrors"
	"github.com/palemoky/hanabi-deduction/internal/game/action"
	"github.com/palemoky/hanabi-deduction/internal/game/card"
	"github.com/palemoky/hanabi-deduction/internal/game/variant"
)

func intp(n int) *int { return &n }

func draw(player, order int, id *card.Identity) action.Action {
	a := action.Action{Type: action.Draw, Player: player, Order: order}
	if id != nil {
		a.Suit = intp(id.Suit)
		a.Rank = intp(int(id.Rank))
	}
	return a
}

func newTestGame(t *testing.T, variantName string) *Game {
	t.Helper()
	v, err := variant.Builtin().Get(variantName)
	require.NoError(t, err)
	g, err := NewGame(v, 2, 0, nil)
	require.NoError(t, err)
	return g
}

// dealBasic gives the viewer orders 0,1 (unseen) and player 1 orders 2,3 (R5, B1).
func dealBasic(t *testing.T, g *Game) {
	t.Helper()
	require.NoError(t, g.Apply(draw(0, 0, nil)))
	require.NoError(t, g.Apply(draw(0, 1, nil)))
	require.NoError(t, g.Apply(draw(1, 2, &card.Identity{Suit: 0, Rank: card.Rank5})))
	require.NoError(t, g.Apply(draw(1, 3, &card.Identity{Suit: 3, Rank: card.Rank1})))
}

func TestGame_DrawAndDeduce(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, "No Variant")
	dealBasic(t, g)

	assert.Equal(t, []card.Hand{{0, 1}, {2, 3}}, g.Hands)
	require.Len(t, g.Deck, 4)
	assert.Len(t, g.Deck[0].Possible, 24, "the only red 5 is visible in player 1's hand")
	assert.NotContains(t, g.Deck[0].Possible, card.Identity{Suit: 0, Rank: card.Rank5})
}

func TestGame_Clues(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, "No Variant")
	dealBasic(t, g)

	require.NoError(t, g.Apply(action.Action{
		Type: action.Clue, Player: 1, Target: 0, List: []int{0},
		Clue: &action.ClueValue{Kind: action.RankClue, Rank: card.Rank1},
	}))
	assert.Len(t, g.Deck[0].Possible, 5)
	assert.Len(t, g.Deck[1].Possible, 19)

	require.NoError(t, g.Apply(action.Action{
		Type: action.Clue, Player: 1, Target: 0, List: []int{1},
		Clue: &action.ClueValue{Kind: action.ColorClue, Color: "Red"},
	}))
	assert.Equal(t, []card.Identity{{Suit: 0, Rank: card.Rank2}, {Suit: 0, Rank: card.Rank3}, {Suit: 0, Rank: card.Rank4}},
		g.Deck[1].Possible)
	assert.Len(t, g.Deck[0].Possible, 4, "touched one cannot be red after a red clue missed it")
}

func TestGame_PlayAndDiscard(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, "No Variant")
	dealBasic(t, g)

	play := action.Action{Type: action.Play, Player: 1, Order: 2, Suit: intp(0), Rank: intp(5)}
	require.NoError(t, g.Apply(play))
	assert.Equal(t, card.Hand{3}, g.Hands[1])
	assert.NotContains(t, g.Deck[0].Possible, card.Identity{Suit: 0, Rank: card.Rank5}, "played red 5 is still accounted for")

	discard := action.Action{Type: action.Discard, Player: 0, Order: 0, Suit: intp(4), Rank: intp(2)}
	require.NoError(t, g.Apply(discard))
	assert.Equal(t, card.Hand{1}, g.Hands[0])
	id, ok := g.Deck[0].Knowledge.Identity()
	assert.True(t, ok)
	assert.Equal(t, card.Identity{Suit: 4, Rank: card.Rank2}, id)
}

func TestGame_CardIdentity(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, "No Variant")
	dealBasic(t, g)

	require.NoError(t, g.Apply(action.Action{Type: action.CardIdentity, Order: 1, Suit: intp(2), Rank: intp(3)}))
	assert.True(t, g.Deck[1].Knowledge.IsKnown())
	// the viewer's own annotation never removes copies from their own view
	assert.Len(t, g.Deck[1].Possible, 24)
}

func TestGame_PassThroughActions(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, "No Variant")
	dealBasic(t, g)
	before := g.Deck.Clone()

	require.NoError(t, g.Apply(action.Action{Type: action.Status}))
	require.NoError(t, g.Apply(action.Action{Type: action.Turn}))
	assert.Equal(t, before, g.Deck)
}

func TestGame_RainbowTouchedByEveryColor(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, "Rainbow (6 Suits)")
	require.NoError(t, g.Apply(draw(0, 0, nil)))
	require.NoError(t, g.Apply(draw(1, 1, nil)))

	require.NoError(t, g.Apply(action.Action{
		Type: action.Clue, Player: 1, Target: 0, List: []int{0},
		Clue: &action.ClueValue{Kind: action.ColorClue, Color: "Blue"},
	}))
	for _, id := range g.Deck[0].Possible {
		assert.Contains(t, []int{3, 5}, id.Suit)
	}
	assert.Len(t, g.Deck[0].Possible, 10)
}

func TestGame_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		action action.Action
		target *apperrors.GameError
	}{
		{"draw out of order", draw(0, 7, nil), apperrors.ErrBadOrder},
		{"draw to missing player", draw(5, 4, nil), apperrors.ErrBadAction},
		{"draw undefined card", draw(0, 4, &card.Identity{Suit: 9, Rank: card.Rank1}), apperrors.ErrUndefinedCard},
		{"play card not held", action.Action{Type: action.Play, Order: 42}, apperrors.ErrBadOrder},
		{"identity of missing card", action.Action{Type: action.CardIdentity, Order: 42}, apperrors.ErrBadOrder},
		{"clue without value", action.Action{Type: action.Clue, Target: 0}, apperrors.ErrBadAction},
		{"clue unknown color", action.Action{Type: action.Clue, Target: 0, Clue: &action.ClueValue{Kind: action.ColorClue, Color: "Teal"}}, apperrors.ErrBadAction},
		{"clue touching other hand", action.Action{Type: action.Clue, Target: 0, List: []int{2}, Clue: &action.ClueValue{Kind: action.RankClue, Rank: card.Rank1}}, apperrors.ErrBadOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := newTestGame(t, "No Variant")
			dealBasic(t, g)
			before := g.Snapshot()

			err := g.Apply(tt.action)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
			assert.Equal(t, before, g.Snapshot(), "failed action must not change state")
		})
	}
}

func TestGame_SnapshotRestore(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, "No Variant")
	dealBasic(t, g)

	snap := g.Snapshot()
	restored, err := Restore(snap, variant.Builtin(), nil)
	require.NoError(t, err)
	assert.Equal(t, g.Hands, restored.Hands)
	assert.Equal(t, g.Deck, restored.Deck)
	assert.Equal(t, g.Variant.Name, restored.Variant.Name)

	require.NoError(t, restored.Apply(draw(1, 4, &card.Identity{Suit: 1, Rank: card.Rank2})))
	assert.Len(t, g.Deck, 4, "restored game must not share state with the original")

	_, err = Restore(&Snapshot{Variant: "Nope"}, variant.Builtin(), nil)
	assert.True(t, errors.Is(err, apperrors.ErrUnknownVariant))
}

func TestRestore_RejectsCorruptSnapshot(t *testing.T) {
	t.Parallel()

	universe := func() []card.Identity {
		v, err := variant.Builtin().Get("No Variant")
		require.NoError(t, err)
		return v.Universe()
	}()

	tests := []struct {
		name string
		snap *Snapshot
		want error
	}{
		{
			name: "hand holds a card beyond the deck",
			snap: &Snapshot{Variant: "No Variant", Hands: []card.Hand{{5}, {}}},
			want: apperrors.ErrBadOrder,
		},
		{
			name: "negative order in hand",
			snap: &Snapshot{Variant: "No Variant", Hands: []card.Hand{{-1}, {}}, Deck: card.Deck{{Order: 0, Possible: universe}}},
			want: apperrors.ErrBadOrder,
		},
		{
			name: "card held twice",
			snap: &Snapshot{Variant: "No Variant", Hands: []card.Hand{{0}, {0}}, Deck: card.Deck{{Order: 0, Possible: universe}}},
			want: apperrors.ErrBadOrder,
		},
		{
			name: "deck out of order",
			snap: &Snapshot{Variant: "No Variant", Hands: []card.Hand{{}, {}}, Deck: card.Deck{{Order: 1, Possible: universe}}},
			want: apperrors.ErrBadOrder,
		},
		{
			name: "known identity outside variant",
			snap: &Snapshot{Variant: "No Variant", Hands: []card.Hand{{0}, {}}, Deck: card.Deck{
				{Order: 0, Knowledge: card.Known(card.Identity{Suit: 7, Rank: card.Rank1}), Possible: universe},
			}},
			want: apperrors.ErrUndefinedCard,
		},
		{
			name: "candidate outside variant",
			snap: &Snapshot{Variant: "No Variant", Hands: []card.Hand{{0}, {}}, Deck: card.Deck{
				{Order: 0, Possible: []card.Identity{{Suit: 0, Rank: card.StartRank}}},
			}},
			want: apperrors.ErrUndefinedCard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Restore(tt.snap, variant.Builtin(), nil)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestRestore_PlayAfterRestoreReturnsError(t *testing.T) {
	t.Parallel()

	// 恢复失败时不会得到可以 Apply 的对局
	g, err := Restore(&Snapshot{Variant: "No Variant", Hands: []card.Hand{{5}, {}}}, variant.Builtin(), nil)
	require.Error(t, err)
	assert.Nil(t, g)

	snap := &Snapshot{Variant: "No Variant", Hands: []card.Hand{{}, {}}}
	g, err = Restore(snap, variant.Builtin(), nil)
	require.NoError(t, err)
	err = g.Apply(action.Action{Type: action.Play, Order: 5, Suit: intp(0), Rank: intp(1)})
	assert.True(t, errors.Is(err, apperrors.ErrBadOrder))
}

func TestNewGame_TooFewPlayers(t *testing.T) {
	t.Parallel()

	v, err := variant.Builtin().Get("No Variant")
	require.NoError(t, err)
	_, err = NewGame(v, 1, 0, nil)
	assert.True(t, errors.Is(err, apperrors.ErrBadAction))
}
