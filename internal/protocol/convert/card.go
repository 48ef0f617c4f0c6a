package convert

import (
	"github.com/palemoky/hanabi-deduction/internal/game/card"
	"github.com/palemoky/hanabi-deduction/internal/protocol"
)

// StateToInfo 将 card.State 转换为 protocol.CardInfo
func StateToInfo(s card.State) protocol.CardInfo {
	info := protocol.CardInfo{
		Order:    s.Order,
		Possible: make([][2]int, len(s.Possible)),
	}
	if id, ok := s.Knowledge.Identity(); ok {
		suit, rank := id.Suit, int(id.Rank)
		info.Suit = &suit
		info.Rank = &rank
	}
	for i, id := range s.Possible {
		info.Possible[i] = [2]int{id.Suit, int(id.Rank)}
	}
	return info
}

// DeckToInfos 将 card.Deck 转换为 []protocol.CardInfo
func DeckToInfos(deck card.Deck) []protocol.CardInfo {
	infos := make([]protocol.CardInfo, len(deck))
	for i, s := range deck {
		infos[i] = StateToInfo(s)
	}
	return infos
}

// InfoToState 将 protocol.CardInfo 转换为 card.State
func InfoToState(info protocol.CardInfo) card.State {
	s := card.State{
		Order:    info.Order,
		Possible: make([]card.Identity, len(info.Possible)),
	}
	if info.Suit != nil && info.Rank != nil {
		s.Knowledge = card.Known(card.Identity{Suit: *info.Suit, Rank: card.Rank(*info.Rank)})
	}
	for i, p := range info.Possible {
		s.Possible[i] = card.Identity{Suit: p[0], Rank: card.Rank(p[1])}
	}
	return s
}

// InfosToDeck 将 []protocol.CardInfo 转换为 card.Deck
func InfosToDeck(infos []protocol.CardInfo) card.Deck {
	deck := make(card.Deck, len(infos))
	for i, info := range infos {
		deck[i] = InfoToState(info)
	}
	return deck
}

// HandsToOrders 将手牌转换为 Order 列表
func HandsToOrders(hands []card.Hand) [][]int {
	out := make([][]int, len(hands))
	for i, h := range hands {
		out[i] = append([]int{}, h...)
	}
	return out
}

// DeckPayload 构造牌堆消息负载
func DeckPayload(gameID string, hands []card.Hand, deck card.Deck) protocol.DeckPayload {
	return protocol.DeckPayload{
		GameID: gameID,
		Hands:  HandsToOrders(hands),
		Cards:  DeckToInfos(deck),
	}
}
