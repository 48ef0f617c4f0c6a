package card

import (
	"fmt"
	"strconv"
)

// Rank 定义点数
type Rank int

const (
	Rank1 Rank = iota + 1
	Rank2
	Rank3
	Rank4
	Rank5

	// StartRank 是 Up or Down 变体中的起始牌
	StartRank Rank = 7
)

func (r Rank) String() string {
	if r == StartRank {
		return "S"
	}
	return strconv.Itoa(int(r))
}

// Identity 一张牌的身份：花色下标 + 点数
type Identity struct {
	Suit int  `json:"suit" yaml:"suit"`
	Rank Rank `json:"rank" yaml:"rank"`
}

func (id Identity) String() string {
	return fmt.Sprintf("%d:%s", id.Suit, id.Rank)
}

// Knowledge 表示一张牌的身份是否对旁观者可见。
// 零值为 Unknown。
type Knowledge struct {
	id    Identity
	known bool
}

// Known 返回身份已完全确定的 Knowledge
func Known(id Identity) Knowledge {
	return Knowledge{id: id, known: true}
}

// Unknown 返回身份不可见的 Knowledge
func Unknown() Knowledge {
	return Knowledge{}
}

// Identity 返回已知身份；未知时 ok 为 false
func (k Knowledge) Identity() (id Identity, ok bool) {
	return k.id, k.known
}

// IsKnown 身份是否已知
func (k Knowledge) IsKnown() bool {
	return k.known
}

func (k Knowledge) String() string {
	if !k.known {
		return "?"
	}
	return k.id.String()
}

// State 牌堆中一张牌的状态，以摸牌顺序 Order 为键。
// Possible 切片只会被整体替换，从不原地修改。
type State struct {
	Order     int
	Knowledge Knowledge
	Possible  []Identity
}

// PossibleContains 判断候选集合中是否包含 id
func (s State) PossibleContains(id Identity) bool {
	for _, p := range s.Possible {
		if p == id {
			return true
		}
	}
	return false
}

// Deck 按摸牌顺序排列的全部牌
type Deck []State

// Clone 返回一份结构独立的牌堆副本
func (d Deck) Clone() Deck {
	out := make(Deck, len(d))
	copy(out, d)
	return out
}

// Hand 一名玩家当前持有的牌（Order 列表）
type Hand []int

// Contains 判断手牌中是否有指定 Order
func (h Hand) Contains(order int) bool {
	for _, o := range h {
		if o == order {
			return true
		}
	}
	return false
}

// Without 返回移除指定 Order 后的新手牌
func (h Hand) Without(order int) Hand {
	out := make(Hand, 0, len(h))
	for _, o := range h {
		if o != order {
			out = append(out, o)
		}
	}
	return out
}

// Held 返回所有手牌中持有的 Order 集合
func Held(hands []Hand) map[int]int {
	held := make(map[int]int)
	for i, hand := range hands {
		for _, o := range hand {
			held[o] = i
		}
	}
	return held
}
