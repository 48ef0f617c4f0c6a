package action

import "github.com/palemoky/hanabi-deduction/internal/game/card"

// Type 动作类型
type Type string

const (
	CardIdentity Type = "cardIdentity" // 揭示牌面
	Clue         Type = "clue"         // 提示
	Discard      Type = "discard"      // 弃牌
	Play         Type = "play"         // 打出
	Draw         Type = "draw"         // 摸牌
	Status       Type = "status"       // 线索/分数状态
	Turn         Type = "turn"         // 回合切换
	Strike       Type = "strike"       // 失误
	GameOver     Type = "gameOver"     // 游戏结束
)

// ChangesCardInfo 该动作是否改变了可见或已知的牌面信息
func (t Type) ChangesCardInfo() bool {
	switch t {
	case CardIdentity, Clue, Discard, Play, Draw:
		return true
	}
	return false
}

// ClueKind 提示种类
type ClueKind string

const (
	ColorClue ClueKind = "color"
	RankClue  ClueKind = "rank"
)

// ClueValue 提示内容
type ClueValue struct {
	Kind  ClueKind  `json:"kind" yaml:"kind"`
	Color string    `json:"color,omitempty" yaml:"color,omitempty"`
	Rank  card.Rank `json:"rank,omitempty" yaml:"rank,omitempty"`
}

// Action 一次游戏事件。Suit/Rank 为空表示该牌对接收者不可见。
type Action struct {
	Type   Type       `json:"type" yaml:"type"`
	Player int        `json:"player" yaml:"player"`
	Target int        `json:"target" yaml:"target"`
	Order  int        `json:"order" yaml:"order"`
	Suit   *int       `json:"suit,omitempty" yaml:"suit,omitempty"`
	Rank   *int       `json:"rank,omitempty" yaml:"rank,omitempty"`
	Clue   *ClueValue `json:"clue,omitempty" yaml:"clue,omitempty"`
	List   []int      `json:"list,omitempty" yaml:"list,omitempty"`
}

// Knowledge 将 Suit/Rank 转为 card.Knowledge
func (a Action) Knowledge() card.Knowledge {
	if a.Suit == nil || a.Rank == nil {
		return card.Unknown()
	}
	return card.Known(card.Identity{Suit: *a.Suit, Rank: card.Rank(*a.Rank)})
}
