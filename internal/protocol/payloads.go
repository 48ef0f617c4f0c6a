package protocol

import "github.com/palemoky/hanabi-deduction/internal/game/action"

// CreateGamePayload 创建对局请求
type CreateGamePayload struct {
	Variant string `json:"variant"`
	Players int    `json:"players"`
	Viewer  int    `json:"viewer"`
}

// GameCreatedPayload 对局创建成功
type GameCreatedPayload struct {
	GameID  string `json:"game_id"`
	Variant string `json:"variant"`
}

// ActionPayload 提交一个游戏动作
type ActionPayload struct {
	GameID string        `json:"game_id"`
	Action action.Action `json:"action"`
}

// GetDeckPayload 查询牌堆
type GetDeckPayload struct {
	GameID string `json:"game_id"`
}

// CloseGamePayload 结束对局请求，回复 game_closed 时复用
type CloseGamePayload struct {
	GameID string `json:"game_id"`
}

// CardInfo 一张牌及其候选身份
type CardInfo struct {
	Order    int      `json:"order"`
	Suit     *int     `json:"suit,omitempty"`
	Rank     *int     `json:"rank,omitempty"`
	Possible [][2]int `json:"possible"`
}

// DeckPayload 推理后的牌堆
type DeckPayload struct {
	GameID string     `json:"game_id"`
	Hands  [][]int    `json:"hands"`
	Cards  []CardInfo `json:"cards"`
}

// PingPayload 心跳
type PingPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

// ErrorPayload 错误
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
