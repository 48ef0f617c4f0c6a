package protocol

import (
	"encoding/json"
	"fmt"
)

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	MsgCreateGame MessageType = "create_game" // 创建对局
	MsgAction     MessageType = "action"      // 提交动作
	MsgGetDeck    MessageType = "get_deck"    // 查询当前推理结果
	MsgCloseGame  MessageType = "close_game"  // 结束对局
	MsgPing       MessageType = "ping"        // 心跳 ping
)

// 服务端 → 客户端 消息类型
const (
	MsgGameCreated MessageType = "game_created" // 对局创建成功
	MsgDeck        MessageType = "deck"         // 推理后的牌堆
	MsgGameClosed  MessageType = "game_closed"  // 对局已结束
	MsgPong        MessageType = "pong"         // 心跳 pong
	MsgError       MessageType = "error"        // 错误
)

// NewMessage 创建消息
func NewMessage(t MessageType, payload any) (*Message, error) {
	msg := &Message{Type: t}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("序列化 %s 消息失败: %w", t, err)
		}
		msg.Payload = data
	}
	return msg, nil
}

// MustNewMessage 创建消息，失败时 panic（仅用于确定可序列化的负载）
func MustNewMessage(t MessageType, payload any) *Message {
	msg, err := NewMessage(t, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// Encode 编码消息
func Encode(msg *Message) ([]byte, error) {
	return json.Marshal(msg)
}

// Decode 解码消息
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Type == "" {
		return nil, fmt.Errorf("消息缺少类型")
	}
	return &msg, nil
}

// DecodePayload 解析消息负载
func (m *Message) DecodePayload(v any) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("%s 消息缺少负载", m.Type)
	}
	return json.Unmarshal(m.Payload, v)
}
