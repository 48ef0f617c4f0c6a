// Package client talks to the deduction service over websocket.
package client

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/hanabi-deduction/internal/apperrors"
	"github.com/palemoky/hanabi-deduction/internal/game/action"
	"github.com/palemoky/hanabi-deduction/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	handshakeTimeout = 10 * time.Second
)

var (
	ErrClosed     = errors.New("connection closed")
	ErrBufferFull = errors.New("send buffer full")
)

// Client WebSocket 客户端。Call 串行执行，服务端按请求顺序回复。
type Client struct {
	ServerURL string
	conn      *websocket.Conn
	send      chan []byte
	receive   chan *protocol.Message
	done      chan struct{}

	// 网络延迟（毫秒），由 pong 消息更新
	latency atomic.Int64

	OnError func(error) // 连接异常回调

	callMu    sync.Mutex
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// NewClient 创建客户端
func NewClient(serverURL string) *Client {
	return &Client{
		ServerURL: serverURL,
		send:      make(chan []byte, 256),
		receive:   make(chan *protocol.Message, 256),
		done:      make(chan struct{}),
	}
}

// Connect 连接服务器
func (c *Client) Connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, c.ServerURL, nil)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go c.readPump()
	go c.writePump()
	return nil
}

// readPump 从服务器读取消息
func (c *Client) readPump() {
	defer c.Close()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && c.OnError != nil {
				c.OnError(err)
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			log.Printf("消息解析错误: %v", err)
			continue
		}

		if msg.Type == protocol.MsgPong {
			var p protocol.PongPayload
			if err := msg.DecodePayload(&p); err == nil {
				c.latency.Store(time.Now().UnixMilli() - p.ClientTimestamp)
			}
			continue
		}

		select {
		case c.receive <- msg:
		case <-c.done:
			return
		}
	}
}

// writePump 向服务器写入消息
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// SendMessage 发送消息，不等待回复
func (c *Client) SendMessage(msg *protocol.Message) error {
	if !c.IsConnected() {
		return ErrClosed
	}

	data, err := protocol.Encode(msg)
	if err != nil {
		return err
	}

	select {
	case c.send <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

// Receive 接收下一条消息（阻塞）
func (c *Client) Receive(ctx context.Context) (*protocol.Message, error) {
	select {
	case msg := <-c.receive:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		return nil, ErrClosed
	}
}

// Call 发送请求并等待回复，error 消息转换为 *apperrors.GameError
func (c *Client) Call(ctx context.Context, t protocol.MessageType, payload any) (*protocol.Message, error) {
	msg, err := protocol.NewMessage(t, payload)
	if err != nil {
		return nil, err
	}

	c.callMu.Lock()
	defer c.callMu.Unlock()

	if err := c.SendMessage(msg); err != nil {
		return nil, err
	}
	reply, err := c.Receive(ctx)
	if err != nil {
		// 迟到的回复会与下一次请求错位
		c.Close()
		return nil, err
	}

	if reply.Type == protocol.MsgError {
		var p protocol.ErrorPayload
		if err := reply.DecodePayload(&p); err != nil {
			return nil, err
		}
		return nil, &apperrors.GameError{Code: p.Code, Message: p.Message}
	}
	return reply, nil
}

// Close 关闭连接
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		close(c.done)
	})
}

// IsConnected 是否已连接
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed && c.conn != nil
}

// Latency 最近一次 ping 的往返时间（毫秒）
func (c *Client) Latency() int64 {
	return c.latency.Load()
}

// --- 便捷方法 ---

// CreateGame 创建对局，返回对局 ID
func (c *Client) CreateGame(ctx context.Context, variantName string, players, viewer int) (string, error) {
	reply, err := c.Call(ctx, protocol.MsgCreateGame, protocol.CreateGamePayload{
		Variant: variantName,
		Players: players,
		Viewer:  viewer,
	})
	if err != nil {
		return "", err
	}
	var p protocol.GameCreatedPayload
	if err := expect(reply, protocol.MsgGameCreated, &p); err != nil {
		return "", err
	}
	return p.GameID, nil
}

// Apply 提交动作并返回推理后的牌堆
func (c *Client) Apply(ctx context.Context, gameID string, a action.Action) (*protocol.DeckPayload, error) {
	reply, err := c.Call(ctx, protocol.MsgAction, protocol.ActionPayload{GameID: gameID, Action: a})
	if err != nil {
		return nil, err
	}
	var p protocol.DeckPayload
	if err := expect(reply, protocol.MsgDeck, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetDeck 查询当前推理结果
func (c *Client) GetDeck(ctx context.Context, gameID string) (*protocol.DeckPayload, error) {
	reply, err := c.Call(ctx, protocol.MsgGetDeck, protocol.GetDeckPayload{GameID: gameID})
	if err != nil {
		return nil, err
	}
	var p protocol.DeckPayload
	if err := expect(reply, protocol.MsgDeck, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CloseGame 结束对局，服务端同时删除快照
func (c *Client) CloseGame(ctx context.Context, gameID string) error {
	reply, err := c.Call(ctx, protocol.MsgCloseGame, protocol.CloseGamePayload{GameID: gameID})
	if err != nil {
		return err
	}
	var p protocol.CloseGamePayload
	return expect(reply, protocol.MsgGameClosed, &p)
}

// Ping 发送心跳，回复到达后更新 Latency
func (c *Client) Ping() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		ClientTimestamp: time.Now().UnixMilli(),
	}))
}

func expect(msg *protocol.Message, t protocol.MessageType, v any) error {
	if msg.Type != t {
		return apperrors.ErrInvalidMsg.Wrapf("expected %s, got %s", t, msg.Type)
	}
	return msg.DecodePayload(v)
}
