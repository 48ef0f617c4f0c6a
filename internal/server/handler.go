package server

import (
	"errors"
	"time"

	"github.com/palemoky/hanabi-deduction/internal/apperrors"
	"github.com/palemoky/hanabi-deduction/internal/protocol"
	"github.com/palemoky/hanabi-deduction/internal/protocol/convert"
)

// handleMessage 处理一条客户端消息并返回回复
func (s *Server) handleMessage(data []byte) *protocol.Message {
	msg, err := protocol.Decode(data)
	if err != nil {
		return errorMessage(apperrors.ErrInvalidMsg.Wrap(err))
	}

	switch msg.Type {
	case protocol.MsgCreateGame:
		return s.handleCreateGame(msg)
	case protocol.MsgAction:
		return s.handleAction(msg)
	case protocol.MsgGetDeck:
		return s.handleGetDeck(msg)
	case protocol.MsgCloseGame:
		return s.handleCloseGame(msg)
	case protocol.MsgPing:
		return handlePing(msg)
	default:
		return errorMessage(apperrors.ErrInvalidMsg.Wrapf("unknown message type %q", msg.Type))
	}
}

func (s *Server) handleCreateGame(msg *protocol.Message) *protocol.Message {
	var p protocol.CreateGamePayload
	if err := msg.DecodePayload(&p); err != nil {
		return errorMessage(apperrors.ErrInvalidMsg.Wrap(err))
	}

	id, g, err := s.createGame(p.Variant, p.Players, p.Viewer)
	if err != nil {
		return errorMessage(err)
	}
	return protocol.MustNewMessage(protocol.MsgGameCreated, protocol.GameCreatedPayload{
		GameID:  id,
		Variant: g.Variant.Name,
	})
}

func (s *Server) handleAction(msg *protocol.Message) *protocol.Message {
	var p protocol.ActionPayload
	if err := msg.DecodePayload(&p); err != nil {
		return errorMessage(apperrors.ErrInvalidMsg.Wrap(err))
	}

	snap, err := s.applyAction(p.GameID, p.Action)
	if err != nil {
		return errorMessage(err)
	}
	return protocol.MustNewMessage(protocol.MsgDeck, convert.DeckPayload(p.GameID, snap.Hands, snap.Deck))
}

func (s *Server) handleGetDeck(msg *protocol.Message) *protocol.Message {
	var p protocol.GetDeckPayload
	if err := msg.DecodePayload(&p); err != nil {
		return errorMessage(apperrors.ErrInvalidMsg.Wrap(err))
	}

	snap, err := s.snapshot(p.GameID)
	if err != nil {
		return errorMessage(err)
	}
	return protocol.MustNewMessage(protocol.MsgDeck, convert.DeckPayload(p.GameID, snap.Hands, snap.Deck))
}

func (s *Server) handleCloseGame(msg *protocol.Message) *protocol.Message {
	var p protocol.CloseGamePayload
	if err := msg.DecodePayload(&p); err != nil {
		return errorMessage(apperrors.ErrInvalidMsg.Wrap(err))
	}

	if err := s.closeGame(p.GameID); err != nil {
		return errorMessage(err)
	}
	return protocol.MustNewMessage(protocol.MsgGameClosed, p)
}

func handlePing(msg *protocol.Message) *protocol.Message {
	var p protocol.PingPayload
	_ = msg.DecodePayload(&p)
	return protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: p.ClientTimestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	})
}

// errorMessage 将错误转换为错误消息
func errorMessage(err error) *protocol.Message {
	payload := protocol.ErrorPayload{Code: apperrors.GetCode(err), Message: err.Error()}
	var ge *apperrors.GameError
	if !errors.As(err, &ge) {
		payload.Message = "internal error"
	}
	return protocol.MustNewMessage(protocol.MsgError, payload)
}
