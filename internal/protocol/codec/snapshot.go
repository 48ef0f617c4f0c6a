package codec

import (
	"errors"
	"fmt"
	"slices"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/palemoky/hanabi-deduction/internal/game/card"
	"github.com/palemoky/hanabi-deduction/internal/game/state"
)

// 快照字段编号
const (
	fieldVariant protowire.Number = 1
	fieldViewer  protowire.Number = 2
	fieldHand    protowire.Number = 3
	fieldCard    protowire.Number = 4
)

// 牌字段编号
const (
	fieldOrder    protowire.Number = 1
	fieldSuit     protowire.Number = 2
	fieldRank     protowire.Number = 3
	fieldPossible protowire.Number = 4
)

// ErrTruncated 快照数据不完整
var ErrTruncated = errors.New("snapshot truncated")

// EncodeSnapshot 以 protobuf wire 格式编码对局快照
func EncodeSnapshot(s *state.Snapshot) []byte {
	buf := GetBuffer()
	defer PutBuffer(buf)
	scratch := GetBuffer()
	defer PutBuffer(scratch)

	b := *buf
	b = protowire.AppendTag(b, fieldVariant, protowire.BytesType)
	b = protowire.AppendString(b, s.Variant)
	b = protowire.AppendTag(b, fieldViewer, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(s.Viewer)))

	for _, hand := range s.Hands {
		sb := (*scratch)[:0]
		for _, o := range hand {
			sb = protowire.AppendVarint(sb, uint64(o))
		}
		b = protowire.AppendTag(b, fieldHand, protowire.BytesType)
		b = protowire.AppendBytes(b, sb)
		*scratch = sb
	}

	for _, c := range s.Deck {
		sb := appendCard((*scratch)[:0], c)
		b = protowire.AppendTag(b, fieldCard, protowire.BytesType)
		b = protowire.AppendBytes(b, sb)
		*scratch = sb
	}

	*buf = b
	return slices.Clone(b)
}

func appendCard(b []byte, c card.State) []byte {
	b = protowire.AppendTag(b, fieldOrder, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(c.Order))
	if id, ok := c.Knowledge.Identity(); ok {
		b = protowire.AppendTag(b, fieldSuit, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(id.Suit))
		b = protowire.AppendTag(b, fieldRank, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(id.Rank))
	}
	if c.Possible != nil {
		var packed []byte
		for _, id := range c.Possible {
			packed = protowire.AppendVarint(packed, uint64(id.Suit))
			packed = protowire.AppendVarint(packed, uint64(id.Rank))
		}
		b = protowire.AppendTag(b, fieldPossible, protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	}
	return b
}

// DecodeSnapshot 解码 EncodeSnapshot 的输出
func DecodeSnapshot(data []byte) (*state.Snapshot, error) {
	s := &state.Snapshot{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		data = data[n:]

		switch {
		case num == fieldVariant && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			s.Variant = v
			data = data[n:]
		case num == fieldViewer && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			s.Viewer = int(protowire.DecodeZigZag(v))
			data = data[n:]
		case num == fieldHand && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			orders, err := consumePacked(v)
			if err != nil {
				return nil, fmt.Errorf("hand %d: %w", len(s.Hands), err)
			}
			s.Hands = append(s.Hands, card.Hand(orders))
			data = data[n:]
		case num == fieldCard && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			c, err := decodeCard(v)
			if err != nil {
				return nil, fmt.Errorf("card %d: %w", len(s.Deck), err)
			}
			s.Deck = append(s.Deck, c)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			data = data[n:]
		}
	}
	return s, nil
}

func decodeCard(data []byte) (card.State, error) {
	var (
		c          card.State
		suit, rank *int
	)
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return c, protowire.ParseError(n)
		}
		data = data[n:]

		switch {
		case typ == protowire.VarintType && (num == fieldOrder || num == fieldSuit || num == fieldRank):
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return c, protowire.ParseError(n)
			}
			x := int(v)
			switch num {
			case fieldOrder:
				c.Order = x
			case fieldSuit:
				suit = &x
			case fieldRank:
				rank = &x
			}
			data = data[n:]
		case num == fieldPossible && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return c, protowire.ParseError(n)
			}
			pairs, err := consumePacked(v)
			if err != nil {
				return c, err
			}
			if len(pairs)%2 != 0 {
				return c, ErrTruncated
			}
			c.Possible = make([]card.Identity, 0, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				c.Possible = append(c.Possible, card.Identity{Suit: pairs[i], Rank: card.Rank(pairs[i+1])})
			}
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return c, protowire.ParseError(n)
			}
			data = data[n:]
		}
	}
	if suit != nil && rank != nil {
		c.Knowledge = card.Known(card.Identity{Suit: *suit, Rank: card.Rank(*rank)})
	}
	return c, nil
}

func consumePacked(data []byte) ([]int, error) {
	out := []int{}
	for len(data) > 0 {
		v, n := protowire.ConsumeVarint(data)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		out = append(out, int(v))
		data = data[n:]
	}
	return out, nil
}
