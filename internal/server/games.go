package server

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/hanabi-deduction/internal/apperrors"
	"github.com/palemoky/hanabi-deduction/internal/game/action"
	"github.com/palemoky/hanabi-deduction/internal/game/state"
)

const storeTimeout = 3 * time.Second

// createGame 创建对局并登记
func (s *Server) createGame(variantName string, players, viewer int) (string, *state.Game, error) {
	if variantName == "" {
		variantName = s.config.Game.DefaultVariant
	}
	v, err := s.catalog.Get(variantName)
	if err != nil {
		return "", nil, err
	}
	g, err := state.NewGame(v, players, viewer, s.engine)
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()
	s.gamesMu.Lock()
	s.games[id] = &gameEntry{game: g}
	s.gamesMu.Unlock()

	s.persist(id, g)
	return id, g, nil
}

// lookup 先查内存，未命中时尝试从快照恢复。读取存储时不持有 gamesMu。
func (s *Server) lookup(id string) (*gameEntry, error) {
	s.gamesMu.Lock()
	e, ok := s.games[id]
	s.gamesMu.Unlock()
	if ok {
		return e, nil
	}
	if s.store == nil {
		return nil, apperrors.ErrGameNotFound.Wrapf("%s", id)
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	snap, err := s.store.LoadGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, apperrors.ErrGameNotFound.Wrapf("%s", id)
	}
	g, err := state.Restore(snap, s.catalog, s.engine)
	if err != nil {
		return nil, err
	}

	s.gamesMu.Lock()
	defer s.gamesMu.Unlock()
	// 并发恢复同一对局时以先登记的为准
	if e, ok := s.games[id]; ok {
		return e, nil
	}
	e = &gameEntry{game: g}
	s.games[id] = e
	log.Printf("♻️  对局 %s 已从快照恢复", id)
	return e, nil
}

// closeGame 结束对局，从内存和存储中移除
func (s *Server) closeGame(id string) error {
	if _, err := s.lookup(id); err != nil {
		return err
	}

	s.gamesMu.Lock()
	delete(s.games, id)
	s.gamesMu.Unlock()

	if s.store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := s.store.DeleteGame(ctx, id); err != nil {
		log.Printf("删除对局 %s 快照失败: %v", id, err)
	}
	return nil
}

// Warm 启动时从存储恢复所有未过期的对局，返回恢复成功的数量
func (s *Server) Warm(ctx context.Context) (int, error) {
	if s.store == nil {
		return 0, nil
	}
	ids, err := s.store.ListGames(ctx)
	if err != nil {
		return 0, err
	}

	restored := 0
	for _, id := range ids {
		if _, err := s.lookup(id); err != nil {
			log.Printf("恢复对局 %s 失败: %v", id, err)
			continue
		}
		restored++
	}
	return restored, nil
}

// applyAction 在对局上执行动作，返回新的快照
func (s *Server) applyAction(id string, a action.Action) (*state.Snapshot, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.game.Apply(a); err != nil {
		return nil, err
	}
	s.persist(id, e.game)
	return e.game.Snapshot(), nil
}

// snapshot 读取对局当前状态
func (s *Server) snapshot(id string) (*state.Snapshot, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.Snapshot(), nil
}

// persist 保存快照，失败只记录日志
func (s *Server) persist(id string, g *state.Game) {
	if s.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := s.store.SaveGame(ctx, id, g.Snapshot()); err != nil {
		log.Printf("保存对局 %s 快照失败: %v", id, err)
	}
}
