// Package replay feeds a recorded game log through the host reducer.
package replay

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/palemoky/hanabi-deduction/internal/apperrors"
	"github.com/palemoky/hanabi-deduction/internal/game/action"
	"github.com/palemoky/hanabi-deduction/internal/game/deduction"
	"github.com/palemoky/hanabi-deduction/internal/game/state"
	"github.com/palemoky/hanabi-deduction/internal/game/variant"
)

// Log 一局游戏的记录，从某个玩家（或旁观者）的视角
type Log struct {
	Variant string          `yaml:"variant"`
	Players int             `yaml:"players"`
	Viewer  int             `yaml:"viewer"`
	Actions []action.Action `yaml:"actions"`
}

// Load 读取 YAML 对局记录
func Load(path string) (*Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse 解析 YAML 对局记录，未指定变体时使用默认变体
func Parse(data []byte) (*Log, error) {
	var l Log
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse game log: %w", err)
	}
	if l.Variant == "" {
		l.Variant = variant.DefaultVariant
	}
	if l.Players < 2 {
		return nil, apperrors.ErrBadAction.Wrapf("game log needs at least 2 players, got %d", l.Players)
	}
	return &l, nil
}

// StepFunc 每个动作成功应用后被调用
type StepFunc func(step int, a action.Action, g *state.Game)

// Run 按顺序重放所有动作，遇到第一个非法动作即停止
func Run(l *Log, catalog *variant.Catalog, engine *deduction.Engine, onStep StepFunc) (*state.Game, error) {
	v, err := catalog.Get(l.Variant)
	if err != nil {
		return nil, err
	}
	g, err := state.NewGame(v, l.Players, l.Viewer, engine)
	if err != nil {
		return nil, err
	}
	for i, a := range l.Actions {
		if err := g.Apply(a); err != nil {
			return g, fmt.Errorf("action %d (%s): %w", i, a.Type, err)
		}
		if onStep != nil {
			onStep(i, a, g)
		}
	}
	return g, nil
}
