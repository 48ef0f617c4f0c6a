package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/palemoky/hanabi-deduction/internal/client"
	"github.com/palemoky/hanabi-deduction/internal/game/action"
	"github.com/palemoky/hanabi-deduction/internal/game/card"
	"github.com/palemoky/hanabi-deduction/internal/game/deduction"
	"github.com/palemoky/hanabi-deduction/internal/game/state"
	"github.com/palemoky/hanabi-deduction/internal/game/variant"
	"github.com/palemoky/hanabi-deduction/internal/protocol"
	"github.com/palemoky/hanabi-deduction/internal/protocol/convert"
	"github.com/palemoky/hanabi-deduction/internal/replay"
	"github.com/palemoky/hanabi-deduction/internal/ui/view"
)

func main() {
	logPath := flag.String("log", "configs/example_game.yaml", "对局记录文件路径")
	variantsPath := flag.String("variants", "", "自定义变体文件路径（为空时使用内置变体）")
	steps := flag.Bool("steps", false, "每个动作后都输出推理结果")
	remote := flag.String("server", "", "推理服务地址（如 ws://localhost:1781/ws），为空时本地推理")
	flag.Parse()

	catalog := variant.Builtin()
	if *variantsPath != "" {
		var err error
		if catalog, err = variant.LoadCatalog(*variantsPath); err != nil {
			log.Fatalf("加载变体文件失败: %v", err)
		}
	}

	gameLog, err := replay.Load(*logPath)
	if err != nil {
		log.Fatalf("读取对局记录失败: %v", err)
	}

	if *remote != "" {
		if err := replayRemote(*remote, gameLog, catalog); err != nil {
			fmt.Fprintf(os.Stderr, "重放中止: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var onStep replay.StepFunc
	if *steps {
		onStep = func(step int, a action.Action, g *state.Game) {
			if !a.Type.ChangesCardInfo() {
				return
			}
			fmt.Printf("── %d: %s ──\n", step, a.Type)
			fmt.Println(view.GameView(g.Variant, g.Hands, g.Deck, g.Viewer))
		}
	}

	g, err := replay.Run(gameLog, catalog, deduction.NewEngine(nil), onStep)
	if g != nil && !*steps {
		fmt.Println(view.GameView(g.Variant, g.Hands, g.Deck, g.Viewer))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "重放中止: %v\n", err)
		os.Exit(1)
	}
}

// replayRemote 通过推理服务重放对局，只在本地渲染结果
func replayRemote(url string, gameLog *replay.Log, catalog *variant.Catalog) error {
	v, err := catalog.Get(gameLog.Variant)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	c := client.NewClient(url)
	if err := c.Connect(ctx); err != nil {
		return fmt.Errorf("连接推理服务失败: %w", err)
	}
	defer c.Close()

	id, err := c.CreateGame(ctx, gameLog.Variant, gameLog.Players, gameLog.Viewer)
	if err != nil {
		return err
	}

	var last *protocol.DeckPayload
	for i, a := range gameLog.Actions {
		if last, err = c.Apply(ctx, id, a); err != nil {
			return fmt.Errorf("action %d (%s): %w", i, a.Type, err)
		}
	}
	if last == nil {
		return nil
	}

	hands := make([]card.Hand, len(last.Hands))
	for i, h := range last.Hands {
		hands[i] = card.Hand(h)
	}
	fmt.Println(view.GameView(v, hands, convert.InfosToDeck(last.Cards), gameLog.Viewer))
	return nil
}
