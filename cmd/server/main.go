package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/hanabi-deduction/internal/config"
	"github.com/palemoky/hanabi-deduction/internal/game/variant"
	"github.com/palemoky/hanabi-deduction/internal/logger"
	"github.com/palemoky/hanabi-deduction/internal/server"
	"github.com/palemoky/hanabi-deduction/internal/storage"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}

	if err := logger.Init(cfg.Log.Dir, cfg.Log.MaxBytes()); err != nil {
		log.Printf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	catalog := variant.Builtin()
	if cfg.Game.VariantsFile != "" {
		if catalog, err = variant.LoadCatalog(cfg.Game.VariantsFile); err != nil {
			log.Fatalf("加载变体文件失败: %v", err)
		}
	}
	log.Printf("已加载 %d 个变体", catalog.Len())

	var store server.SnapshotStore
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := client.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Fatalf("连接 Redis 失败: %v", err)
		}
		defer func() { _ = client.Close() }()
		store = storage.NewRedisStore(client, cfg.Game.SnapshotTTLDuration())
		log.Printf("✅ Redis 已连接: %s", cfg.Redis.Addr)
	}

	srv := server.NewServer(cfg, catalog, store)
	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		n, err := srv.Warm(ctx)
		cancel()
		if err != nil {
			log.Printf("恢复对局失败: %v", err)
		} else {
			log.Printf("♻️  已恢复 %d 个对局", n)
		}
	}

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("正在关闭服务器...")
		srv.Shutdown()
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
