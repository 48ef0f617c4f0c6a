package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/hanabi-deduction/internal/config"
	"github.com/palemoky/hanabi-deduction/internal/game/deduction"
	"github.com/palemoky/hanabi-deduction/internal/game/state"
	"github.com/palemoky/hanabi-deduction/internal/game/variant"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SnapshotStore 对局快照持久化
type SnapshotStore interface {
	SaveGame(ctx context.Context, gameID string, snap *state.Snapshot) error
	LoadGame(ctx context.Context, gameID string) (*state.Snapshot, error)
	DeleteGame(ctx context.Context, gameID string) error
	ListGames(ctx context.Context) ([]string, error)
}

// Server WebSocket 推理服务
type Server struct {
	config  *config.Config
	catalog *variant.Catalog
	engine  *deduction.Engine
	store   SnapshotStore // 可为 nil

	games   map[string]*gameEntry
	gamesMu sync.Mutex

	semaphore  chan struct{}
	httpServer *http.Server
}

// gameEntry 对局及其互斥锁，同一对局的动作串行执行
type gameEntry struct {
	mu   sync.Mutex
	game *state.Game
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config, catalog *variant.Catalog, store SnapshotStore) *Server {
	maxConn := cfg.Server.MaxConnections
	if maxConn <= 0 {
		maxConn = 1
	}
	return &Server{
		config:    cfg,
		catalog:   catalog,
		engine:    deduction.NewEngine(variant.NewCountCache()),
		store:     store,
		games:     make(map[string]*gameEntry),
		semaphore: make(chan struct{}, maxConn),
	}
}

// Handler 返回 HTTP 路由
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start 启动服务器（阻塞）
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("🚀 推理服务监听 %s", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown 优雅关闭
func (s *Server) Shutdown() {
	if s.httpServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("关闭服务器失败: %v", err)
	}
}
