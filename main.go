package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"zombiearena/server"
)

// Zombie Arena 入口：启动 HTTP + WebSocket 服务，并初始化房间注册表
func main() {
	var addr string
	var logFile string
	flag.StringVar(&addr, "addr", ":3000", "server listen address, e.g. :3000")
	flag.StringVar(&logFile, "log", "app.log", "log file path")
	flag.Parse()
	// 使用第三方 zap 日志库写入 app.log（带滚动）
	if err := server.InitLogger(logFile); err != nil {
		panic(err)
	}
	defer server.SyncLogger()

	registry := server.NewRegistry()
	gateway := server.NewGateway(registry)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gateway.HandleWS)
	// 前后端分离：将 / 映射到 web 目录的静态资源
	mux.Handle("/", http.FileServer(http.Dir("web")))
	// 房间浏览器与服务器概况
	mux.HandleFunc("/api/rooms", server.HandleRooms(registry))
	mux.HandleFunc("/api/info", gateway.HandleInfo)
	// 管理与监控接口
	mux.HandleFunc("/admin/config", server.HandleAdminConfig(registry))
	mux.HandleFunc("/metrics", server.HandleMetrics(registry))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		server.Log.Infof("Zombie Arena listening on %s; open http://localhost%v/", addr, addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("Shutting down...")
}
