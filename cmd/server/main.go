package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	httpapi "rps-arena/internal/api/http"
	"rps-arena/internal/api/ws"
	"rps-arena/internal/config"
	"rps-arena/internal/logger"
	"rps-arena/internal/room"
	"rps-arena/internal/session"
	"rps-arena/internal/store"

	// swagger packages
	_ "rps-arena/docs"
)

// @title RPS Arena API
// @version 1.0
// @description Real-time rock-paper-scissors match coordination (Go + Gin + WebSocket)
// @contact.name Backend Team
// @BasePath /
func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.LogFile)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	mem := store.NewMemoryStore()
	sessions := session.NewRegistry()
	hub := ws.NewHub(cfg, sessions, log)
	rm := room.NewManager(mem, cfg, hub, log)
	hub.SetGame(rm)

	r := httpapi.SetupRouter(rm, hub)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Infof("listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
