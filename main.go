package main

import (
	"net/http"

	"livedocs/config"
	"livedocs/config/database"
	"livedocs/internal/document/repository"
	"livedocs/internal/document/service"
	"livedocs/internal/notify"
	"livedocs/pkg/logger"
	"livedocs/router"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Sugar.Fatalf("Invalid configuration: %v", err)
	}

	hub := notify.NewHub()
	go hub.Run()

	var rooms service.RoomStore
	var notifications service.NotificationStore
	if cfg.UseLocalStore {
		logger.Sugar.Info("Using in-memory stores (USE_LOCAL_STORE=true)")
		rooms = repository.NewMemoryStore()
		notifications = repository.NewMemoryNotificationStore()
	} else {
		db := database.Connect(cfg)
		defer db.Close()
		rooms = repository.NewRoomRepository(db)
		notifications = repository.NewNotificationRepository(db)
	}

	handler := router.Setup(cfg, rooms, notifications, hub)

	logger.Sugar.Infof("livedocs listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Sugar.Fatalf("Server stopped: %v", err)
	}
}
