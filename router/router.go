package router

import (
	"net/http"
	"time"

	"livedocs/config"
	docHandler "livedocs/internal/document"
	"livedocs/internal/document/service"
	"livedocs/internal/notify"
	"livedocs/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Setup wires stores into services and services into the HTTP surface.
func Setup(cfg *config.Config, rooms service.RoomStore, notifications service.NotificationStore, hub *notify.Hub) http.Handler {
	sink := notify.NewSink(notifications, hub)
	sharing := service.NewSharingService(rooms, sink)
	docs := service.NewDocumentService(rooms)
	inbox := service.NewNotificationService(notifications)

	h := docHandler.NewDocumentHandler(docs, sharing)
	nh := docHandler.NewNotificationHandler(inbox)
	auth := middleware.Auth(cfg.JWTSecret)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Use(auth)

		r.Route("/documents", func(r chi.Router) {
			r.Post("/", h.CreateDocument)
			r.Get("/", h.ListDocuments)
			r.Get("/{docID}", h.GetDocument)
			r.Patch("/{docID}", h.RenameDocument)
			r.Delete("/{docID}", h.DeleteDocument)
			r.Post("/{docID}/access", h.UpdateAccess)
			r.Delete("/{docID}/access", h.RemoveAccess)
			r.Get("/{docID}/users", h.ListUsers)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", nh.List)
			r.Put("/{id}/read", nh.MarkRead)
		})
	})

	// WebSocket notification push; token arrives in the query string.
	r.With(auth).Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())
		notify.ServeWs(hub, w, r, identity.Email)
	})

	return r
}
