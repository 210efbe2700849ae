package bots

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the Google Chat app endpoint on the given router.
func RegisterRoutes(r chi.Router, chatHandler *ChatHandler) {
	r.Post("/", chatHandler.HandleEvent)
}
