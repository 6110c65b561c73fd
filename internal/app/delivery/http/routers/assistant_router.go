package routers

import (
	"medassist-service/internal/app/delivery/http/middlewares"
	"medassist-service/internal/app/services/core/assistant"

	"github.com/go-chi/chi/v5"
)

func attachAssistantRoutes(router chi.Router, middlewares *middlewares.Middlewares, assistantController *assistant.AssistantController) {
	router.Use(middlewares.Authenticate)

	router.Route("/v2/practitioners/{practitioner_id}", func(r chi.Router) {
		r.Get("/sessions", assistantController.ListSessions)
		r.Post("/sessions", assistantController.CreateSession)
		r.Patch("/sessions/{session_id}", assistantController.RenameSession)
		r.Delete("/sessions/{session_id}", assistantController.DeleteSession)
		r.Get("/sessions/{session_id}/messages", assistantController.ListMessages)
		r.Post("/sessions/{session_id}/messages", assistantController.SendMessage)
	})

	router.Post("/askpract/{practitioner_id}", assistantController.Ask)
	router.Post("/transcribe", assistantController.Transcribe)
	router.Post("/analyze-attachment", assistantController.AnalyzeAttachment)
}
