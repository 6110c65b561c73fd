package routers

import (
	"medassist-service/internal/app/delivery/http/middlewares"
	"medassist-service/internal/app/services/core/appointments"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *appointments.AppointmentController) {
	router.Use(middlewares.Authenticate)

	router.Get("/", appointmentController.ListAppointments)
	router.Get("/slots", appointmentController.ListFreeSlots)

	router.Route("/drafts", func(r chi.Router) {
		r.Post("/", appointmentController.CreateDraft)
		r.Get("/{draft_id}", appointmentController.GetDraft)
		r.Patch("/{draft_id}", appointmentController.UpdateDraft)
		r.Post("/{draft_id}/submit", appointmentController.SubmitDraft)
	})
}
