package routers

import (
	"medassist-service/internal/app/delivery/http/middlewares"
	"medassist-service/internal/app/services/core/patients"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, middlewares *middlewares.Middlewares, patientController *patients.PatientController) {
	router.Use(middlewares.Authenticate)

	router.Get("/search", patientController.SearchPatients)
	router.Get("/{patient_id}", patientController.GetPatientProfile)
	router.Get("/{patient_id}/encounters", patientController.ListPatientEncounters)
	router.Get("/{patient_id}/attachments", patientController.ListPatientAttachments)
}
