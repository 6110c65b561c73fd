package contracts

import (
	"context"
	"medassist-service/internal/pkg/dto/requests"
	"medassist-service/internal/pkg/dto/responses"
)

type PatientUsecase interface {
	GetPatientProfile(ctx context.Context, patientID string) (*responses.PatientProfile, error)
	ListPatientEncounters(ctx context.Context, patientID string, pagination *requests.Pagination) ([]responses.Encounter, int, error)
	ListPatientAttachments(ctx context.Context, patientID string) ([]responses.PatientAttachment, error)
	SearchPatients(ctx context.Context, name string, pagination *requests.Pagination) ([]responses.PatientSummary, int, error)
}

type PatientFhirClient interface {
	GetPatientByID(ctx context.Context, patientID string) (*responses.PatientProfile, error)
	SearchPatientsByName(ctx context.Context, name string, offset, count int) ([]responses.PatientSummary, int, error)
}

type EncounterFhirClient interface {
	GetEncounterByID(ctx context.Context, encounterID string) (*responses.Encounter, error)
	ListEncountersByPatient(ctx context.Context, patientID string, offset, count int) ([]responses.Encounter, int, error)
}
