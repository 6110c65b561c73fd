package patients

import (
	"context"
	"fmt"
	"medassist-service/internal/app/config"
	"medassist-service/internal/app/contracts"
	"medassist-service/internal/pkg/constvars"
	"medassist-service/internal/pkg/dto/requests"
	"medassist-service/internal/pkg/dto/responses"
	"time"

	"go.uber.org/zap"
)

type patientUsecase struct {
	Log                 *zap.Logger
	PatientFhirClient   contracts.PatientFhirClient
	EncounterFhirClient contracts.EncounterFhirClient
	Storage             contracts.Storage
	InternalConfig      *config.InternalConfig
}

func NewPatientUsecase(
	logger *zap.Logger,
	patientFhirClient contracts.PatientFhirClient,
	encounterFhirClient contracts.EncounterFhirClient,
	storage contracts.Storage,
	internalConfig *config.InternalConfig,
) contracts.PatientUsecase {
	return &patientUsecase{
		Log:                 logger,
		PatientFhirClient:   patientFhirClient,
		EncounterFhirClient: encounterFhirClient,
		Storage:             storage,
		InternalConfig:      internalConfig,
	}
}

func (uc *patientUsecase) GetPatientProfile(ctx context.Context, patientID string) (*responses.PatientProfile, error) {
	return uc.PatientFhirClient.GetPatientByID(ctx, patientID)
}

func (uc *patientUsecase) ListPatientEncounters(ctx context.Context, patientID string, pagination *requests.Pagination) ([]responses.Encounter, int, error) {
	offset := (pagination.Page - 1) * pagination.PageSize
	return uc.EncounterFhirClient.ListEncountersByPatient(ctx, patientID, offset, pagination.PageSize)
}

// ListPatientAttachments lists everything under the patient's attachment
// prefix and presigns a download URL per object.
func (uc *patientUsecase) ListPatientAttachments(ctx context.Context, patientID string) ([]responses.PatientAttachment, error) {
	prefix := fmt.Sprintf("%s/%s/", constvars.MinioAttachmentObjectPrefix, patientID)
	objects, err := uc.Storage.ListObjectsByPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}

	expiry := time.Duration(uc.InternalConfig.Minio.MinioPreSignedUrlObjectExpiryTimeInHours) * time.Hour
	attachments := make([]responses.PatientAttachment, 0, len(objects))
	for _, object := range objects {
		url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, object.Name, expiry)
		if err != nil {
			uc.Log.Warn("Failed to presign patient attachment",
				zap.String(constvars.LoggingPatientIDKey, patientID),
				zap.String(constvars.LoggingObjectNameKey, object.Name),
				zap.Error(err),
			)
			continue
		}
		attachments = append(attachments, responses.PatientAttachment{
			ObjectName:   object.Name,
			Size:         object.Size,
			ContentType:  object.ContentType,
			LastModified: object.LastModified.Format(time.RFC3339),
			URL:          url,
		})
	}
	return attachments, nil
}

func (uc *patientUsecase) SearchPatients(ctx context.Context, name string, pagination *requests.Pagination) ([]responses.PatientSummary, int, error) {
	offset := (pagination.Page - 1) * pagination.PageSize
	return uc.PatientFhirClient.SearchPatientsByName(ctx, name, offset, pagination.PageSize)
}
