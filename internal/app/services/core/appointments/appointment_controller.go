package appointments

import (
	"context"
	"encoding/json"
	"medassist-service/internal/app/contracts"
	"medassist-service/internal/app/models"
	"medassist-service/internal/pkg/constvars"
	"medassist-service/internal/pkg/dto/requests"
	"medassist-service/internal/pkg/exceptions"
	"medassist-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	draftTimeout  = 5 * time.Second
	submitTimeout = 20 * time.Second
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
	SessionService     contracts.SessionService
}

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase, sessionService contracts.SessionService) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
		SessionService:     sessionService,
	}
}

func (ctrl *AppointmentController) loggedInPractitioner(r *http.Request) (*models.LoginSession, error) {
	sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
	if !ok || sessionData == "" {
		return nil, exceptions.ErrMissingSessionData(nil)
	}
	return ctrl.SessionService.ParseSessionData(r.Context(), sessionData)
}

func (ctrl *AppointmentController) CreateDraft(w http.ResponseWriter, r *http.Request) {
	loginSession, err := ctrl.loggedInPractitioner(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateAppointmentDraft)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PractitionerID = loginSession.PractitionerID

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), draftTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.CreateDraft(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AppointmentDraftCreateSuccessMessage, response)
}

func (ctrl *AppointmentController) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	loginSession, err := ctrl.loggedInPractitioner(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	if draftID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamDraftID))
		return
	}

	request := new(requests.UpdateAppointmentDraft)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.DraftID = draftID
	request.PractitionerID = loginSession.PractitionerID

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), draftTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.UpdateDraft(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentDraftUpdateSuccessMessage, response)
}

func (ctrl *AppointmentController) GetDraft(w http.ResponseWriter, r *http.Request) {
	loginSession, err := ctrl.loggedInPractitioner(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	if draftID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamDraftID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), draftTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.GetDraft(ctx, loginSession.PractitionerID, draftID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentDraftGetSuccessMessage, response)
}

func (ctrl *AppointmentController) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	loginSession, err := ctrl.loggedInPractitioner(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	if draftID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamDraftID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), submitTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.SubmitDraft(ctx, loginSession.PractitionerID, draftID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	utils.LogBusinessEvent(ctrl.Log, constvars.EventAppointmentBooked, requestID,
		zap.String(constvars.LoggingPractitionerIDKey, loginSession.PractitionerID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AppointmentSubmitSuccessMessage, response)
}

func (ctrl *AppointmentController) ListAppointments(w http.ResponseWriter, r *http.Request) {
	loginSession, err := ctrl.loggedInPractitioner(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	date := r.URL.Query().Get(constvars.QueryParamDate)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	ctx, cancel := context.WithTimeout(r.Context(), submitTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.ListAppointments(ctx, loginSession.PractitionerID, date)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentListSuccessMessage, response)
}

func (ctrl *AppointmentController) ListFreeSlots(w http.ResponseWriter, r *http.Request) {
	if _, err := ctrl.loggedInPractitioner(r); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	practitionerID := r.URL.Query().Get(constvars.QueryParamPractitionerID)
	if practitionerID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.QueryParamPractitionerID))
		return
	}
	date := r.URL.Query().Get(constvars.QueryParamDate)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	ctx, cancel := context.WithTimeout(r.Context(), submitTimeout)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.ListFreeSlots(ctx, practitionerID, date)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentSlotsSuccessMessage, response)
}
