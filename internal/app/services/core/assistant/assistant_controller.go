package assistant

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
	readTimeout  = 10 * time.Second
	chatTimeout  = 90 * time.Second
	mediaTimeout = 120 * time.Second
)

type AssistantController struct {
	Log              *zap.Logger
	AssistantUsecase contracts.AssistantUsecase
	SessionService   contracts.SessionService
}

func NewAssistantController(logger *zap.Logger, assistantUsecase contracts.AssistantUsecase, sessionService contracts.SessionService) *AssistantController {
	return &AssistantController{
		Log:              logger,
		AssistantUsecase: assistantUsecase,
		SessionService:   sessionService,
	}
}

// loggedInPractitioner resolves the authenticated practitioner and checks it
// against the practitioner_id path segment. Every assistant route is scoped
// to the caller's own account.
func (ctrl *AssistantController) loggedInPractitioner(r *http.Request) (*models.LoginSession, error) {
	sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
	if !ok || sessionData == "" {
		return nil, exceptions.ErrMissingSessionData(nil)
	}

	loginSession, err := ctrl.SessionService.ParseSessionData(r.Context(), sessionData)
	if err != nil {
		return nil, err
	}

	practitionerID := chi.URLParam(r, constvars.URLParamPractitionerID)
	if practitionerID == "" {
		return nil, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamPractitionerID)
	}
	if practitionerID != loginSession.PractitionerID {
		return nil, exceptions.ErrPractitionerMismatch(nil)
	}
	return loginSession, nil
}

func (ctrl *AssistantController) ListSessions(w http.ResponseWriter, r *http.Request) {
	loginSession, err := ctrl.loggedInPractitioner(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	sessions, total, err := ctrl.AssistantUsecase.ListSessions(ctx, loginSession.PractitionerID, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.SessionListSuccessMessage, paginationResponse, sessions)
}

func (ctrl *AssistantController) CreateSession(w http.ResponseWriter, r *http.Request) {
	loginSession, err := ctrl.loggedInPractitioner(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateSession)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PractitionerID = loginSession.PractitionerID

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	response, err := ctrl.AssistantUsecase.CreateSession(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SessionCreateSuccessMessage, response)
}

func (ctrl *AssistantController) RenameSession(w http.ResponseWriter, r *http.Request) {
	loginSession, err := ctrl.loggedInPractitioner(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	sessionID := chi.URLParam(r, constvars.URLParamSessionID)
	if sessionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamSessionID))
		return
	}

	request := new(requests.RenameSession)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PractitionerID = loginSession.PractitionerID
	request.SessionID = sessionID

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	response, err := ctrl.AssistantUsecase.RenameSession(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SessionRenameSuccessMessage, response)
}

func (ctrl *AssistantController) DeleteSession(w http.ResponseWriter, r *http.Request) {
	loginSession, err := ctrl.loggedInPractitioner(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	sessionID := chi.URLParam(r, constvars.URLParamSessionID)
	if sessionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamSessionID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	if err := ctrl.AssistantUsecase.DeleteSession(ctx, loginSession.PractitionerID, sessionID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SessionDeleteSuccessMessage, nil)
}

func (ctrl *AssistantController) ListMessages(w http.ResponseWriter, r *http.Request) {
	loginSession, err := ctrl.loggedInPractitioner(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	sessionID := chi.URLParam(r, constvars.URLParamSessionID)
	if sessionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamSessionID))
		return
	}

	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	messages, total, err := ctrl.AssistantUsecase.ListMessages(ctx, loginSession.PractitionerID, sessionID, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.MessageListSuccessMessage, paginationResponse, messages)
}

func (ctrl *AssistantController) SendMessage(w http.ResponseWriter, r *http.Request) {
	loginSession, err := ctrl.loggedInPractitioner(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	sessionID := chi.URLParam(r, constvars.URLParamSessionID)
	if sessionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamSessionID))
		return
	}

	request := new(requests.SendMessage)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PractitionerID = loginSession.PractitionerID
	request.SessionID = sessionID

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), chatTimeout)
	defer cancel()

	response, err := ctrl.AssistantUsecase.SendMessage(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	utils.LogBusinessEvent(ctrl.Log, constvars.EventAssistantMessageCreated, requestID,
		zap.String(constvars.LoggingPractitionerIDKey, loginSession.PractitionerID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.MessageSendSuccessMessage, response)
}

func (ctrl *AssistantController) Ask(w http.ResponseWriter, r *http.Request) {
	loginSession, err := ctrl.loggedInPractitioner(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.Ask)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PractitionerID = loginSession.PractitionerID

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), chatTimeout)
	defer cancel()

	response, err := ctrl.AssistantUsecase.Ask(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AskSuccessMessage, response)
}

func (ctrl *AssistantController) Transcribe(w http.ResponseWriter, r *http.Request) {
	sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
	if !ok || sessionData == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}
	loginSession, err := ctrl.SessionService.ParseSessionData(r.Context(), sessionData)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	_, fileHeader, err := r.FormFile(constvars.MultipartFieldAudio)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), mediaTimeout)
	defer cancel()

	response, err := ctrl.AssistantUsecase.Transcribe(ctx, loginSession.PractitionerID, fileHeader)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.TranscribeSuccessMessage, response)
}

func (ctrl *AssistantController) AnalyzeAttachment(w http.ResponseWriter, r *http.Request) {
	sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
	if !ok || sessionData == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}
	loginSession, err := ctrl.SessionService.ParseSessionData(r.Context(), sessionData)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	_, fileHeader, err := r.FormFile(constvars.MultipartFieldFile)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	patientID := r.FormValue(constvars.MultipartFieldPatientID)
	prompt := r.FormValue(constvars.MultipartFieldPrompt)

	ctx, cancel := context.WithTimeout(r.Context(), mediaTimeout)
	defer cancel()

	response, err := ctrl.AssistantUsecase.AnalyzeAttachment(ctx, loginSession.PractitionerID, patientID, prompt, fileHeader)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AnalyzeSuccessMessage, response)
}
