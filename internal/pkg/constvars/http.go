package constvars

import "net/http"

const (
	MethodGet    = http.MethodGet
	MethodPost   = http.MethodPost
	MethodPut    = http.MethodPut
	MethodPatch  = http.MethodPatch
	MethodDelete = http.MethodDelete
)

const (
	StatusOK                    = http.StatusOK
	StatusCreated               = http.StatusCreated
	StatusNoContent             = http.StatusNoContent
	StatusBadRequest            = http.StatusBadRequest
	StatusUnauthorized          = http.StatusUnauthorized
	StatusForbidden             = http.StatusForbidden
	StatusNotFound              = http.StatusNotFound
	StatusConflict              = http.StatusConflict
	StatusRequestEntityTooLarge = http.StatusRequestEntityTooLarge
	StatusUnprocessableEntity   = http.StatusUnprocessableEntity
	StatusRequestTimeout        = http.StatusRequestTimeout
	StatusInternalServerError   = http.StatusInternalServerError
	StatusBadGateway            = http.StatusBadGateway
	StatusGatewayTimeout        = http.StatusGatewayTimeout
)

const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	MIMEApplicationJSON     = "application/json"
	MIMEApplicationFHIRJSON = "application/fhir+json"
)
