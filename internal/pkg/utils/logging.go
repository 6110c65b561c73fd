package utils

import (
	"medassist-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// LogBusinessEvent records a domain-level event (message sent, appointment
// booked) in a shape the log pipeline indexes separately from request logs.
func LogBusinessEvent(logger *zap.Logger, event, requestID string, fields ...zap.Field) {
	eventFields := []zap.Field{
		zap.String(constvars.LoggingEventKey, event),
		zap.String(constvars.LoggingRequestIDKey, requestID),
	}
	eventFields = append(eventFields, fields...)
	logger.Info("Business event", eventFields...)
}
