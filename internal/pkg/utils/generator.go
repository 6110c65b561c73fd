package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

// GenerateObjectName builds a MinIO object name like
// "attachments/<owner>/<uuid>_<sanitized-filename>".
func GenerateObjectName(prefix, ownerID, fileName string) string {
	base := filepath.Base(fileName)
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%s/%s/%s_%s", prefix, ownerID, uuid.NewString(), base)
}
