package http

import (
	"bytes"
	"net/http"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/backup"
	"github.com/watan-hr/fingerprint-attendance/internal/handler/http/response"
)

const contentTypeJSON = "application/json"

type BackupHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
}

type backupHandlerImpl struct {
	backupService backup.BackupService
}

func NewBackupHandler(backupService backup.BackupService) BackupHandler {
	return &backupHandlerImpl{
		backupService: backupService,
	}
}

// Create implements BackupHandler. The document is fully buffered before the
// response starts.
func (h *backupHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	summary, err := h.backupService.Write(r.Context(), &buf)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Attachment(w, contentTypeJSON, backup.FileName(summary.CreatedAt), buf.Bytes())
}
