package handlers

import (
	"io"
	"net/http"

	"pharmacy_backend/internal/store"
	"pharmacy_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// maxSnapshotBytes caps imported snapshot payloads.
const maxSnapshotBytes = 16 << 20

// BackupHandler exposes snapshot export and import.
type BackupHandler struct {
	st *store.Store
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(st *store.Store) *BackupHandler {
	return &BackupHandler{st: st}
}

// ExportSnapshot returns the whole persisted document as JSON.
func (h *BackupHandler) ExportSnapshot(c *gin.Context) {
	blob, err := h.st.ExportSnapshot()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="pharmacy_data.json"`)
	c.Data(http.StatusOK, "application/json", blob)
}

// ImportSnapshot replaces the whole store with the posted document. The
// payload is parsed and migrated before the swap, so a malformed body
// leaves existing state untouched.
func (h *BackupHandler) ImportSnapshot(c *gin.Context) {
	blob, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSnapshotBytes))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Failed to read request body", err.Error()))
		return
	}
	if err := h.st.ImportSnapshot(blob); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.LogInfo("Snapshot imported", map[string]interface{}{"bytes": len(blob)})
	c.JSON(http.StatusOK, gin.H{"imported": true})
}
