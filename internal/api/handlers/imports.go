package handlers

import (
	"net/http"
	"strconv"

	"calltime-backend/internal/config"
	"calltime-backend/internal/service"
	"calltime-backend/internal/tabular"

	"github.com/gin-gonic/gin"
)

// ImportHandler handles bulk spreadsheet imports
type ImportHandler struct {
	service *service.ImportService
	cfg     *config.Config
}

// NewImportHandler creates a new import handler
func NewImportHandler(service *service.ImportService, cfg *config.Config) *ImportHandler {
	return &ImportHandler{service: service, cfg: cfg}
}

// ImportDonors handles POST /api/imports/donors. Accepts a multipart "file"
// (XLSX or CSV) and an optional "client_id" form field used as the fallback
// client for rows naming none.
func (h *ImportHandler) ImportDonors(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file upload is required"})
		return
	}
	if h.cfg.MaxImportFileBytes > 0 && fileHeader.Size > h.cfg.MaxImportFileBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds the maximum import size"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file", "details": err.Error()})
		return
	}
	defer file.Close()

	rows, err := tabular.ParseFile(fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := service.ImportOptions{AssignedBy: "import"}
	if raw := c.PostForm("client_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client_id"})
			return
		}
		clientID := uint(id)
		opts.FallbackClientID = &clientID
	} else if h.cfg.DefaultImportClientID != 0 {
		clientID := h.cfg.DefaultImportClientID
		opts.FallbackClientID = &clientID
	}

	summary, err := h.service.ImportRows(rows, opts)
	if err != nil {
		respondError(c, err, "Import failed")
		return
	}
	c.JSON(http.StatusOK, summary)
}
