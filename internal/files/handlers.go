package files

import (
	"errors"
	"log/slog"
	"net/http"

	"emodiary/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for files service
type Handler struct {
	service *Service
	log     *slog.Logger
}

// NewHandler creates a new files handler
func NewHandler(service *Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Presign handles POST /files/presign
// @Summary Generate presigned upload URL for a voice recording
// @Tags files
// @Accept json
// @Produce json
// @Param file body PresignRequest true "Voice upload request"
// @Success 200 {object} PresignResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /files/presign [post]
func (h *Handler) Presign(c *gin.Context) {
	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid request body",
			Code:    "INVALID_REQUEST",
			Details: err.Error(),
		})
		return
	}

	response, err := h.service.Presign(c.Request.Context(), &req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, response)
	case errors.Is(err, ErrInvalidMimeType):
		// Rejections carry no body
		_ = c.Error(err)
		c.Status(http.StatusBadRequest)
	case errors.Is(err, storage.ErrBackendUnavailable):
		h.log.Error("Storage backend unavailable",
			"file_name", req.FileName,
			"error", err.Error(),
			"request_id", c.GetString("request_id"),
		)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Success: false,
			Error:   "Storage backend unavailable",
			Code:    "BACKEND_UNAVAILABLE",
		})
	default:
		h.log.Error("Failed to generate upload URL",
			"file_name", req.FileName,
			"error", err.Error(),
			"request_id", c.GetString("request_id"),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "Failed to generate upload URL",
			Code:    "GENERATION_FAILED",
		})
	}
}

// MockUpload handles GET /files/mock-upload, a diagnostic stand-in for the upload target
func (h *Handler) MockUpload(c *gin.Context) {
	c.String(http.StatusOK, MockUploadAck)
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	if err := h.service.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "files-service",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "files-service",
	})
}
