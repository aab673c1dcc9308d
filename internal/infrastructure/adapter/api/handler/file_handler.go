package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/api/dto"
)

// UserIDHeader identifies the uploading user
const UserIDHeader = "X-User-ID"

// multipartOverhead is the allowance for multipart boundaries and part headers
const multipartOverhead = 1 << 20

// FileHandler handles file upload and processing requests
type FileHandler struct {
	fileUseCase    usecase.FileUseCase
	maxUploadBytes int64
	logger         coreport.Logger
}

// NewFileHandler creates a new file handler instance. maxUploadBytes <= 0 disables the body limit.
func NewFileHandler(fileUseCase usecase.FileUseCase, maxUploadBytes int64, logger coreport.Logger) *FileHandler {
	return &FileHandler{
		fileUseCase:    fileUseCase,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Upload handles POST /api/v1/files with a multipart "file" field
func (h *FileHandler) Upload(c *gin.Context) {
	userID := c.GetHeader(UserIDHeader)
	if userID == "" {
		_ = c.Error(fmt.Errorf("%w: missing required header: %s", errs.ErrInvalidRequest, UserIDHeader))
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			_ = c.Error(errs.ErrFileTooLarge)
			return
		}
		_ = c.Error(fmt.Errorf("%w: multipart field \"file\" is required", errs.ErrInvalidFile))
		return
	}
	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		_ = c.Error(errs.ErrFileTooLarge)
		return
	}

	content, err := header.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", map[string]any{
			"file_name": header.Filename,
			"error":     err.Error(),
		})
		_ = c.Error(fmt.Errorf("%w: %s", errs.ErrInvalidFile, err.Error()))
		return
	}
	defer content.Close()

	file, err := h.fileUseCase.Upload(c.Request.Context(), usecase.UploadRequest{
		FileName:    header.Filename,
		OwnerUserID: userID,
		Content:     content,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusAccepted, dto.NewFileResponse(file))
}

// GetFile handles GET /api/v1/files/:id
func (h *FileHandler) GetFile(c *gin.Context) {
	id, ok := parseFileID(c)
	if !ok {
		return
	}

	file, err := h.fileUseCase.GetFile(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewFileResponse(file))
}

// Process handles POST /api/v1/files/:id/process and runs the pipeline synchronously
func (h *FileHandler) Process(c *gin.Context) {
	id, ok := parseFileID(c)
	if !ok {
		return
	}

	outcome, err := h.fileUseCase.ProcessNow(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProcessingOutcomeResponse(outcome))
}

func parseFileID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(fmt.Errorf("%w: invalid file id format", errs.ErrInvalidRequest))
		return uuid.Nil, false
	}
	return id, true
}
