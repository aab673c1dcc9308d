package dto

import (
	"time"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/usecase"
)

// FileResponse represents an uploaded file and its processing state
type FileResponse struct {
	ID           string     `json:"id"`
	OriginalName string     `json:"originalName"`
	SizeBytes    int64      `json:"sizeBytes"`
	Checksum     string     `json:"checksum"`
	OwnerUserID  string     `json:"ownerUserId"`
	Status       string     `json:"status"`
	UploadedAt   time.Time  `json:"uploadedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
}

// NewFileResponse maps a file entity to its API representation
func NewFileResponse(f *entity.File) FileResponse {
	return FileResponse{
		ID:           f.ID.String(),
		OriginalName: f.OriginalName,
		SizeBytes:    f.SizeBytes,
		Checksum:     f.Checksum,
		OwnerUserID:  f.OwnerUserID,
		Status:       string(f.Status),
		UploadedAt:   f.UploadedAt,
		CompletedAt:  f.CompletedAt,
		ErrorMessage: f.ErrorMessage,
	}
}

// ProcessingOutcomeResponse represents a successful processing run
type ProcessingOutcomeResponse struct {
	FileID           string `json:"fileId"`
	Status           string `json:"status"`
	TransactionCount int    `json:"transactionCount"`
	StoreCount       int    `json:"storeCount"`
	AlreadyProcessed bool   `json:"alreadyProcessed"`
}

// NewProcessingOutcomeResponse maps a processing outcome to its API representation
func NewProcessingOutcomeResponse(o *usecase.ProcessingOutcome) ProcessingOutcomeResponse {
	return ProcessingOutcomeResponse{
		FileID:           o.FileID.String(),
		Status:           string(o.Status),
		TransactionCount: o.TransactionCount,
		StoreCount:       o.StoreCount,
		AlreadyProcessed: o.AlreadyProcessed,
	}
}
