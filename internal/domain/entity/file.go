package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
)

// FileStatus is the lifecycle state of an uploaded CNAB file
type FileStatus string

// FileStatus constants, matching the rows of the file_statuses lookup table
const (
	FileStatusUploaded   FileStatus = "Uploaded"
	FileStatusProcessing FileStatus = "Processing"
	FileStatusProcessed  FileStatus = "Processed"
	FileStatusRejected   FileStatus = "Rejected"
)

// FileStatuses lists every status in lifecycle order
var FileStatuses = []FileStatus{
	FileStatusUploaded,
	FileStatusProcessing,
	FileStatusProcessed,
	FileStatusRejected,
}

// validFileTransitions holds the allowed status changes; terminal states have no entry
var validFileTransitions = map[FileStatus]map[FileStatus]bool{
	FileStatusUploaded: {
		FileStatusProcessing: true,
	},
	FileStatusProcessing: {
		FileStatusProcessed: true,
		FileStatusRejected:  true,
	},
}

// DefaultRejectionMessage is stored when a rejection reason is empty
const DefaultRejectionMessage = "file processing failed"

// IsValid reports whether s is a known status
func (s FileStatus) IsValid() bool {
	switch s {
	case FileStatusUploaded, FileStatusProcessing, FileStatusProcessed, FileStatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is defined from s
func (s FileStatus) IsTerminal() bool {
	return s == FileStatusProcessed || s == FileStatusRejected
}

// CanTransitionTo reports whether s may move to target
func (s FileStatus) CanTransitionTo(target FileStatus) bool {
	return validFileTransitions[s][target]
}

// File is the aggregate root for an uploaded settlement file
type File struct {
	ID             uuid.UUID
	OriginalName   string
	SizeBytes      int64
	StorageLocator string
	Checksum       string
	OwnerUserID    string
	UploadedAt     time.Time
	CompletedAt    *time.Time
	ErrorMessage   string // set only when Status is Rejected
	Status         FileStatus
}

// NewFile creates a file in the Uploaded state
func NewFile(originalName, storageLocator, checksum, ownerUserID string, sizeBytes int64, timeProvider coreport.TimeProvider) (*File, error) {
	if strings.TrimSpace(originalName) == "" || strings.TrimSpace(storageLocator) == "" {
		return nil, errs.ErrInvalidFile
	}
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, errs.ErrInvalidRequest
	}

	return &File{
		ID:             uuid.New(),
		OriginalName:   originalName,
		SizeBytes:      sizeBytes,
		StorageLocator: storageLocator,
		Checksum:       checksum,
		OwnerUserID:    ownerUserID,
		UploadedAt:     timeProvider.Now(),
		Status:         FileStatusUploaded,
	}, nil
}

// StartProcessing moves an Uploaded file to Processing
func (f *File) StartProcessing() error {
	return f.transition(FileStatusProcessing)
}

// MarkProcessed moves a Processing file to Processed and clears any error message
func (f *File) MarkProcessed(now time.Time) error {
	if err := f.transition(FileStatusProcessed); err != nil {
		return err
	}
	f.ErrorMessage = ""
	f.CompletedAt = &now
	return nil
}

// MarkRejected moves a Processing file to Rejected with a non-empty reason
func (f *File) MarkRejected(reason string, now time.Time) error {
	if err := f.transition(FileStatusRejected); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultRejectionMessage
	}
	f.ErrorMessage = reason
	f.CompletedAt = &now
	return nil
}

func (f *File) transition(target FileStatus) error {
	if !f.Status.CanTransitionTo(target) {
		return errs.NewStatusTransitionError(f.ID.String(), string(f.Status), string(target))
	}
	f.Status = target
	return nil
}
