package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/model"
)

// FileRepository implements FileRepository interface using GORM
type FileRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewFileRepository creates a new FileRepository instance
func NewFileRepository(db *gorm.DB, logger coreport.Logger) *FileRepository {
	return &FileRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

var _ persistence.FileRepository = (*FileRepository)(nil)

func (r *FileRepository) entityToModel(file *entity.File) model.File {
	return model.File{
		ID:             file.ID,
		OriginalName:   file.OriginalName,
		SizeBytes:      file.SizeBytes,
		StorageLocator: file.StorageLocator,
		Checksum:       file.Checksum,
		OwnerUserID:    file.OwnerUserID,
		Status:         string(file.Status),
		ErrorMessage:   file.ErrorMessage,
		UploadedAt:     file.UploadedAt,
		CompletedAt:    file.CompletedAt,
	}
}

func (r *FileRepository) modelToEntity(m *model.File) *entity.File {
	return &entity.File{
		ID:             m.ID,
		OriginalName:   m.OriginalName,
		SizeBytes:      m.SizeBytes,
		StorageLocator: m.StorageLocator,
		Checksum:       m.Checksum,
		OwnerUserID:    m.OwnerUserID,
		UploadedAt:     m.UploadedAt,
		CompletedAt:    m.CompletedAt,
		ErrorMessage:   m.ErrorMessage,
		Status:         entity.FileStatus(m.Status),
	}
}

// handleDatabaseError standardizes database error handling
func (r *FileRepository) handleDatabaseError(operation string, err error, fileID uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Debug("File not found", map[string]any{
			"file_id": fileID.String(),
		})
		return errs.ErrFileNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"file_id": fileID.String(),
		"error":   err.Error(),
	})

	if r.errorClassifier.IsConstraintError(err) {
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create saves a newly uploaded file
func (r *FileRepository) Create(ctx context.Context, file *entity.File) error {
	fileModel := r.entityToModel(file)
	fileModel.UpdatedAt = file.UploadedAt

	if err := r.db.WithContext(ctx).Omit("StatusRef").Create(&fileModel).Error; err != nil {
		return r.handleDatabaseError("creating file", err, file.ID)
	}

	r.logger.Debug("File record created", map[string]any{
		"file_id": file.ID.String(),
		"status":  fileModel.Status,
	})
	return nil
}

// GetByID retrieves a file by its identity
func (r *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.File, error) {
	var fileModel model.File
	if err := r.db.WithContext(ctx).First(&fileModel, "id = ?", id).Error; err != nil {
		return nil, r.handleDatabaseError("getting file", err, id)
	}

	return r.modelToEntity(&fileModel), nil
}

// Update persists status, error message and completion time of a file
func (r *FileRepository) Update(ctx context.Context, file *entity.File) error {
	result := r.db.WithContext(ctx).
		Model(&model.File{}).
		Where("id = ?", file.ID).
		Select("status", "error_message", "completed_at", "updated_at").
		Updates(map[string]any{
			"status":        string(file.Status),
			"error_message": file.ErrorMessage,
			"completed_at":  file.CompletedAt,
			"updated_at":    gorm.Expr("CURRENT_TIMESTAMP"),
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating file", result.Error, file.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrFileNotFound
	}

	r.logger.Debug("File record updated", map[string]any{
		"file_id": file.ID.String(),
		"status":  string(file.Status),
	})
	return nil
}

// ListByStatus returns files in any of the given statuses, oldest upload first
func (r *FileRepository) ListByStatus(ctx context.Context, statuses []entity.FileStatus, limit int) ([]*entity.File, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}

	query := r.db.WithContext(ctx).
		Where("status IN ?", names).
		Order("uploaded_at ASC").
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var fileModels []model.File
	if err := query.Find(&fileModels).Error; err != nil {
		r.logger.Error("Failed to list files by status", map[string]any{
			"statuses": names,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	files := make([]*entity.File, len(fileModels))
	for i := range fileModels {
		files[i] = r.modelToEntity(&fileModels[i])
	}
	return files, nil
}
