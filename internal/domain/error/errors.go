package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest          = 4000
	CodeInvalidFile             = 4001
	CodeFileTooLarge            = 4002
	CodeInvalidStatusTransition = 4003
	CodeFileRejected            = 4004
	CodeConstraintViolation     = 4005
	CodeFileNotFound            = 4040
	CodeStoreNotFound           = 4041
	CodeObjectNotFound          = 4042
	CodeFileInFlight            = 4090

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeDatabaseConnection = 5001
	CodeStorageUnavailable = 5002
	CodeQueueFull          = 5003
)

// Base error types
var (
	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidFile is returned when an uploaded file has no name or no content
	ErrInvalidFile = errors.New("invalid file")

	// ErrFileTooLarge is returned when an upload exceeds the configured size limit
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")

	// ErrInvalidStatusTransition is returned when a file status change is not allowed by the lifecycle
	ErrInvalidStatusTransition = errors.New("invalid file status transition")

	// ErrFileRejected is returned when a file was rejected by validation
	ErrFileRejected = errors.New("file rejected")

	// ErrFileNotFound is returned when the requested file doesn't exist
	ErrFileNotFound = errors.New("file not found")

	// ErrStoreNotFound is returned when the requested store doesn't exist
	ErrStoreNotFound = errors.New("store not found")

	// ErrTransactionTypeNotFound is returned when a type code is missing from the lookup table
	ErrTransactionTypeNotFound = errors.New("transaction type not found")

	// ErrObjectNotFound is returned by storage when the referenced object is absent
	ErrObjectNotFound = errors.New("stored object not found")

	// ErrStorageUnavailable is returned when the storage backend cannot be read or written
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrDuplicateStore is returned when a store with the same name and owner already exists
	ErrDuplicateStore = errors.New("store with this name and owner already exists")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrFileInFlight is returned when a file is already being processed by another worker
	ErrFileInFlight = errors.New("file is already being processed")

	// ErrQueueFull is returned when the processing queue cannot accept more files
	ErrQueueFull = errors.New("processing queue is full")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	var failure *ProcessingFailure
	if errors.As(err, &failure) {
		return failure.Code()
	}

	switch {
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrInvalidFile):
		return CodeInvalidFile
	case errors.Is(err, ErrFileTooLarge):
		return CodeFileTooLarge
	case errors.Is(err, ErrInvalidStatusTransition):
		return CodeInvalidStatusTransition
	case errors.Is(err, ErrFileRejected):
		return CodeFileRejected
	case errors.Is(err, ErrConstraintViolation), errors.Is(err, ErrDuplicateStore):
		return CodeConstraintViolation
	case errors.Is(err, ErrFileNotFound):
		return CodeFileNotFound
	case errors.Is(err, ErrStoreNotFound):
		return CodeStoreNotFound
	case errors.Is(err, ErrObjectNotFound):
		return CodeObjectNotFound
	case errors.Is(err, ErrFileInFlight):
		return CodeFileInFlight
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseConnection
	case errors.Is(err, ErrStorageUnavailable):
		return CodeStorageUnavailable
	case errors.Is(err, ErrQueueFull):
		return CodeQueueFull
	default:
		return CodeInternalServer
	}
}

// FailureCause tells why a file could not be processed
type FailureCause string

const (
	// CauseStructural marks malformed lines (length, field format)
	CauseStructural FailureCause = "structural"
	// CauseBusinessRule marks well-formed records that break a business rule
	CauseBusinessRule FailureCause = "business_rule"
	// CauseInfrastructure marks storage or database failures
	CauseInfrastructure FailureCause = "infrastructure"
	// CauseNotFound marks an unknown file id
	CauseNotFound FailureCause = "not_found"
	// CausePreviouslyRejected marks a redelivery of a file that is already Rejected
	CausePreviouslyRejected FailureCause = "previously_rejected"
)

// FailureClass decides whether the caller should retry
type FailureClass string

const (
	// Permanent failures are never retried
	Permanent FailureClass = "permanent"
	// Transient failures may succeed on a later attempt
	Transient FailureClass = "transient"
)

// Class returns the retry class of the cause
func (c FailureCause) Class() FailureClass {
	if c == CauseInfrastructure {
		return Transient
	}
	return Permanent
}

// ProcessingFailure is the failure variant of a processing run
type ProcessingFailure struct {
	FileID  string
	Cause   FailureCause
	Message string
	Err     error
}

// Error implements the error interface for ProcessingFailure
func (e *ProcessingFailure) Error() string {
	if e.Err != nil && e.Message == "" {
		return fmt.Sprintf("processing failed for file %s (%s): %v", e.FileID, e.Cause, e.Err)
	}
	return fmt.Sprintf("processing failed for file %s (%s): %s", e.FileID, e.Cause, e.Message)
}

// Unwrap returns the underlying error
func (e *ProcessingFailure) Unwrap() error {
	return e.Err
}

// Class returns Permanent or Transient
func (e *ProcessingFailure) Class() FailureClass {
	return e.Cause.Class()
}

// Retryable reports whether the run may be attempted again
func (e *ProcessingFailure) Retryable() bool {
	return e.Class() == Transient
}

// Code maps the failure to an API error code
func (e *ProcessingFailure) Code() int {
	switch e.Cause {
	case CauseStructural, CauseBusinessRule, CausePreviouslyRejected:
		return CodeFileRejected
	case CauseNotFound:
		return CodeFileNotFound
	default:
		if e.Err != nil {
			if code := ErrorCode(e.Err); code != CodeInternalServer {
				return code
			}
		}
		return CodeInternalServer
	}
}

// LogFields returns a map of fields for structured logging
func (e *ProcessingFailure) LogFields() map[string]any {
	fields := map[string]any{
		"error_type": "processing_failure",
		"file_id":    e.FileID,
		"cause":      string(e.Cause),
		"class":      string(e.Class()),
		"message":    e.Message,
		"error_code": e.Code(),
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// NewRejectionFailure creates a permanent failure for a file rejected by validation
func NewRejectionFailure(fileID string, cause FailureCause, message string) error {
	return &ProcessingFailure{
		FileID:  fileID,
		Cause:   cause,
		Message: message,
		Err:     ErrFileRejected,
	}
}

// NewNotFoundFailure creates a permanent failure for an unknown file id
func NewNotFoundFailure(fileID string) error {
	return &ProcessingFailure{
		FileID:  fileID,
		Cause:   CauseNotFound,
		Message: "file not found",
		Err:     ErrFileNotFound,
	}
}

// NewInfrastructureFailure creates a transient failure wrapping err
func NewInfrastructureFailure(fileID string, err error) error {
	return &ProcessingFailure{
		FileID: fileID,
		Cause:  CauseInfrastructure,
		Err:    err,
	}
}

// StatusTransitionError describes a rejected file status change
type StatusTransitionError struct {
	FileID string
	From   string
	To     string
}

// Error implements the error interface
func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("file %s cannot move from %s to %s", e.FileID, e.From, e.To)
}

// Is checks if the target error is an ErrInvalidStatusTransition
func (e *StatusTransitionError) Is(target error) bool {
	return target == ErrInvalidStatusTransition
}

// LogFields returns a map of fields for structured logging
func (e *StatusTransitionError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "status_transition",
		"file_id":    e.FileID,
		"from":       e.From,
		"to":         e.To,
		"error_code": CodeInvalidStatusTransition,
	}
}

// NewStatusTransitionError creates a new detailed status transition error
func NewStatusTransitionError(fileID, from, to string) error {
	return &StatusTransitionError{FileID: fileID, From: from, To: to}
}

// AsProcessingFailure extracts a ProcessingFailure from err
func AsProcessingFailure(err error) (*ProcessingFailure, bool) {
	var failure *ProcessingFailure
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}

// IsTransient checks if err should be retried by the caller
func IsTransient(err error) bool {
	if failure, ok := AsProcessingFailure(err); ok {
		return failure.Retryable()
	}
	return errors.Is(err, ErrDatabaseConnection) || errors.Is(err, ErrStorageUnavailable)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrStoreNotFound) ||
		errors.Is(err, ErrObjectNotFound) ||
		errors.Is(err, ErrTransactionTypeNotFound)
}

// IsDuplicateStoreError checks if the error signals a lost store creation race
func IsDuplicateStoreError(err error) bool {
	return errors.Is(err, ErrDuplicateStore)
}
